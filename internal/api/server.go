package api

import (
	"log/slog"
	"net/http"

	"github.com/KWARC/llamapun/internal/annotate"
	"github.com/KWARC/llamapun/internal/config"
	"github.com/KWARC/llamapun/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for llamapun.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	latency      *annotate.LatencyStats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. latency may be nil when
// the annotator runs in process.
func NewServer(orch *pipeline.Orchestrator, latency *annotate.LatencyStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		latency:      latency,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleIngest)
		r.Post("/api/documents/batch", s.handleBatchIngest)
		r.Get("/api/documents/{jobID}/status", s.handleStatus)
		r.Get("/api/documents/{jobID}/results", s.handleResults)
		r.Get("/api/documents/{jobID}/resolve", s.handleResolve)

		r.Post("/api/match", s.handleMatch)
		r.Get("/api/rules", s.handleRules)
		r.Get("/api/formulas/{digest}", s.handleFormula)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
