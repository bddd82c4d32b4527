package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/KWARC/llamapun/internal/annotate"
	"github.com/KWARC/llamapun/internal/c14n"
	"github.com/KWARC/llamapun/internal/pattern"
	"github.com/KWARC/llamapun/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type matchRequest struct {
	Text  string   `json:"text"`
	Rules []string `json:"rules"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}
	if err := s.checkRules(req.Rules); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	matches, err := s.orchestrator.Worker().MatchText(r.Context(), req.Text, req.Rules)
	switch {
	case err == nil:
	case errors.Is(err, pattern.ErrWrongKind), errors.Is(err, pattern.ErrUnknownRule):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case pipeline.IsRetryable(err), errors.Is(err, annotate.ErrMisaligned):
		jsonError(w, "annotator: "+err.Error(), http.StatusBadGateway)
		return
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	reg := s.orchestrator.Worker().Matcher().Registry()
	rules := make([]map[string]string, 0, reg.Len())
	for _, rule := range reg.Rules() {
		rules = append(rules, map[string]string{
			"name": rule.Name,
			"kind": rule.Kind.String(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rules":   rules,
		"default": s.cfg.MatchRules,
	})
}

// handleFormula lists the indexed occurrences of one canonical formula.
func (s *Server) handleFormula(w http.ResponseWriter, r *http.Request) {
	idx := s.orchestrator.Worker().Index()
	if idx == nil {
		jsonError(w, "formula index unavailable", http.StatusServiceUnavailable)
		return
	}
	d, err := c14n.ParseDigest(chi.URLParam(r, "digest"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	canonical, ok, err := idx.Canonical(d)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		jsonError(w, "formula not found", http.StatusNotFound)
		return
	}
	entries, err := idx.Formulas(d, limit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	count, err := idx.CountFormula(d)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"digest":      d.String(),
		"canonical":   string(canonical),
		"occurrences": count,
		"entries":     entries,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"running":     s.orchestrator.Running(),
		"matcher":     s.orchestrator.Worker().Matcher().Stats(),
	}
	if s.latency != nil {
		out["annotator"] = s.latency.Snapshot()
	}
	if idx := s.orchestrator.Worker().Index(); idx != nil {
		if n, err := idx.DistinctFormulas(); err == nil {
			out["distinct_formulas"] = n
		}
	}
	writeJSON(w, http.StatusOK, out)
}
