package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KWARC/llamapun/internal/annotate"
	"github.com/KWARC/llamapun/internal/api"
	"github.com/KWARC/llamapun/internal/config"
	"github.com/KWARC/llamapun/internal/dnm"
	"github.com/KWARC/llamapun/internal/index"
	"github.com/KWARC/llamapun/internal/pattern"
	"github.com/KWARC/llamapun/internal/pipeline"
	"github.com/KWARC/llamapun/internal/sink"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	set, err := settings(cfg)
	if err != nil {
		log.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	reg, err := pattern.Load(cfg.RulesPath)
	if err != nil {
		log.Error("load rules", "path", cfg.RulesPath, "error", err)
		os.Exit(1)
	}
	log.Info("rules loaded", "path", cfg.RulesPath, "count", reg.Len())

	idx, err := index.Open(cfg.IndexPath, log)
	if err != nil {
		log.Error("open formula index", "path", cfg.IndexPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	var (
		annotator annotate.Annotator = annotate.NewSimple()
		latency   *annotate.LatencyStats
		remote    *annotate.Remote
	)
	if cfg.AnnotatorURL != "" {
		remote = annotate.NewRemote(cfg.AnnotatorURL, cfg.AnnotatorAPIKey, cfg.AnnotatorTimeout)
		annotator, latency = remote, remote.Stats()
	}
	var sk *sink.Client
	if cfg.SinkURL != "" {
		sk = sink.NewClient(cfg.SinkURL, cfg.SinkAPIKey)
	}

	// Initialize pipeline.
	w, err := pipeline.NewWorker(pattern.NewMatcher(reg), annotator, idx, sk, log, set)
	if err != nil {
		log.Error("create worker", "error", err)
		os.Exit(1)
	}
	orch, err := pipeline.NewOrchestrator(w, cfg.WorkerCount, cfg.MaxQueueSize, cfg.JobTTL, log)
	if err != nil {
		log.Error("create orchestrator", "error", err)
		os.Exit(1)
	}
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, latency, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if err := orch.Stop(shutdownCtx); err != nil {
			log.Warn("jobs cancelled at shutdown", "error", err)
		}
		if remote != nil {
			remote.Close()
		}
		if sk != nil {
			sk.Close()
		}
		if err := idx.Close(); err != nil {
			log.Error("close formula index", "error", err)
		}
	}()

	log.Info("starting llamapun", "port", cfg.Port, "profile", cfg.DNMProfile, "annotator", cfg.AnnotatorURL != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
}

func settings(cfg config.Config) (pipeline.Settings, error) {
	set := pipeline.DefaultSettings()
	var err error
	if cfg.DNMOptionsPath != "" {
		set.DNM, err = dnm.LoadOptions(cfg.DNMProfile, cfg.DNMOptionsPath)
	} else {
		set.DNM, err = dnm.Profile(cfg.DNMProfile)
	}
	if err != nil {
		return set, err
	}
	set.Rules = cfg.MatchRules
	set.C14N.Algorithm = cfg.C14NAlgorithm
	set.FormulaXPath = cfg.FormulaXPath
	set.Segment.MaxSentenceTokens = cfg.MaxSentenceTokens
	set.Parser.PDFFallbackPdftotext = cfg.PDFFallbackPdftotext
	return set, nil
}
