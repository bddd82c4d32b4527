package api

import (
	"errors"
	"net/http"

	"github.com/KWARC/llamapun/internal/address"
	"github.com/KWARC/llamapun/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) job(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
	}
	return job
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job := s.job(w, r)
	if job == nil {
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleResults answers 409 until the job reaches a terminal state. Failed
// and duplicate jobs carry no results.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	job := s.job(w, r)
	if job == nil {
		return
	}
	snap := job.Snapshot()
	if !snap.Status.Done() {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "job not finished",
			"status": snap.Status,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job":     snap,
		"results": job.Results(),
	})
}

// handleResolve decodes an address against the job's normalized document.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	job := s.job(w, r)
	if job == nil {
		return
	}
	raw := r.URL.Query().Get("address")
	if raw == "" {
		jsonError(w, "address query parameter is required", http.StatusBadRequest)
		return
	}
	a, err := address.Parse(raw)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	d := job.Document()
	if d == nil {
		jsonError(w, "document not available", http.StatusConflict)
		return
	}
	rng, err := address.Decode(a, d)
	if err != nil {
		var re *address.ResolutionError
		if errors.As(err, &re) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"address": a.String(),
		"start":   rng.Start,
		"end":     rng.End,
		"text":    rng.Text(),
	})
}
