package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/chemdoc/figref/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all known jobs, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.Jobs()
	docs := make([]pipeline.JobSnapshot, 0, len(jobs))
	for _, job := range jobs {
		docs = append(docs, job.Snapshot())
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleDeleteDocument removes a job and its stored result.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if !s.orchestrator.DeleteJob(jobID) {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": jobID})
}
