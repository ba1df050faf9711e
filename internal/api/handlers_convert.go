package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/chemdoc/figref/internal/figure"
	"github.com/chemdoc/figref/internal/pipeline"
)

// handleConvert converts a markdown document in one request. The body is the
// raw markdown source; the target comes from ?target=, frontmatter, or the
// configured default, in that order.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	source, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read request body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := pipeline.Convert(source, r.URL.Query().Get("target"), figure.Target(s.cfg.DefaultTarget), s.log)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"target":       res.Target,
		"content_type": res.ContentType,
		"output":       string(res.Output),
		"figures":      res.Figures,
		"report":       res.Report,
	})
}
