package api

import (
	"net/http"

	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/schema"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.ProgressService.GetProgress(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

// handleSaveProgress merges a partial or full record and returns the result.
func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	var patch models.ProgressPatch
	if err := readJSON(w, r, schema.Progress, &patch); err != nil {
		handleError(w, r, err)
		return
	}

	p, err := s.ProgressService.SaveProgress(r.Context(), userFromContext(r.Context()), patch)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.ProgressService.ResetProgress(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleAddTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seconds float64 `json:"seconds"`
	}
	if err := readJSON(w, r, schema.Time, &req); err != nil {
		handleError(w, r, err)
		return
	}

	total, err := s.ProgressService.AddTime(r.Context(), userFromContext(r.Context()), req.Seconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]float64{"totalTime": total})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.ProgressService.GetAnalytics(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	events, err := s.ProgressService.History(r.Context(), userFromContext(r.Context()), queryInt(r, "limit"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"events": events})
}
