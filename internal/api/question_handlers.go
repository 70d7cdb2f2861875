package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/game"
)

// handleQuestion returns a fresh question. Missing or malformed level and
// difficulty fall back to 1 and adaptive.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "mode")
	mode, ok := game.ParseMode(raw)
	if !ok {
		handleError(w, r, errors.NewNotFoundError("game mode", raw))
		return
	}

	q := r.URL.Query()
	level := game.ParseLevel(q.Get("level"))
	difficulty := game.ParseDifficulty(q.Get("difficulty"))

	question, err := s.GameService.NewQuestion(r.Context(), mode, level, difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, r, http.StatusOK, question)
}
