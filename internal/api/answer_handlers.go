package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/schema"
	"github.com/vytor/mathverse/internal/services"
)

type answerRequest struct {
	Mode        string          `json:"mode"`
	Question    json.RawMessage `json:"question"`
	Answer      json.RawMessage `json:"answer"`
	Streak      int             `json:"streak"`
	TimeSeconds float64         `json:"timeSeconds"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := readJSON(w, r, schema.Answer, &req); err != nil {
		handleError(w, r, err)
		return
	}

	mode, ok := game.ParseMode(req.Mode)
	if !ok {
		handleError(w, r, errors.NewNotFoundError("game mode", req.Mode))
		return
	}

	res, err := s.GameService.SubmitAnswer(r.Context(), userFromContext(r.Context()), services.AnswerSubmission{
		Mode:        mode,
		Question:    req.Question,
		Answer:      req.Answer,
		Streak:      req.Streak,
		TimeSeconds: req.TimeSeconds,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
