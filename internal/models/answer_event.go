package models

import (
	"time"

	"github.com/vytor/mathverse/internal/game"
)

// AnswerEvent is one graded answer, kept for the parent dashboard history.
type AnswerEvent struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	Mode        game.Mode       `json:"mode"`
	Correct     bool            `json:"correct"`
	Level       int             `json:"level"`
	Difficulty  game.Difficulty `json:"difficulty"`
	TimeSeconds float64         `json:"timeSeconds"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AnswerOutcome is a graded answer folded into stored progress in one write.
type AnswerOutcome struct {
	Mode    game.Mode
	Correct bool
	// Seconds is added to totalTime.
	Seconds float64
	// LevelUp raises the mode's level by one.
	LevelUp bool
}
