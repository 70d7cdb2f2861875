// Package game implements the four question generators and their answer
// checkers behind a single Game abstraction.
package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrInvalidAnswer   = errors.New("invalid answer")
)

// Meta is carried by every question so a client can submit it back for checking.
type Meta struct {
	Mode       Mode       `json:"mode"`
	Level      int        `json:"level"`
	Difficulty Difficulty `json:"difficulty"`
}

func (m Meta) meta() Meta { return m }

// Question is a generated, immutable question payload.
type Question interface {
	meta() Meta
}

// MetaOf returns the mode, level and difficulty a question was generated with.
func MetaOf(q Question) Meta {
	return q.meta()
}

// Game generates and checks questions for one mode.
type Game interface {
	Mode() Mode
	// Generate draws a fresh question. Out-of-range level or difficulty is
	// replaced by the defaults.
	Generate(r Rand, level int, d Difficulty) Question
	// Decode parses and validates a question previously produced by Generate.
	Decode(raw json.RawMessage) (Question, error)
	// Check reports whether answer solves q.
	Check(q Question, answer json.RawMessage) (bool, error)
	// Solution returns the expected answer for q.
	Solution(q Question) any
}

var games = map[Mode]Game{
	Comparison: comparisonGame{},
	Addition:   additionGame{},
	Pattern:    patternGame{},
	Sequencing: sequencingGame{},
}

// For returns the Game implementing mode.
func For(mode Mode) (Game, error) {
	g, ok := games[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return g, nil
}

// Generate draws a question for mode using r.
func Generate(r Rand, mode Mode, level int, d Difficulty) (Question, error) {
	g, err := For(mode)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = DefaultRand
	}
	return g.Generate(r, level, d), nil
}

// Check decodes a submitted question and grades answer against it.
func Check(mode Mode, rawQuestion, answer json.RawMessage) (Question, bool, error) {
	g, err := For(mode)
	if err != nil {
		return nil, false, err
	}
	q, err := g.Decode(rawQuestion)
	if err != nil {
		return nil, false, err
	}
	if got := MetaOf(q).Mode; got != "" && got != mode {
		return nil, false, fmt.Errorf("%w: question is for %q, not %q", ErrInvalidQuestion, got, mode)
	}
	ok, err := g.Check(q, answer)
	if err != nil {
		return nil, false, err
	}
	return q, ok, nil
}

func decodeInto(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidQuestion)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	return nil
}

func decodeAnswer(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty answer", ErrInvalidAnswer)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}
	return nil
}

func wrongType(want string, q Question) error {
	return fmt.Errorf("%w: expected %s question, got %T", ErrInvalidQuestion, want, q)
}
