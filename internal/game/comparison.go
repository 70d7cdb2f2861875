package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// equalChance is the probability of forcing both sides to the same count.
const equalChance = 0.2

// Comparison answers.
const (
	ChoiceLeft  = "left"
	ChoiceRight = "right"
	ChoiceSame  = "same"
)

type ComparisonQuestion struct {
	Meta
	CountLeft  int `json:"countLeft"`
	CountRight int `json:"countRight"`
}

// Answer is the choice a child should pick.
func (q ComparisonQuestion) Answer() string {
	switch {
	case q.CountLeft > q.CountRight:
		return ChoiceLeft
	case q.CountRight > q.CountLeft:
		return ChoiceRight
	default:
		return ChoiceSame
	}
}

type comparisonGame struct{}

func (comparisonGame) Mode() Mode { return Comparison }

func (comparisonGame) Generate(r Rand, level int, d Difficulty) Question {
	level, d = normalize(level, d)
	limit := ComparisonLimit(level, d)

	q := ComparisonQuestion{
		Meta:       Meta{Mode: Comparison, Level: level, Difficulty: d},
		CountLeft:  between(r, 1, limit),
		CountRight: between(r, 1, limit),
	}
	if r.Float64() < equalChance {
		q.CountRight = q.CountLeft
	}
	return q
}

func (comparisonGame) Decode(raw json.RawMessage) (Question, error) {
	var q ComparisonQuestion
	if err := decodeInto(raw, &q); err != nil {
		return nil, err
	}
	if q.CountLeft < 1 || q.CountRight < 1 {
		return nil, fmt.Errorf("%w: counts must be positive", ErrInvalidQuestion)
	}
	return q, nil
}

func (comparisonGame) Check(q Question, answer json.RawMessage) (bool, error) {
	cq, ok := q.(ComparisonQuestion)
	if !ok {
		return false, wrongType("comparison", q)
	}
	var choice string
	if err := decodeAnswer(answer, &choice); err != nil {
		return false, err
	}
	switch c := strings.ToLower(strings.TrimSpace(choice)); c {
	case ChoiceLeft, ChoiceRight, ChoiceSame:
		return c == cq.Answer(), nil
	case "equal":
		return cq.Answer() == ChoiceSame, nil
	default:
		return false, fmt.Errorf("%w: choice must be left, right or same", ErrInvalidAnswer)
	}
}

func (comparisonGame) Solution(q Question) any {
	if cq, ok := q.(ComparisonQuestion); ok {
		return cq.Answer()
	}
	return nil
}
