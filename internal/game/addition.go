package game

import (
	"encoding/json"
	"fmt"
)

type AdditionQuestion struct {
	Meta
	A   int `json:"a"`
	B   int `json:"b"`
	Sum int `json:"sum"`
}

type additionGame struct{}

func (additionGame) Mode() Mode { return Addition }

// Generate keeps a+b <= max with both addends at least 1. a is drawn from
// [1, max-1] so there is always room left for b.
func (additionGame) Generate(r Rand, level int, d Difficulty) Question {
	level, d = normalize(level, d)
	maxVal := AdditionMax(level, d)

	a := between(r, 1, maxVal-1)
	b := between(r, 1, maxVal-a)
	return AdditionQuestion{
		Meta: Meta{Mode: Addition, Level: level, Difficulty: d},
		A:    a,
		B:    b,
		Sum:  a + b,
	}
}

func (additionGame) Decode(raw json.RawMessage) (Question, error) {
	var q AdditionQuestion
	if err := decodeInto(raw, &q); err != nil {
		return nil, err
	}
	if q.A < 1 || q.B < 1 {
		return nil, fmt.Errorf("%w: addends must be positive", ErrInvalidQuestion)
	}
	if q.Sum != q.A+q.B {
		return nil, fmt.Errorf("%w: sum does not match addends", ErrInvalidQuestion)
	}
	return q, nil
}

func (additionGame) Check(q Question, answer json.RawMessage) (bool, error) {
	aq, ok := q.(AdditionQuestion)
	if !ok {
		return false, wrongType("addition", q)
	}
	var n int
	if err := decodeAnswer(answer, &n); err != nil {
		return false, err
	}
	return n == aq.A+aq.B, nil
}

func (additionGame) Solution(q Question) any {
	if aq, ok := q.(AdditionQuestion); ok {
		return aq.A + aq.B
	}
	return nil
}
