package game

import (
	"encoding/json"
	"fmt"
	"slices"
)

const maxSequenceStart = 20

type SequencingQuestion struct {
	Meta
	Sequence []int `json:"sequence"`
	Shuffled []int `json:"shuffled"`
}

type sequencingGame struct{}

func (sequencingGame) Mode() Mode { return Sequencing }

func (sequencingGame) Generate(r Rand, level int, d Difficulty) Question {
	level, d = normalize(level, d)
	count := SequenceLength(level, d)

	start := between(r, 1, maxSequenceStart)
	step := 1 + r.IntN(2)

	sequence := make([]int, count)
	for i := range sequence {
		sequence[i] = start + i*step
	}
	shuffled := slices.Clone(sequence)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	return SequencingQuestion{
		Meta:     Meta{Mode: Sequencing, Level: level, Difficulty: d},
		Sequence: sequence,
		Shuffled: shuffled,
	}
}

func (sequencingGame) Decode(raw json.RawMessage) (Question, error) {
	var q SequencingQuestion
	if err := decodeInto(raw, &q); err != nil {
		return nil, err
	}
	if len(q.Sequence) == 0 {
		return nil, fmt.Errorf("%w: sequence is required", ErrInvalidQuestion)
	}
	if !slices.IsSorted(q.Sequence) {
		return nil, fmt.Errorf("%w: sequence must be ascending", ErrInvalidQuestion)
	}
	return q, nil
}

func (sequencingGame) Check(q Question, answer json.RawMessage) (bool, error) {
	sq, ok := q.(SequencingQuestion)
	if !ok {
		return false, wrongType("sequencing", q)
	}
	var placed []int
	if err := decodeAnswer(answer, &placed); err != nil {
		return false, err
	}
	return slices.Equal(placed, sq.Sequence), nil
}

func (sequencingGame) Solution(q Question) any {
	if sq, ok := q.(SequencingQuestion); ok {
		return sq.Sequence
	}
	return nil
}
