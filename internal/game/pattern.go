package game

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Palette is the fixed set of pattern symbols.
var Palette = []string{"🔴", "🔵", "🟢", "🟡", "🟣", "🟠"}

const (
	patternOptions = 3
	aabbChance     = 0.5
)

type PatternQuestion struct {
	Meta
	Pattern []string `json:"pattern"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
}

type patternGame struct{}

func (patternGame) Mode() Mode { return Pattern }

func (patternGame) Generate(r Rand, level int, d Difficulty) Question {
	level, d = normalize(level, d)
	length := PatternLength(level, d)

	first := r.IntN(len(Palette))
	second := r.IntN(len(Palette) - 1)
	if second >= first {
		second++
	}
	base := [2]string{Palette[first], Palette[second]}

	// AABB needs at least four symbols to be recognizable.
	paired := length >= 4 && r.Float64() < aabbChance

	full := make([]string, length+1)
	for i := range full {
		if paired {
			full[i] = base[(i/2)%2]
		} else {
			full[i] = base[i%2]
		}
	}
	answer := full[length]

	wrong := make([]string, 0, len(Palette)-1)
	for _, s := range Palette {
		if s != answer {
			wrong = append(wrong, s)
		}
	}
	r.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })

	options := append([]string{answer}, wrong[:patternOptions-1]...)
	r.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return PatternQuestion{
		Meta:    Meta{Mode: Pattern, Level: level, Difficulty: d},
		Pattern: full[:length],
		Answer:  answer,
		Options: options,
	}
}

func (patternGame) Decode(raw json.RawMessage) (Question, error) {
	var q PatternQuestion
	if err := decodeInto(raw, &q); err != nil {
		return nil, err
	}
	if len(q.Pattern) == 0 || q.Answer == "" {
		return nil, fmt.Errorf("%w: pattern and answer are required", ErrInvalidQuestion)
	}
	if !slices.Contains(q.Options, q.Answer) {
		return nil, fmt.Errorf("%w: options do not contain the answer", ErrInvalidQuestion)
	}
	return q, nil
}

func (patternGame) Check(q Question, answer json.RawMessage) (bool, error) {
	pq, ok := q.(PatternQuestion)
	if !ok {
		return false, wrongType("pattern", q)
	}
	var symbol string
	if err := decodeAnswer(answer, &symbol); err != nil {
		return false, err
	}
	if symbol == "" {
		return false, fmt.Errorf("%w: symbol is required", ErrInvalidAnswer)
	}
	return symbol == pq.Answer, nil
}

func (patternGame) Solution(q Question) any {
	if pq, ok := q.(PatternQuestion); ok {
		return pq.Answer
	}
	return nil
}
