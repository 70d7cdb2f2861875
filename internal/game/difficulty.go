package game

import (
	"errors"
	"strconv"
	"strings"
)

// Difficulty controls the parameter ranges of generated questions.
type Difficulty string

const (
	Easy     Difficulty = "easy"
	Adaptive Difficulty = "adaptive"
	Hard     Difficulty = "hard"
)

// DefaultLevel and DefaultDifficulty apply when a request omits or garbles them.
const (
	DefaultLevel      = 1
	DefaultDifficulty = Adaptive
)

// MaxLevel caps the level fed into the adaptive formulas. Every range is
// already at its hard-tier size or beyond well before it.
const MaxLevel = 1000

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Adaptive, Hard:
		return true
	}
	return false
}

// ParseDifficulty falls back to DefaultDifficulty for anything unrecognized.
func ParseDifficulty(s string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d.Valid() {
		return d
	}
	return DefaultDifficulty
}

// ParseLevel falls back to DefaultLevel for missing, malformed or
// non-positive input and caps large values at MaxLevel.
func ParseLevel(s string) int {
	s = strings.TrimSpace(s)
	level, err := strconv.Atoi(s)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-"):
		return MaxLevel
	case err != nil:
		return DefaultLevel
	}
	return clampLevel(level)
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return DefaultLevel
	case level > MaxLevel:
		return MaxLevel
	}
	return level
}

// ComparisonLimit is the largest item count on either side.
func ComparisonLimit(level int, d Difficulty) int {
	switch d {
	case Easy:
		return 4
	case Hard:
		return 10
	default:
		return min(3+clampLevel(level), 10)
	}
}

// AdditionMax is the largest sum an addition question may have.
func AdditionMax(level int, d Difficulty) int {
	switch d {
	case Easy:
		return 5
	case Hard:
		return 20
	default:
		return 5 + 2*clampLevel(level)
	}
}

// PatternLength is the number of visible symbols in a pattern question.
func PatternLength(level int, d Difficulty) int {
	return scaledLength(level, d)
}

// SequenceLength is the number of terms in a sequencing question.
func SequenceLength(level int, d Difficulty) int {
	return scaledLength(level, d)
}

func scaledLength(level int, d Difficulty) int {
	switch d {
	case Easy:
		return 3
	case Hard:
		return 6
	default:
		return min(3+clampLevel(level)/2, 6)
	}
}

func normalize(level int, d Difficulty) (int, Difficulty) {
	level = clampLevel(level)
	if !d.Valid() {
		d = DefaultDifficulty
	}
	return level, d
}
