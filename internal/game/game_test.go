package game_test

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathverse/internal/game"
)

const draws = 10000

var difficulties = []game.Difficulty{game.Easy, game.Adaptive, game.Hard}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func generate[T game.Question](t *testing.T, r game.Rand, mode game.Mode, level int, d game.Difficulty) T {
	t.Helper()
	q, err := game.Generate(r, mode, level, d)
	require.NoError(t, err)
	typed, ok := q.(T)
	require.True(t, ok, "unexpected question type %T", q)
	return typed
}

func TestComparison_CountsWithinLimit(t *testing.T) {
	r := seeded(1)
	for _, d := range difficulties {
		for level := 1; level <= 10; level++ {
			limit := game.ComparisonLimit(level, d)
			for i := 0; i < 200; i++ {
				q := generate[game.ComparisonQuestion](t, r, game.Comparison, level, d)
				assert.GreaterOrEqual(t, q.CountLeft, 1)
				assert.GreaterOrEqual(t, q.CountRight, 1)
				assert.LessOrEqual(t, q.CountLeft, limit)
				assert.LessOrEqual(t, q.CountRight, limit)
			}
		}
	}
}

func TestComparison_EqualFrequency(t *testing.T) {
	r := seeded(2)
	equal := 0
	for i := 0; i < draws; i++ {
		q := generate[game.ComparisonQuestion](t, r, game.Comparison, 1, game.Hard)
		if q.CountLeft == q.CountRight {
			equal++
		}
	}
	// Forced 20% plus the 1-in-10 natural collision of the other 80%.
	freq := float64(equal) / draws
	assert.InDelta(t, 0.28, freq, 0.04)
}

func TestAddition_Bounds(t *testing.T) {
	r := seeded(3)
	for _, d := range difficulties {
		for level := 1; level <= 10; level++ {
			maxVal := game.AdditionMax(level, d)
			for i := 0; i < 200; i++ {
				q := generate[game.AdditionQuestion](t, r, game.Addition, level, d)
				assert.GreaterOrEqual(t, q.A, 1)
				assert.GreaterOrEqual(t, q.B, 1)
				assert.LessOrEqual(t, q.A+q.B, maxVal)
				assert.Equal(t, q.A+q.B, q.Sum)
			}
		}
	}
}

func TestPattern_Shape(t *testing.T) {
	r := seeded(4)
	for _, d := range difficulties {
		for level := 1; level <= 10; level++ {
			length := game.PatternLength(level, d)
			for i := 0; i < 100; i++ {
				q := generate[game.PatternQuestion](t, r, game.Pattern, level, d)
				assert.Len(t, q.Pattern, length)
				assert.Len(t, q.Options, 3)
				assert.Contains(t, q.Options, q.Answer)

				seen := map[string]bool{}
				for _, o := range q.Options {
					assert.Contains(t, game.Palette, o)
					seen[o] = true
				}
				assert.Len(t, seen, 3, "options must be distinct")

				symbols := map[string]bool{}
				for _, s := range q.Pattern {
					symbols[s] = true
				}
				assert.Len(t, symbols, 2, "pattern uses exactly two symbols")
			}
		}
	}
}

func TestPattern_Layouts(t *testing.T) {
	r := seeded(5)
	var alternating, paired int
	for i := 0; i < 1000; i++ {
		q := generate[game.PatternQuestion](t, r, game.Pattern, 1, game.Hard)
		full := append(slices.Clone(q.Pattern), q.Answer)
		if full[0] == full[1] {
			paired++
			assert.Equal(t, []string{full[0], full[0], full[2], full[2], full[0], full[0], full[2]}, full)
		} else {
			alternating++
			for j := 2; j < len(full); j++ {
				assert.Equal(t, full[j-2], full[j])
			}
		}
	}
	assert.Greater(t, alternating, 350)
	assert.Greater(t, paired, 350)
}

func TestPattern_ShortPatternsAlwaysAlternate(t *testing.T) {
	r := seeded(6)
	for i := 0; i < 500; i++ {
		q := generate[game.PatternQuestion](t, r, game.Pattern, 1, game.Easy)
		require.Len(t, q.Pattern, 3)
		assert.NotEqual(t, q.Pattern[0], q.Pattern[1])
		assert.Equal(t, q.Pattern[1], q.Answer)
	}
}

func TestSequencing_Shape(t *testing.T) {
	r := seeded(7)
	for _, d := range difficulties {
		for level := 1; level <= 10; level++ {
			count := game.SequenceLength(level, d)
			for i := 0; i < 100; i++ {
				q := generate[game.SequencingQuestion](t, r, game.Sequencing, level, d)
				require.Len(t, q.Sequence, count)
				assert.GreaterOrEqual(t, q.Sequence[0], 1)
				assert.LessOrEqual(t, q.Sequence[0], 20)

				step := q.Sequence[1] - q.Sequence[0]
				assert.Contains(t, []int{1, 2}, step)
				for j := 1; j < len(q.Sequence); j++ {
					assert.Equal(t, step, q.Sequence[j]-q.Sequence[j-1])
				}

				sorted := slices.Clone(q.Shuffled)
				slices.Sort(sorted)
				assert.Equal(t, q.Sequence, sorted, "shuffled must be a permutation")
			}
		}
	}
}

func TestSequencing_ShuffleIsUnbiased(t *testing.T) {
	r := seeded(8)
	// Position of the smallest term over many 3-term shuffles.
	var firstSlot [3]int
	for i := 0; i < 9000; i++ {
		q := generate[game.SequencingQuestion](t, r, game.Sequencing, 1, game.Easy)
		firstSlot[slices.Index(q.Shuffled, q.Sequence[0])]++
	}
	for _, n := range firstSlot {
		assert.InDelta(t, 3000, n, 250)
	}
}

func TestGenerate_NoSharedState(t *testing.T) {
	a, err := game.Generate(nil, game.Sequencing, 6, game.Hard)
	require.NoError(t, err)
	b, err := game.Generate(nil, game.Sequencing, 6, game.Hard)
	require.NoError(t, err)

	qa := a.(game.SequencingQuestion)
	qb := b.(game.SequencingQuestion)
	qa.Shuffled[0] = -1
	assert.NotEqual(t, -1, qb.Shuffled[0])
	assert.Equal(t, game.Meta{Mode: game.Sequencing, Level: 6, Difficulty: game.Hard}, game.MetaOf(qb))
}

func TestGenerate_NormalizesInput(t *testing.T) {
	q, err := game.Generate(seeded(9), game.Addition, 0, game.Difficulty("bogus"))
	require.NoError(t, err)
	assert.Equal(t, game.Meta{Mode: game.Addition, Level: 1, Difficulty: game.Adaptive}, game.MetaOf(q))
}

func TestGenerate_UnknownMode(t *testing.T) {
	_, err := game.Generate(nil, game.Mode("subtraction"), 1, game.Easy)
	assert.ErrorIs(t, err, game.ErrUnknownMode)
}

func roundTrip(t *testing.T, q game.Question) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(q)
	require.NoError(t, err)
	return raw
}

func answer(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestCheck_Comparison(t *testing.T) {
	q := game.ComparisonQuestion{Meta: game.Meta{Mode: game.Comparison, Level: 1, Difficulty: game.Easy}, CountLeft: 3, CountRight: 2}
	raw := roundTrip(t, q)

	_, ok, err := game.Check(game.Comparison, raw, answer(t, "left"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = game.Check(game.Comparison, raw, answer(t, "same"))
	require.NoError(t, err)
	assert.False(t, ok)

	same := roundTrip(t, game.ComparisonQuestion{CountLeft: 4, CountRight: 4})
	_, ok, err = game.Check(game.Comparison, same, answer(t, "equal"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, _, err = game.Check(game.Comparison, raw, answer(t, "up"))
	assert.ErrorIs(t, err, game.ErrInvalidAnswer)
}

func TestCheck_Addition(t *testing.T) {
	raw := roundTrip(t, game.AdditionQuestion{A: 2, B: 3, Sum: 5})

	_, ok, err := game.Check(game.Addition, raw, answer(t, 5))
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = game.Check(game.Addition, raw, answer(t, 6))
	require.NoError(t, err)
	assert.False(t, ok)

	forged := roundTrip(t, game.AdditionQuestion{A: 2, B: 3, Sum: 9})
	_, _, err = game.Check(game.Addition, forged, answer(t, 9))
	assert.ErrorIs(t, err, game.ErrInvalidQuestion)

	_, _, err = game.Check(game.Addition, raw, answer(t, "five"))
	assert.ErrorIs(t, err, game.ErrInvalidAnswer)
}

func TestCheck_Pattern(t *testing.T) {
	q, err := game.Generate(seeded(10), game.Pattern, 3, game.Adaptive)
	require.NoError(t, err)
	pq := q.(game.PatternQuestion)
	raw := roundTrip(t, pq)

	_, ok, err := game.Check(game.Pattern, raw, answer(t, pq.Answer))
	require.NoError(t, err)
	assert.True(t, ok)

	for _, o := range pq.Options {
		if o == pq.Answer {
			continue
		}
		_, ok, err = game.Check(game.Pattern, raw, answer(t, o))
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestCheck_Sequencing(t *testing.T) {
	raw := roundTrip(t, game.SequencingQuestion{Sequence: []int{4, 6, 8}, Shuffled: []int{8, 4, 6}})

	_, ok, err := game.Check(game.Sequencing, raw, answer(t, []int{4, 6, 8}))
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = game.Check(game.Sequencing, raw, answer(t, []int{8, 4, 6}))
	require.NoError(t, err)
	assert.False(t, ok)

	unsorted := roundTrip(t, game.SequencingQuestion{Sequence: []int{3, 2, 1}})
	_, _, err = game.Check(game.Sequencing, unsorted, answer(t, []int{1, 2, 3}))
	assert.ErrorIs(t, err, game.ErrInvalidQuestion)
}

func TestCheck_ModeMismatch(t *testing.T) {
	raw := roundTrip(t, game.AdditionQuestion{Meta: game.Meta{Mode: game.Addition}, A: 1, B: 1, Sum: 2})
	_, _, err := game.Check(game.Sequencing, raw, answer(t, []int{2}))
	assert.ErrorIs(t, err, game.ErrInvalidQuestion)
}

func TestSolution(t *testing.T) {
	g, err := game.For(game.Addition)
	require.NoError(t, err)
	assert.Equal(t, 7, g.Solution(game.AdditionQuestion{A: 3, B: 4, Sum: 7}))
	assert.Nil(t, g.Solution(game.PatternQuestion{}))
}
