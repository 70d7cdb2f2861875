// Package adaptive advances a child's level after a streak of correct answers.
package adaptive

import (
	"sync"

	"github.com/vytor/mathverse/internal/game"
)

// StreakToLevelUp is the number of consecutive correct answers that earns a
// new level in adaptive mode.
const StreakToLevelUp = 3

// State is the per-mode position of a player within a session.
type State struct {
	Level  int `json:"level"`
	Streak int `json:"streak"`
}

// Next returns the state after one answer and whether the level went up.
// Only the adaptive tier ever changes the level.
func Next(s State, d game.Difficulty, correct bool) (State, bool) {
	if s.Level < 1 {
		s.Level = 1
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if !correct {
		s.Streak = 0
		return s, false
	}
	s.Streak++
	if d == game.Adaptive && s.Streak >= StreakToLevelUp {
		s.Level++
		s.Streak = 0
		return s, true
	}
	return s, false
}

// Tracker keeps session-local streaks for every mode. The zero value is not
// usable; call NewTracker.
type Tracker struct {
	mu     sync.Mutex
	states map[game.Mode]State
}

// NewTracker seeds the tracker with each mode's stored level.
func NewTracker(levels map[game.Mode]int) *Tracker {
	t := &Tracker{states: make(map[game.Mode]State, len(game.Modes))}
	for _, m := range game.Modes {
		level := levels[m]
		if level < 1 {
			level = 1
		}
		t.states[m] = State{Level: level}
	}
	return t
}

// State returns the current state for mode.
func (t *Tracker) State(mode game.Mode) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[mode]
}

// Set overrides the state for mode, for callers that learn it from the store.
func (t *Tracker) Set(mode game.Mode, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[mode] = s
}

// Record applies one answer for mode and returns the new state.
func (t *Tracker) Record(mode game.Mode, d game.Difficulty, correct bool) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next, leveled := Next(t.states[mode], d, correct)
	t.states[mode] = next
	return next, leveled
}
