package models

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/mathverse/internal/game"
)

// GameStat is the persisted progress for a single game mode.
type GameStat struct {
	Level     int `json:"level"`
	Completed int `json:"completed"`
	Correct   int `json:"correct"`
}

func DefaultGameStat() GameStat {
	return GameStat{Level: 1}
}

// Validate enforces level >= 1 and 0 <= correct <= completed.
func (s GameStat) Validate() error {
	switch {
	case s.Level < 1:
		return fmt.Errorf("level must be at least 1, got %d", s.Level)
	case s.Completed < 0:
		return fmt.Errorf("completed cannot be negative, got %d", s.Completed)
	case s.Correct < 0:
		return fmt.Errorf("correct cannot be negative, got %d", s.Correct)
	case s.Correct > s.Completed:
		return fmt.Errorf("correct (%d) cannot exceed completed (%d)", s.Correct, s.Completed)
	}
	return nil
}

// Accuracy is the rounded percentage of correct answers, 0 when nothing was played.
func (s GameStat) Accuracy() int {
	return Percent(s.Correct, s.Completed)
}

// Percent returns round(100*part/whole), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// Animation speeds.
const (
	AnimationSlow   = "slow"
	AnimationNormal = "normal"
	AnimationFast   = "fast"
)

// Themes.
const (
	ThemePastel = "pastel"
	ThemeDark   = "dark-mode"
)

type Settings struct {
	Difficulty     game.Difficulty `json:"difficulty"`
	SoundEnabled   bool            `json:"soundEnabled"`
	ShowTimer      bool            `json:"showTimer"`
	AnimationSpeed string          `json:"animationSpeed"`
	Theme          string          `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty:     game.DefaultDifficulty,
		SoundEnabled:   true,
		ShowTimer:      false,
		AnimationSpeed: AnimationNormal,
		Theme:          ThemePastel,
	}
}

func (s Settings) Validate() error {
	if !s.Difficulty.Valid() {
		return fmt.Errorf("difficulty must be easy, adaptive or hard, got %q", s.Difficulty)
	}
	switch s.AnimationSpeed {
	case AnimationSlow, AnimationNormal, AnimationFast:
	default:
		return fmt.Errorf("animationSpeed must be slow, normal or fast, got %q", s.AnimationSpeed)
	}
	switch s.Theme {
	case ThemePastel, ThemeDark:
	default:
		return fmt.Errorf("theme must be %s or %s, got %q", ThemePastel, ThemeDark, s.Theme)
	}
	return nil
}

// Progress is the whole persisted record for one player.
type Progress struct {
	QuantityComparison GameStat  `json:"quantityComparison"`
	NumberLineAddition GameStat  `json:"numberLineAddition"`
	PatternRecognition GameStat  `json:"patternRecognition"`
	NumberSequencing   GameStat  `json:"numberSequencing"`
	Settings           Settings  `json:"settings"`
	TotalTime          float64   `json:"totalTime"`
	LastActive         time.Time `json:"lastActive"`
}

// DefaultProgress is the record a new player starts with.
func DefaultProgress() Progress {
	return Progress{
		QuantityComparison: DefaultGameStat(),
		NumberLineAddition: DefaultGameStat(),
		PatternRecognition: DefaultGameStat(),
		NumberSequencing:   DefaultGameStat(),
		Settings:           DefaultSettings(),
	}
}

// Stat returns a pointer to the stat for mode, or nil for an unknown mode.
func (p *Progress) Stat(mode game.Mode) *GameStat {
	switch mode {
	case game.Comparison:
		return &p.QuantityComparison
	case game.Addition:
		return &p.NumberLineAddition
	case game.Pattern:
		return &p.PatternRecognition
	case game.Sequencing:
		return &p.NumberSequencing
	}
	return nil
}

// Levels maps each mode to its stored level.
func (p Progress) Levels() map[game.Mode]int {
	levels := make(map[game.Mode]int, len(game.Modes))
	for _, m := range game.Modes {
		levels[m] = p.Stat(m).Level
	}
	return levels
}

func (p Progress) Validate() error {
	for _, m := range game.Modes {
		if err := p.Stat(m).Validate(); err != nil {
			return fmt.Errorf("%s: %w", m.Key(), err)
		}
	}
	if err := p.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if p.TotalTime < 0 || math.IsNaN(p.TotalTime) || math.IsInf(p.TotalTime, 0) {
		return fmt.Errorf("totalTime must be a non-negative number")
	}
	return nil
}
