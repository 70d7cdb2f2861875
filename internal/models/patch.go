package models

import "github.com/vytor/mathverse/internal/game"

// GameStatPatch updates the fields of a GameStat that are present.
type GameStatPatch struct {
	Level     *int `json:"level,omitempty"`
	Completed *int `json:"completed,omitempty"`
	Correct   *int `json:"correct,omitempty"`
}

func (p *GameStatPatch) apply(s GameStat) GameStat {
	if p == nil {
		return s
	}
	if p.Level != nil {
		s.Level = *p.Level
	}
	if p.Completed != nil {
		s.Completed = *p.Completed
	}
	if p.Correct != nil {
		s.Correct = *p.Correct
	}
	return s
}

// SettingsPatch updates the settings fields that are present.
type SettingsPatch struct {
	Difficulty     *game.Difficulty `json:"difficulty,omitempty"`
	SoundEnabled   *bool            `json:"soundEnabled,omitempty"`
	ShowTimer      *bool            `json:"showTimer,omitempty"`
	AnimationSpeed *string          `json:"animationSpeed,omitempty"`
	Theme          *string          `json:"theme,omitempty"`
}

func (p *SettingsPatch) apply(s Settings) Settings {
	if p == nil {
		return s
	}
	if p.Difficulty != nil {
		s.Difficulty = *p.Difficulty
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.ShowTimer != nil {
		s.ShowTimer = *p.ShowTimer
	}
	if p.AnimationSpeed != nil {
		s.AnimationSpeed = *p.AnimationSpeed
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s
}

// ProgressPatch is a partial or full progress update. Only the recognized
// keys are merged; anything else in a request body is ignored.
type ProgressPatch struct {
	QuantityComparison *GameStatPatch `json:"quantityComparison,omitempty"`
	NumberLineAddition *GameStatPatch `json:"numberLineAddition,omitempty"`
	PatternRecognition *GameStatPatch `json:"patternRecognition,omitempty"`
	NumberSequencing   *GameStatPatch `json:"numberSequencing,omitempty"`
	Settings           *SettingsPatch `json:"settings,omitempty"`
	TotalTime          *float64       `json:"totalTime,omitempty"`
}

// Stat returns the patch for mode, or nil when absent.
func (p ProgressPatch) Stat(mode game.Mode) *GameStatPatch {
	switch mode {
	case game.Comparison:
		return p.QuantityComparison
	case game.Addition:
		return p.NumberLineAddition
	case game.Pattern:
		return p.PatternRecognition
	case game.Sequencing:
		return p.NumberSequencing
	}
	return nil
}

func (p ProgressPatch) Empty() bool {
	for _, m := range game.Modes {
		if p.Stat(m) != nil {
			return false
		}
	}
	return p.Settings == nil && p.TotalTime == nil
}

// ApplyTo merges the patch into rec and validates the result. rec is not
// modified; the merged snapshot is returned.
func (p ProgressPatch) ApplyTo(rec Progress) (Progress, error) {
	out := rec
	for _, m := range game.Modes {
		*out.Stat(m) = p.Stat(m).apply(*rec.Stat(m))
	}
	out.Settings = p.Settings.apply(rec.Settings)
	if p.TotalTime != nil {
		out.TotalTime = *p.TotalTime
	}
	if err := out.Validate(); err != nil {
		return rec, err
	}
	return out, nil
}

// FullPatch turns a whole record into a patch that replaces every field.
func FullPatch(rec Progress) ProgressPatch {
	stat := func(s GameStat) *GameStatPatch {
		return &GameStatPatch{Level: &s.Level, Completed: &s.Completed, Correct: &s.Correct}
	}
	s := rec.Settings
	total := rec.TotalTime
	return ProgressPatch{
		QuantityComparison: stat(rec.QuantityComparison),
		NumberLineAddition: stat(rec.NumberLineAddition),
		PatternRecognition: stat(rec.PatternRecognition),
		NumberSequencing:   stat(rec.NumberSequencing),
		Settings: &SettingsPatch{
			Difficulty:     &s.Difficulty,
			SoundEnabled:   &s.SoundEnabled,
			ShowTimer:      &s.ShowTimer,
			AnimationSpeed: &s.AnimationSpeed,
			Theme:          &s.Theme,
		},
		TotalTime: &total,
	}
}
