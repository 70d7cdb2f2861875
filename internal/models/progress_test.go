package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultProgress(t *testing.T) {
	p := models.DefaultProgress()

	require.NoError(t, p.Validate())
	for _, m := range game.Modes {
		assert.Equal(t, models.GameStat{Level: 1}, *p.Stat(m))
	}
	assert.Equal(t, game.Adaptive, p.Settings.Difficulty)
	assert.True(t, p.Settings.SoundEnabled)
	assert.Equal(t, models.ThemePastel, p.Settings.Theme)
}

func TestGameStat_Validate(t *testing.T) {
	assert.NoError(t, models.GameStat{Level: 1, Completed: 3, Correct: 3}.Validate())
	assert.Error(t, models.GameStat{Level: 0}.Validate())
	assert.Error(t, models.GameStat{Level: 1, Completed: 1, Correct: 2}.Validate())
	assert.Error(t, models.GameStat{Level: 1, Completed: -1}.Validate())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, models.Percent(0, 0))
	assert.Equal(t, 50, models.Percent(1, 2))
	assert.Equal(t, 67, models.Percent(2, 3))
	assert.Equal(t, 33, models.Percent(1, 3))
	assert.Equal(t, 100, models.Percent(4, 4))
}

func TestProgressPatch_MergesFieldByField(t *testing.T) {
	base := models.DefaultProgress()
	base.NumberLineAddition = models.GameStat{Level: 2, Completed: 10, Correct: 7}

	patch := models.ProgressPatch{
		NumberLineAddition: &models.GameStatPatch{Level: ptr(3)},
		Settings:           &models.SettingsPatch{Theme: ptr(models.ThemeDark)},
		TotalTime:          ptr(42.5),
	}

	merged, err := patch.ApplyTo(base)
	require.NoError(t, err)

	assert.Equal(t, models.GameStat{Level: 3, Completed: 10, Correct: 7}, merged.NumberLineAddition)
	assert.Equal(t, models.ThemeDark, merged.Settings.Theme)
	assert.True(t, merged.Settings.SoundEnabled, "untouched settings keep their value")
	assert.Equal(t, 42.5, merged.TotalTime)
	assert.Equal(t, 2, base.NumberLineAddition.Level, "input record is not modified")
}

func TestProgressPatch_RejectsInvariantViolations(t *testing.T) {
	base := models.DefaultProgress()

	tests := map[string]models.ProgressPatch{
		"correct above completed": {PatternRecognition: &models.GameStatPatch{Correct: ptr(1)}},
		"level zero":              {NumberSequencing: &models.GameStatPatch{Level: ptr(0)}},
		"negative time":           {TotalTime: ptr(-1.0)},
		"bad difficulty":          {Settings: &models.SettingsPatch{Difficulty: ptr(game.Difficulty("medium"))}},
		"bad theme":               {Settings: &models.SettingsPatch{Theme: ptr("neon")}},
	}
	for name, patch := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := patch.ApplyTo(base)
			assert.Error(t, err)
			assert.Equal(t, base, out)
		})
	}
}

func TestFullPatch_ReplacesEverything(t *testing.T) {
	src := models.DefaultProgress()
	src.QuantityComparison = models.GameStat{Level: 5, Completed: 8, Correct: 6}
	src.Settings.ShowTimer = true
	src.TotalTime = 99

	dst := models.DefaultProgress()
	dst.NumberSequencing = models.GameStat{Level: 2, Completed: 1, Correct: 1}

	merged, err := models.FullPatch(src).ApplyTo(dst)
	require.NoError(t, err)

	assert.Equal(t, src.QuantityComparison, merged.QuantityComparison)
	assert.Equal(t, src.NumberSequencing, merged.NumberSequencing)
	assert.True(t, merged.Settings.ShowTimer)
	assert.Equal(t, 99.0, merged.TotalTime)
}

func TestProgressPatch_Empty(t *testing.T) {
	assert.True(t, models.ProgressPatch{}.Empty())
	assert.False(t, models.ProgressPatch{TotalTime: ptr(1.0)}.Empty())
	assert.False(t, models.ProgressPatch{PatternRecognition: &models.GameStatPatch{}}.Empty())
}
