package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathverse/internal/config"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/models"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	cfgs := map[string]config.Config{
		config.StoreSQLite: {Store: config.StoreSQLite, DBPath: "file:" + filepath.Join(dir, "test.db")},
		config.StoreFile:   {Store: config.StoreFile, DataFile: filepath.Join(dir, "progress.json")},
	}

	for name, cfg := range cfgs {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := Open(cfg)
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, name, s.Backend)
			require.NoError(t, s.Ping(ctx))

			stat, err := s.Progress.RecordAnswer(ctx, "u1", models.AnswerOutcome{Mode: game.Comparison, Correct: true})
			require.NoError(t, err)
			assert.Equal(t, 1, stat.Correct)
		})
	}
}

func TestOpen_UnknownStore(t *testing.T) {
	_, err := Open(config.Config{Store: "redis"})
	assert.Error(t, err)
}
