// Package storage opens the configured persistence backend and exposes its
// repositories as one bundle.
package storage

import (
	"context"
	"fmt"

	"github.com/vytor/mathverse/internal/config"
	"github.com/vytor/mathverse/internal/db"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/repository"
	"github.com/vytor/mathverse/internal/repository/file"
	"github.com/vytor/mathverse/internal/repository/sqlite"
)

type Storage struct {
	Backend  string
	Progress repository.ProgressRepository
	Users    repository.UserRepository
	History  repository.HistoryRepository

	ping  func(context.Context) error
	close func() error
}

// Open builds the repositories for cfg.Store.
func Open(cfg config.Config) (*Storage, error) {
	log := logger.Default().WithPrefix("storage")

	switch cfg.Store {
	case config.StoreSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info("using sqlite store at %s", cfg.DBPath)
		return &Storage{
			Backend:  cfg.Store,
			Progress: sqlite.NewProgressRepository(database.DB),
			Users:    sqlite.NewUserRepository(database.DB),
			History:  sqlite.NewHistoryRepository(database.DB),
			ping:     database.PingContext,
			close:    database.Close,
		}, nil

	case config.StoreFile:
		store := file.NewStore(cfg.DataFile)
		if err := store.Ping(); err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		log.Info("using file store at %s", store.Path())
		return &Storage{
			Backend:  cfg.Store,
			Progress: file.NewProgressRepository(store),
			Users:    file.NewUserRepository(store),
			History:  file.NewHistoryRepository(store),
			ping:     func(context.Context) error { return store.Ping() },
			close:    func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// Ping reports whether the backend is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
