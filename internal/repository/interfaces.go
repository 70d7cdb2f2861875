package repository

import (
	"context"
	"errors"

	"github.com/vytor/mathverse/internal/models"
)

// ErrDuplicate is returned when a unique key (such as a user email) already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrInvalidProgress wraps a write rejected because the resulting record
// would break a GameStat or Settings invariant.
var ErrInvalidProgress = errors.New("invalid progress")

// ProgressRepository handles progress data access. Every write is atomic: a
// failed call leaves the stored record unchanged.
type ProgressRepository interface {
	// Get returns nil, nil when the user has no stored progress yet.
	Get(ctx context.Context, userID string) (*models.Progress, error)
	// Merge applies patch to the stored record (creating it from defaults when
	// absent) and returns the result.
	Merge(ctx context.Context, userID string, patch models.ProgressPatch) (*models.Progress, error)
	// RecordAnswer counts one answer, adds its play time and applies a level
	// up together, returning the mode's stat after the write.
	RecordAnswer(ctx context.Context, userID string, outcome models.AnswerOutcome) (*models.GameStat, error)
	AddTime(ctx context.Context, userID string, seconds float64) (float64, error)
	Delete(ctx context.Context, userID string) error
}

// UserRepository handles user account data access
type UserRepository interface {
	// Insert returns ErrDuplicate when the email is taken.
	Insert(ctx context.Context, user models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// HistoryRepository handles the append-only answer log
type HistoryRepository interface {
	Insert(ctx context.Context, event models.AnswerEvent) (int64, error)
	Recent(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, error)
}
