package file

import (
	"context"
	"fmt"
	"math"

	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

type progressRepository struct {
	store *Store
}

// NewProgressRepository creates a file-backed ProgressRepository
func NewProgressRepository(store *Store) repository.ProgressRepository {
	return &progressRepository{store: store}
}

func (r *progressRepository) Get(ctx context.Context, userID string) (*models.Progress, error) {
	logger.FromContext(ctx).WithPrefix("file_progress").Debug("getting progress: user_id=%s", userID)

	var out *models.Progress
	err := r.store.view(func(doc *document) error {
		if p, ok := doc.Progress[userID]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *progressRepository) Merge(ctx context.Context, userID string, patch models.ProgressPatch) (*models.Progress, error) {
	logger.FromContext(ctx).WithPrefix("file_progress").Debug("merging progress: user_id=%s", userID)

	var out models.Progress
	err := r.mutate(userID, func(p *models.Progress) error {
		merged, err := patch.ApplyTo(*p)
		if err != nil {
			return fmt.Errorf("%w: %v", repository.ErrInvalidProgress, err)
		}
		*p = merged
		return nil
	}, func(p models.Progress) { out = p })
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *progressRepository) RecordAnswer(ctx context.Context, userID string, o models.AnswerOutcome) (*models.GameStat, error) {
	logger.FromContext(ctx).WithPrefix("file_progress").Debug("recording answer: user_id=%s, mode=%s, correct=%t, level_up=%t", userID, o.Mode, o.Correct, o.LevelUp)

	if err := validateSeconds(o.Seconds); err != nil {
		return nil, err
	}
	var out models.GameStat
	err := r.mutate(userID, func(p *models.Progress) error {
		st := p.Stat(o.Mode)
		if st == nil {
			return fmt.Errorf("unknown mode %q", o.Mode)
		}
		st.Completed++
		if o.Correct {
			st.Correct++
		}
		if o.LevelUp {
			st.Level++
		}
		p.TotalTime += o.Seconds
		out = *st
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *progressRepository) AddTime(ctx context.Context, userID string, seconds float64) (float64, error) {
	logger.FromContext(ctx).WithPrefix("file_progress").Debug("adding time: user_id=%s, seconds=%.2f", userID, seconds)

	if err := validateSeconds(seconds); err != nil {
		return 0, err
	}
	var total float64
	err := r.mutate(userID, func(p *models.Progress) error {
		p.TotalTime += seconds
		total = p.TotalTime
		return nil
	}, nil)
	return total, err
}

func (r *progressRepository) Delete(ctx context.Context, userID string) error {
	logger.FromContext(ctx).WithPrefix("file_progress").Debug("deleting progress: user_id=%s", userID)

	return r.store.update(func(doc *document) error {
		delete(doc.Progress, userID)
		return nil
	})
}

// mutate loads (or defaults) the user's record, applies fn and stamps
// lastActive. after, when set, sees the final stamped record.
func (r *progressRepository) mutate(userID string, fn func(*models.Progress) error, after func(models.Progress)) error {
	return r.store.update(func(doc *document) error {
		p, ok := doc.Progress[userID]
		if !ok {
			p = models.DefaultProgress()
		}
		if err := fn(&p); err != nil {
			return err
		}
		p.LastActive = r.store.now().UTC()
		doc.Progress[userID] = p
		if after != nil {
			after(p)
		}
		return nil
	})
}

func validateSeconds(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("%w: seconds must be a non-negative number, got %v", repository.ErrInvalidProgress, seconds)
	}
	return nil
}
