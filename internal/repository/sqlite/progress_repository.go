package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

type progressRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db, now: time.Now}
}

func (r *progressRepository) Get(ctx context.Context, userID string) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s", userID)

	p, err := r.load(ctx, r.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress stored yet: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *progressRepository) Merge(ctx context.Context, userID string, patch models.ProgressPatch) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("merging progress: user_id=%s", userID)

	var out *models.Progress
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.ensure(ctx, tx, userID); err != nil {
			return err
		}
		current, err := r.load(ctx, tx, userID)
		if err != nil {
			return err
		}
		merged, err := patch.ApplyTo(*current)
		if err != nil {
			return fmt.Errorf("%w: %v", repository.ErrInvalidProgress, err)
		}

		s := merged.Settings
		if _, err := exec(ctx, tx, sqlBuilder.Update("progress").
			SetMap(map[string]any{
				"difficulty":      string(s.Difficulty),
				"sound_enabled":   s.SoundEnabled,
				"show_timer":      s.ShowTimer,
				"animation_speed": s.AnimationSpeed,
				"theme":           s.Theme,
				"total_time":      merged.TotalTime,
				"last_active":     r.now().UTC(),
			}).
			Where(squirrel.Eq{"user_id": userID})); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}

		for _, m := range game.Modes {
			if patch.Stat(m) == nil {
				continue
			}
			st := merged.Stat(m)
			if _, err := exec(ctx, tx, sqlBuilder.Update("game_stats").
				Set("level", st.Level).
				Set("completed", st.Completed).
				Set("correct", st.Correct).
				Where(squirrel.Eq{"user_id": userID, "mode": string(m)})); err != nil {
				return fmt.Errorf("update %s stats: %w", m, err)
			}
		}

		out, err = r.load(ctx, tx, userID)
		return err
	})
	if err != nil {
		log.Warn("progress merge failed: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *progressRepository) RecordAnswer(ctx context.Context, userID string, o models.AnswerOutcome) (*models.GameStat, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("recording answer: user_id=%s, mode=%s, correct=%t, level_up=%t", userID, o.Mode, o.Correct, o.LevelUp)

	if err := validateSeconds(o.Seconds); err != nil {
		return nil, err
	}
	correct, levels := 0, 0
	if o.Correct {
		correct = 1
	}
	if o.LevelUp {
		levels = 1
	}

	var stat models.GameStat
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.ensure(ctx, tx, userID); err != nil {
			return err
		}
		res, err := exec(ctx, tx, sqlBuilder.Update("game_stats").
			Set("completed", squirrel.Expr("completed + 1")).
			Set("correct", squirrel.Expr("correct + ?", correct)).
			Set("level", squirrel.Expr("level + ?", levels)).
			Where(squirrel.Eq{"user_id": userID, "mode": string(o.Mode)}))
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("no stats row for mode %q", o.Mode)
		}
		if _, err := exec(ctx, tx, sqlBuilder.Update("progress").
			Set("total_time", squirrel.Expr("total_time + ?", o.Seconds)).
			Set("last_active", r.now().UTC()).
			Where(squirrel.Eq{"user_id": userID})); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `
SELECT level, completed, correct FROM game_stats WHERE user_id = ? AND mode = ?
`, userID, string(o.Mode)).Scan(&stat.Level, &stat.Completed, &stat.Correct)
	})
	if err != nil {
		log.WithError(err).Error("failed to record answer")
		return nil, err
	}
	return &stat, nil
}

func (r *progressRepository) AddTime(ctx context.Context, userID string, seconds float64) (float64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("adding time: user_id=%s, seconds=%.2f", userID, seconds)

	if err := validateSeconds(seconds); err != nil {
		return 0, err
	}
	var total float64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.ensure(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := exec(ctx, tx, sqlBuilder.Update("progress").
			Set("total_time", squirrel.Expr("total_time + ?", seconds)).
			Set("last_active", r.now().UTC()).
			Where(squirrel.Eq{"user_id": userID})); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `SELECT total_time FROM progress WHERE user_id = ?`, userID).Scan(&total)
	})
	if err != nil {
		log.Error("failed to add time: %v", err)
		return 0, err
	}
	return total, nil
}

func (r *progressRepository) Delete(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("deleting progress: user_id=%s", userID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, sqlBuilder.Delete("game_stats").Where(squirrel.Eq{"user_id": userID})); err != nil {
			log.Error("failed to delete stats for %s: %v", userID, err)
			return err
		}
		if _, err := exec(ctx, tx, sqlBuilder.Delete("progress").Where(squirrel.Eq{"user_id": userID})); err != nil {
			log.Error("failed to delete progress for %s: %v", userID, err)
			return err
		}
		return nil
	})
}

// ensure creates the default record for userID when it does not exist yet.
func (r *progressRepository) ensure(ctx context.Context, q queryer, userID string) error {
	if _, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO progress (user_id) VALUES (?)`, userID); err != nil {
		return fmt.Errorf("ensure progress row: %w", err)
	}
	insert := sqlBuilder.Insert("game_stats").Options("OR IGNORE").Columns("user_id", "mode")
	for _, m := range game.Modes {
		insert = insert.Values(userID, string(m))
	}
	if _, err := exec(ctx, q, insert); err != nil {
		return fmt.Errorf("ensure stats rows: %w", err)
	}
	return nil
}

func validateSeconds(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("%w: seconds must be a non-negative number, got %v", repository.ErrInvalidProgress, seconds)
	}
	return nil
}

// load reads the full record, returning sql.ErrNoRows when it is absent.
func (r *progressRepository) load(ctx context.Context, q queryer, userID string) (*models.Progress, error) {
	p := models.DefaultProgress()
	var difficulty string
	err := q.QueryRowContext(ctx, `
SELECT difficulty, sound_enabled, show_timer, animation_speed, theme, total_time, last_active
FROM progress
WHERE user_id = ?
`, userID).Scan(&difficulty, &p.Settings.SoundEnabled, &p.Settings.ShowTimer, &p.Settings.AnimationSpeed,
		&p.Settings.Theme, &p.TotalTime, &p.LastActive)
	if err != nil {
		return nil, err
	}
	p.Settings.Difficulty = game.Difficulty(difficulty)

	rows, err := q.QueryContext(ctx, `
SELECT mode, level, completed, correct
FROM game_stats
WHERE user_id = ?
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var st models.GameStat
		if err := rows.Scan(&mode, &st.Level, &st.Completed, &st.Correct); err != nil {
			return nil, err
		}
		if dst := p.Stat(game.Mode(mode)); dst != nil {
			*dst = st
		}
	}
	return &p, rows.Err()
}
