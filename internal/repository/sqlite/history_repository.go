package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

const defaultHistoryLimit = 50

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository implementation
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Insert(ctx context.Context, e models.AnswerEvent) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("inserting answer event: user_id=%s, mode=%s", e.UserID, e.Mode)

	res, err := exec(ctx, r.db, sqlBuilder.Insert("answer_history").
		Columns("user_id", "mode", "correct", "level", "difficulty", "time_seconds", "created_at").
		Values(e.UserID, string(e.Mode), e.Correct, e.Level, string(e.Difficulty), e.TimeSeconds, e.CreatedAt.UTC()))
	if err != nil {
		log.Error("failed to insert answer event: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *historyRepository) Recent(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	log.Debug("listing recent answers: user_id=%s, limit=%d", userID, limit)

	query, args, err := sqlBuilder.
		Select("id", "user_id", "mode", "correct", "level", "difficulty", "time_seconds", "created_at").
		From("answer_history").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list answers: %v", err)
		return nil, err
	}
	defer rows.Close()

	events := []models.AnswerEvent{}
	for rows.Next() {
		var e models.AnswerEvent
		var mode, difficulty string
		if err := rows.Scan(&e.ID, &e.UserID, &mode, &e.Correct, &e.Level, &difficulty, &e.TimeSeconds, &e.CreatedAt); err != nil {
			log.Error("failed to scan answer row: %v", err)
			return nil, err
		}
		e.Mode = game.Mode(mode)
		e.Difficulty = game.Difficulty(difficulty)
		events = append(events, e)
	}
	return events, rows.Err()
}
