package file

import (
	"context"
	"sort"

	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

const defaultHistoryLimit = 50

type historyRepository struct {
	store *Store
}

// NewHistoryRepository creates a file-backed HistoryRepository
func NewHistoryRepository(store *Store) repository.HistoryRepository {
	return &historyRepository{store: store}
}

func (r *historyRepository) Insert(ctx context.Context, e models.AnswerEvent) (int64, error) {
	logger.FromContext(ctx).WithPrefix("file_history").Debug("inserting answer event: user_id=%s, mode=%s", e.UserID, e.Mode)

	var id int64
	err := r.store.update(func(doc *document) error {
		doc.NextHistoryID++
		id = doc.NextHistoryID
		e.ID = id
		e.CreatedAt = e.CreatedAt.UTC()
		doc.History = append(doc.History, e)
		doc.History = trimHistory(doc.History, e.UserID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *historyRepository) Recent(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, error) {
	logger.FromContext(ctx).WithPrefix("file_history").Debug("listing recent answers: user_id=%s, limit=%d", userID, limit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	events := []models.AnswerEvent{}
	err := r.store.view(func(doc *document) error {
		for _, e := range doc.History {
			if e.UserID == userID {
				events = append(events, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID > events[j].ID
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// trimHistory drops the oldest events for userID beyond maxHistoryPerUser.
func trimHistory(history []models.AnswerEvent, userID string) []models.AnswerEvent {
	count := 0
	for _, e := range history {
		if e.UserID == userID {
			count++
		}
	}
	excess := count - maxHistoryPerUser
	if excess <= 0 {
		return history
	}
	out := history[:0]
	for _, e := range history {
		if e.UserID == userID && excess > 0 {
			excess--
			continue
		}
		out = append(out, e)
	}
	return out
}
