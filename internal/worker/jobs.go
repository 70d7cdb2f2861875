package worker

import (
	"context"
	"fmt"

	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

// RecordAnswerJob appends one answer to the history log.
type RecordAnswerJob struct {
	History repository.HistoryRepository
	Event   models.AnswerEvent
}

func (j *RecordAnswerJob) Name() string { return "record_answer" }

func (j *RecordAnswerJob) Run(ctx context.Context) error {
	id, err := j.History.Insert(ctx, j.Event)
	if err != nil {
		return fmt.Errorf("insert answer event for %s: %w", j.Event.UserID, err)
	}
	logger.FromContext(ctx).Debug("recorded answer event %d", id)
	return nil
}
