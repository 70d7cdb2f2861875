package jobs

import "github.com/vytor/mathverse/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueAnswer(event models.AnswerEvent) error
}
