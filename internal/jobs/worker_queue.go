package jobs

import (
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
	"github.com/vytor/mathverse/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	historyPool *worker.Pool
	historyRepo repository.HistoryRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(historyPool *worker.Pool, historyRepo repository.HistoryRepository) JobQueue {
	return &WorkerQueue{
		historyPool: historyPool,
		historyRepo: historyRepo,
	}
}

func (q *WorkerQueue) EnqueueAnswer(event models.AnswerEvent) error {
	return q.historyPool.Submit(&worker.RecordAnswerJob{
		History: q.historyRepo,
		Event:   event,
	})
}
