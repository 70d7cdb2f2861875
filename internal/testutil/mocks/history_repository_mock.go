package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathverse/internal/models"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Insert(ctx context.Context, event models.AnswerEvent) (int64, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) Recent(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnswerEvent), args.Error(1)
}
