package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathverse/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string) (*models.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Merge(ctx context.Context, userID string, patch models.ProgressPatch) (*models.Progress, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) RecordAnswer(ctx context.Context, userID string, outcome models.AnswerOutcome) (*models.GameStat, error) {
	args := m.Called(ctx, userID, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameStat), args.Error(1)
}

func (m *MockProgressRepository) AddTime(ctx context.Context, userID string, seconds float64) (float64, error) {
	args := m.Called(ctx, userID, seconds)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProgressRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
