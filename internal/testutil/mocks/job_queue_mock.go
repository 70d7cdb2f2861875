package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathverse/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueAnswer(event models.AnswerEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
