package services

import (
	"context"
	"math"

	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ProgressService handles progress, analytics and answer history
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*models.Progress, error)
	SaveProgress(ctx context.Context, userID string, patch models.ProgressPatch) (*models.Progress, error)
	AddTime(ctx context.Context, userID string, seconds float64) (float64, error)
	ResetProgress(ctx context.Context, userID string) (*models.Progress, error)
	GetAnalytics(ctx context.Context, userID string) (*models.Analytics, error)
	History(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	historyRepo  repository.HistoryRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository, historyRepo repository.HistoryRepository) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		historyRepo:  historyRepo,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*models.Progress, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading progress: user_id=%s", userID)

	p, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("failed to load progress")
		return nil, errors.NewInternalError(err)
	}
	if p == nil {
		def := models.DefaultProgress()
		return &def, nil
	}
	return p, nil
}

func (s *progressService) SaveProgress(ctx context.Context, userID string, patch models.ProgressPatch) (*models.Progress, error) {
	log := logger.FromContext(ctx)
	log.Debug("saving progress: user_id=%s", userID)

	if patch.Empty() {
		return s.GetProgress(ctx, userID)
	}

	// Reject obviously bad values before touching the store. The repository
	// validates again against the stored record inside its write.
	current, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := patch.ApplyTo(*current); err != nil {
		return nil, errors.NewValidationError("progress", err.Error())
	}

	p, err := s.progressRepo.Merge(ctx, userID, patch)
	if err != nil {
		if isValidation(err) {
			return nil, errors.NewValidationError("progress", err.Error())
		}
		log.WithError(err).Error("failed to save progress")
		return nil, errors.NewInternalError(err)
	}
	return p, nil
}

func (s *progressService) AddTime(ctx context.Context, userID string, seconds float64) (float64, error) {
	log := logger.FromContext(ctx)

	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, errors.NewValidationError("seconds", "must be a non-negative number")
	}

	total, err := s.progressRepo.AddTime(ctx, userID, seconds)
	if err != nil {
		log.WithError(err).Error("failed to add play time")
		return 0, errors.NewInternalError(err)
	}
	return total, nil
}

func (s *progressService) ResetProgress(ctx context.Context, userID string) (*models.Progress, error) {
	log := logger.FromContext(ctx)
	log.Info("resetting progress: user_id=%s", userID)

	if err := s.progressRepo.Delete(ctx, userID); err != nil {
		log.WithError(err).Error("failed to reset progress")
		return nil, errors.NewInternalError(err)
	}
	def := models.DefaultProgress()
	return &def, nil
}

func (s *progressService) GetAnalytics(ctx context.Context, userID string) (*models.Analytics, error) {
	p, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	a := models.ComputeAnalytics(*p)
	return &a, nil
}

func (s *progressService) History(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	events, err := s.historyRepo.Recent(ctx, userID, limit)
	if err != nil {
		log.WithError(err).Error("failed to load answer history")
		return nil, errors.NewInternalError(err)
	}
	if events == nil {
		events = []models.AnswerEvent{}
	}
	return events, nil
}
