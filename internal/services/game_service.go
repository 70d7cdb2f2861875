package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"time"

	"github.com/vytor/mathverse/internal/adaptive"
	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/jobs"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

// AnswerSubmission is a graded-answer request. Question is the payload
// previously returned by NewQuestion; Streak is the client's current streak
// for the mode.
type AnswerSubmission struct {
	Mode        game.Mode       `json:"mode"`
	Question    json.RawMessage `json:"question"`
	Answer      json.RawMessage `json:"answer"`
	Streak      int             `json:"streak"`
	TimeSeconds float64         `json:"timeSeconds"`
}

type AnswerResult struct {
	Correct   bool            `json:"correct"`
	Solution  any             `json:"solution"`
	Streak    int             `json:"streak"`
	Level     int             `json:"level"`
	LeveledUp bool            `json:"leveledUp"`
	Stat      models.GameStat `json:"stat"`
}

// GameService handles question generation and answer grading
type GameService interface {
	NewQuestion(ctx context.Context, mode game.Mode, level int, d game.Difficulty) (game.Question, error)
	SubmitAnswer(ctx context.Context, userID string, sub AnswerSubmission) (*AnswerResult, error)
}

type gameService struct {
	progressRepo repository.ProgressRepository
	jobQueue     jobs.JobQueue
	rand         game.Rand
	now          func() time.Time
}

// NewGameService creates a new GameService. jobQueue may be nil, in which
// case answers are not added to the history log.
func NewGameService(progressRepo repository.ProgressRepository, jobQueue jobs.JobQueue) GameService {
	return &gameService{
		progressRepo: progressRepo,
		jobQueue:     jobQueue,
		rand:         game.DefaultRand,
		now:          time.Now,
	}
}

func (s *gameService) NewQuestion(ctx context.Context, mode game.Mode, level int, d game.Difficulty) (game.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("generating question: mode=%s, level=%d, difficulty=%s", mode, level, d)

	q, err := game.Generate(s.rand, mode, level, d)
	if err != nil {
		return nil, errors.NewNotFoundError("game mode", mode)
	}
	return q, nil
}

func (s *gameService) SubmitAnswer(ctx context.Context, userID string, sub AnswerSubmission) (*AnswerResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": userID,
		"mode":    sub.Mode,
	})

	if !sub.Mode.Valid() {
		return nil, errors.NewNotFoundError("game mode", sub.Mode)
	}
	if sub.TimeSeconds < 0 || math.IsNaN(sub.TimeSeconds) || math.IsInf(sub.TimeSeconds, 0) {
		return nil, errors.NewValidationError("timeSeconds", "must be a non-negative number")
	}

	q, correct, err := game.Check(sub.Mode, sub.Question, sub.Answer)
	if err != nil {
		switch {
		case stderrors.Is(err, game.ErrInvalidAnswer):
			return nil, errors.NewValidationError("answer", err.Error())
		case stderrors.Is(err, game.ErrInvalidQuestion):
			return nil, errors.NewValidationError("question", err.Error())
		}
		return nil, errors.NewBadRequestError(err.Error())
	}
	g, _ := game.For(sub.Mode)

	current, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("failed to load progress")
		return nil, errors.NewInternalError(err)
	}
	if current == nil {
		def := models.DefaultProgress()
		current = &def
	}

	// The tier the question was drawn on decides whether it can level up.
	difficulty := game.MetaOf(q).Difficulty
	if !difficulty.Valid() {
		difficulty = current.Settings.Difficulty
	}

	next, leveledUp := adaptive.Next(adaptive.State{Level: current.Stat(sub.Mode).Level, Streak: sub.Streak}, difficulty, correct)

	stat, err := s.progressRepo.RecordAnswer(ctx, userID, models.AnswerOutcome{
		Mode:    sub.Mode,
		Correct: correct,
		Seconds: sub.TimeSeconds,
		LevelUp: leveledUp,
	})
	if err != nil {
		log.WithError(err).Error("failed to record answer")
		return nil, errors.NewInternalError(err)
	}

	playedLevel := stat.Level
	if leveledUp {
		playedLevel--
		log.Info("level up: level=%d", stat.Level)
	}

	s.enqueue(log, models.AnswerEvent{
		UserID:      userID,
		Mode:        sub.Mode,
		Correct:     correct,
		Level:       playedLevel,
		Difficulty:  difficulty,
		TimeSeconds: sub.TimeSeconds,
		CreatedAt:   s.now().UTC(),
	})

	return &AnswerResult{
		Correct:   correct,
		Solution:  g.Solution(q),
		Streak:    next.Streak,
		Level:     stat.Level,
		LeveledUp: leveledUp,
		Stat:      *stat,
	}, nil
}

// enqueue hands the event to the history pool. A full queue drops the event;
// the answer itself is already stored.
func (s *gameService) enqueue(log *logger.Logger, event models.AnswerEvent) {
	if s.jobQueue == nil {
		return
	}
	if err := s.jobQueue.EnqueueAnswer(event); err != nil {
		log.WithError(err).Warn("answer history event dropped")
	}
}
