package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathverse/internal/auth"
	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
	"github.com/vytor/mathverse/internal/repository/sqlite"
	"github.com/vytor/mathverse/internal/testutil"
	"github.com/vytor/mathverse/internal/testutil/mocks"
)

func ptr[T any](v T) *T { return &v }

func additionQuestion(d game.Difficulty) json.RawMessage {
	raw, _ := json.Marshal(game.AdditionQuestion{
		Meta: game.Meta{Mode: game.Addition, Level: 1, Difficulty: d},
		A:    2,
		B:    3,
		Sum:  5,
	})
	return raw
}

func TestProgressService_GetProgressDefaults(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("Get", mock.Anything, "u1").Return(nil, nil)

	p, err := NewProgressService(repo, nil).GetProgress(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProgress(), *p)
}

func TestProgressService_SaveProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invariant violation before writing", func(t *testing.T) {
		repo := new(mocks.MockProgressRepository)
		repo.On("Get", mock.Anything, "u1").Return(nil, nil)

		patch := models.ProgressPatch{PatternRecognition: &models.GameStatPatch{Correct: ptr(3)}}
		_, err := NewProgressService(repo, nil).SaveProgress(ctx, "u1", patch)

		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		repo.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("merges", func(t *testing.T) {
		repo := new(mocks.MockProgressRepository)
		patch := models.ProgressPatch{TotalTime: ptr(12.0)}
		merged := models.DefaultProgress()
		merged.TotalTime = 12
		repo.On("Get", mock.Anything, "u1").Return(nil, nil)
		repo.On("Merge", mock.Anything, "u1", patch).Return(&merged, nil)

		p, err := NewProgressService(repo, nil).SaveProgress(ctx, "u1", patch)
		require.NoError(t, err)
		assert.Equal(t, 12.0, p.TotalTime)
		repo.AssertExpectations(t)
	})

	t.Run("store validation maps to 400", func(t *testing.T) {
		repo := new(mocks.MockProgressRepository)
		patch := models.ProgressPatch{TotalTime: ptr(1.0)}
		repo.On("Get", mock.Anything, "u1").Return(nil, nil)
		repo.On("Merge", mock.Anything, "u1", patch).Return(nil, repository.ErrInvalidProgress)

		_, err := NewProgressService(repo, nil).SaveProgress(ctx, "u1", patch)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("store failure is internal", func(t *testing.T) {
		repo := new(mocks.MockProgressRepository)
		patch := models.ProgressPatch{TotalTime: ptr(1.0)}
		repo.On("Get", mock.Anything, "u1").Return(nil, nil)
		repo.On("Merge", mock.Anything, "u1", patch).Return(nil, stderrors.New("disk full"))

		_, err := NewProgressService(repo, nil).SaveProgress(ctx, "u1", patch)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	})
}

func TestProgressService_AddTime(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("AddTime", mock.Anything, "u1", 4.5).Return(10.5, nil)
	svc := NewProgressService(repo, nil)

	total, err := svc.AddTime(context.Background(), "u1", 4.5)
	require.NoError(t, err)
	assert.Equal(t, 10.5, total)

	_, err = svc.AddTime(context.Background(), "u1", -1)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestProgressService_AnalyticsAndHistory(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	history := new(mocks.MockHistoryRepository)
	p := models.DefaultProgress()
	p.NumberLineAddition = models.GameStat{Level: 2, Completed: 4, Correct: 3}
	repo.On("Get", mock.Anything, "u1").Return(&p, nil)
	history.On("Recent", mock.Anything, "u1", defaultHistoryLimit).Return(nil, nil)
	history.On("Recent", mock.Anything, "u1", maxHistoryLimit).Return([]models.AnswerEvent{{ID: 1}}, nil)
	svc := NewProgressService(repo, history)

	a, err := svc.GetAnalytics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 75, a.Games[1].Accuracy)
	assert.Equal(t, 75, a.OverallAccuracy)

	events, err := svc.History(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	events, err = svc.History(context.Background(), "u1", 10000)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestProgressService_Reset(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("Delete", mock.Anything, "u1").Return(nil)

	p, err := NewProgressService(repo, nil).ResetProgress(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProgress(), *p)
	repo.AssertExpectations(t)
}

func TestGameService_NewQuestion(t *testing.T) {
	svc := NewGameService(new(mocks.MockProgressRepository), nil)

	q, err := svc.NewQuestion(context.Background(), game.Pattern, 3, game.Adaptive)
	require.NoError(t, err)
	assert.Equal(t, game.Pattern, game.MetaOf(q).Mode)

	_, err = svc.NewQuestion(context.Background(), game.Mode("geometry"), 1, game.Easy)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestGameService_SubmitAnswer_LevelsUpOnThirdCorrect(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	queue := new(mocks.MockJobQueue)
	repo.On("Get", mock.Anything, "u1").Return(nil, nil)
	repo.On("RecordAnswer", mock.Anything, "u1", models.AnswerOutcome{
		Mode:    game.Addition,
		Correct: true,
		Seconds: 2,
		LevelUp: true,
	}).Return(&models.GameStat{Level: 2, Completed: 3, Correct: 3}, nil)
	queue.On("EnqueueAnswer", mock.MatchedBy(func(e models.AnswerEvent) bool {
		return e.UserID == "u1" && e.Correct && e.Level == 1 && e.Difficulty == game.Adaptive
	})).Return(nil)

	res, err := NewGameService(repo, queue).SubmitAnswer(context.Background(), "u1", AnswerSubmission{
		Mode:        game.Addition,
		Question:    additionQuestion(game.Adaptive),
		Answer:      json.RawMessage(`5`),
		Streak:      2,
		TimeSeconds: 2,
	})
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, 0, res.Streak)
	assert.Equal(t, 2, res.Stat.Level)
	assert.Equal(t, 5, res.Solution)
	repo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestGameService_SubmitAnswer_WrongResetsStreak(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	repo.On("Get", mock.Anything, "u1").Return(nil, nil)
	repo.On("RecordAnswer", mock.Anything, "u1", models.AnswerOutcome{Mode: game.Addition}).
		Return(&models.GameStat{Level: 1, Completed: 1, Correct: 0}, nil)

	res, err := NewGameService(repo, nil).SubmitAnswer(context.Background(), "u1", AnswerSubmission{
		Mode:     game.Addition,
		Question: additionQuestion(game.Adaptive),
		Answer:   json.RawMessage(`4`),
		Streak:   2,
	})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Streak)
	assert.False(t, res.LeveledUp)
	repo.AssertNumberOfCalls(t, "RecordAnswer", 1)
	repo.AssertNotCalled(t, "AddTime", mock.Anything, mock.Anything, mock.Anything)
}

func TestGameService_SubmitAnswer_StaticTierNeverLevels(t *testing.T) {
	repo := new(mocks.MockProgressRepository)
	queue := new(mocks.MockJobQueue)
	repo.On("Get", mock.Anything, "u1").Return(nil, nil)
	repo.On("RecordAnswer", mock.Anything, "u1", models.AnswerOutcome{Mode: game.Addition, Correct: true}).
		Return(&models.GameStat{Level: 1, Completed: 9, Correct: 9}, nil)
	queue.On("EnqueueAnswer", mock.Anything).Return(stderrors.New("queue full"))

	res, err := NewGameService(repo, queue).SubmitAnswer(context.Background(), "u1", AnswerSubmission{
		Mode:     game.Addition,
		Question: additionQuestion(game.Hard),
		Answer:   json.RawMessage(`5`),
		Streak:   8,
	})
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 9, res.Streak)
	assert.Equal(t, 1, res.Level)
}

func TestGameService_SubmitAnswer_FailedWriteStoresNothing(t *testing.T) {
	ctx := context.Background()
	submit := AnswerSubmission{
		Mode:        game.Addition,
		Question:    additionQuestion(game.Adaptive),
		Answer:      json.RawMessage(`5`),
		Streak:      2,
		TimeSeconds: 4,
	}

	tests := []struct {
		name    string
		trigger string
	}{
		{"time update fails", `CREATE TRIGGER fail_write BEFORE UPDATE OF total_time ON progress
BEGIN SELECT RAISE(ABORT, 'disk full'); END`},
		{"level update fails", `CREATE TRIGGER fail_write BEFORE UPDATE OF level ON game_stats
WHEN NEW.level > OLD.level BEGIN SELECT RAISE(ABORT, 'disk full'); END`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlDB := testutil.NewTestDB(t)
			defer testutil.MustClose(t, sqlDB)
			repo := sqlite.NewProgressRepository(sqlDB)
			svc := NewGameService(repo, nil)

			_, err := sqlDB.ExecContext(ctx, tt.trigger)
			require.NoError(t, err)

			for range 2 {
				_, err = svc.SubmitAnswer(ctx, "u1", submit)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInternal), "got %v", err)
			}
			p, err := repo.Get(ctx, "u1")
			require.NoError(t, err)
			assert.Nil(t, p)

			_, err = sqlDB.ExecContext(ctx, `DROP TRIGGER fail_write`)
			require.NoError(t, err)

			res, err := svc.SubmitAnswer(ctx, "u1", submit)
			require.NoError(t, err)
			assert.Equal(t, models.GameStat{Level: 2, Completed: 1, Correct: 1}, res.Stat)

			p, err = repo.Get(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, 4.0, p.TotalTime)
		})
	}
}

func TestGameService_SubmitAnswer_Errors(t *testing.T) {
	svc := NewGameService(new(mocks.MockProgressRepository), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		sub  AnswerSubmission
		code string
	}{
		{"unknown mode", AnswerSubmission{Mode: "geometry"}, errors.ErrCodeNotFound},
		{"negative time", AnswerSubmission{Mode: game.Addition, TimeSeconds: -3}, errors.ErrCodeValidation},
		{"tampered question", AnswerSubmission{
			Mode:     game.Addition,
			Question: json.RawMessage(`{"a":2,"b":3,"sum":6}`),
			Answer:   json.RawMessage(`5`),
		}, errors.ErrCodeValidation},
		{"bad answer", AnswerSubmission{
			Mode:     game.Addition,
			Question: additionQuestion(game.Easy),
			Answer:   json.RawMessage(`"five"`),
		}, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitAnswer(ctx, "u1", tt.sub)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	issuer := auth.NewIssuer("0123456789abcdef", time.Hour)

	t.Run("register then login", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		var stored models.User
		users.On("Insert", mock.Anything, mock.AnythingOfType("models.User")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(models.User) }).
			Return(nil)
		svc := NewAuthService(users, issuer)

		res, err := svc.Register(ctx, " ada ", "Ada@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "ada", res.User.Username)
		assert.Equal(t, "ada@example.com", res.User.Email)
		assert.NotEmpty(t, res.User.ID)

		userID, err := svc.Authenticate(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, userID)

		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(&stored, nil)
		login, err := svc.Login(ctx, "ADA@example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, login.User.ID)

		_, err = svc.Login(ctx, "ada@example.com", "wrongpassword")
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewAuthService(new(mocks.MockUserRepository), issuer)

		_, err := svc.Register(ctx, "", "a@b.co", "supersecret")
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		_, err = svc.Register(ctx, "ada", "not-an-email", "supersecret")
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
		_, err = svc.Register(ctx, "ada", "a@b.co", "short")
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("Insert", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

		_, err := NewAuthService(users, issuer).Register(ctx, "ada", "a@b.co", "supersecret")
		assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("GetByEmail", mock.Anything, "who@b.co").Return(nil, nil)

		_, err := NewAuthService(users, issuer).Login(ctx, "who@b.co", "whatever1")
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := NewAuthService(new(mocks.MockUserRepository), issuer).Authenticate(ctx, "nope")
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
	})
}
