package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/mathverse/internal/game"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
	"github.com/vytor/mathverse/internal/repository/sqlite"
	"github.com/vytor/mathverse/internal/testutil"
)

type UserHistorySuite struct {
	suite.Suite
	db      *sql.DB
	users   repository.UserRepository
	history repository.HistoryRepository
}

func (s *UserHistorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.users = sqlite.NewUserRepository(s.db)
	s.history = sqlite.NewHistoryRepository(s.db)
}

func (s *UserHistorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserHistorySuite) TestInsertAndGetUser() {
	ctx := context.Background()
	u := models.User{ID: "id-1", Username: "ada", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: time.Now()}

	s.Require().NoError(s.users.Insert(ctx, u))

	got, err := s.users.GetByEmail(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("id-1", got.ID)
	s.Assert().Equal("hash", got.PasswordHash)

	byID, err := s.users.Get(ctx, "id-1")
	s.Require().NoError(err)
	s.Assert().Equal("ada", byID.Username)

	missing, err := s.users.Get(ctx, "id-2")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *UserHistorySuite) TestInsertDuplicateEmail() {
	ctx := context.Background()
	u := models.User{ID: "id-1", Username: "ada", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: time.Now()}
	s.Require().NoError(s.users.Insert(ctx, u))

	u.ID = "id-2"
	err := s.users.Insert(ctx, u)
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *UserHistorySuite) TestHistoryRecentOrderAndLimit() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := s.history.Insert(ctx, models.AnswerEvent{
			UserID:      "u1",
			Mode:        game.Addition,
			Correct:     i%2 == 0,
			Level:       i + 1,
			Difficulty:  game.Adaptive,
			TimeSeconds: float64(i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		s.Require().NoError(err)
	}
	_, err := s.history.Insert(ctx, models.AnswerEvent{UserID: "u2", Mode: game.Pattern, Level: 1, Difficulty: game.Easy, CreatedAt: base})
	s.Require().NoError(err)

	events, err := s.history.Recent(ctx, "u1", 3)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Assert().Equal(5, events[0].Level)
	s.Assert().Equal(4, events[1].Level)
	s.Assert().Equal(game.Addition, events[0].Mode)
	s.Assert().True(events[0].Correct)

	none, err := s.history.Recent(ctx, "u3", 0)
	s.Require().NoError(err)
	s.Assert().Empty(none)
}

func TestUserHistorySuite(t *testing.T) {
	suite.Run(t, new(UserHistorySuite))
}
