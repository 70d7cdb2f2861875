package services

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/mathverse/internal/auth"
	"github.com/vytor/mathverse/internal/errors"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

// AuthService handles account registration, login and token checks
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	issuer   *auth.Issuer
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, issuer *auth.Issuer) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.NewValidationError("email", "must be a valid address")
	}
	if len(password) < auth.MinPasswordLength {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.NewConflictError("email already registered")
		}
		log.WithError(err).Error("failed to create user")
		return nil, errors.NewInternalError(err)
	}
	log.Info("registered user: user_id=%s", user.ID)

	return s.session(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		log.WithError(err).Error("failed to look up user")
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !stderrors.Is(err, auth.ErrMismatchedPassword) {
			log.WithError(err).Warn("password check failed")
		}
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	return s.session(ctx, *user)
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := s.issuer.Verify(token)
	if err != nil {
		logger.FromContext(ctx).Debug("rejected token: %v", err)
		return "", errors.NewUnauthorizedError("invalid or expired token")
	}
	return userID, nil
}

func (s *authService) session(ctx context.Context, user models.User) (*AuthResult, error) {
	token, expires, err := s.issuer.Issue(user.ID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("failed to issue token")
		return nil, errors.NewInternalError(err)
	}
	return &AuthResult{Token: token, ExpiresAt: expires, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
