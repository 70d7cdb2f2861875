package file

import (
	"context"
	"strings"

	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/repository"
)

type userRepository struct {
	store *Store
}

// NewUserRepository creates a file-backed UserRepository
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Insert(ctx context.Context, u models.User) error {
	logger.FromContext(ctx).WithPrefix("file_users").Debug("inserting user: id=%s", u.ID)

	return r.store.update(func(doc *document) error {
		for _, existing := range doc.Users {
			if strings.EqualFold(existing.Email, u.Email) {
				return repository.ErrDuplicate
			}
		}
		if _, ok := doc.Users[u.ID]; ok {
			return repository.ErrDuplicate
		}
		doc.Users[u.ID] = fileUser{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt.UTC(),
		}
		return nil
	})
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.find(ctx, func(u fileUser) bool { return u.ID == id })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(ctx, func(u fileUser) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepository) find(ctx context.Context, match func(fileUser) bool) (*models.User, error) {
	logger.FromContext(ctx).WithPrefix("file_users").Debug("looking up user")

	var out *models.User
	err := r.store.view(func(doc *document) error {
		for _, u := range doc.Users {
			if match(u) {
				out = &models.User{
					ID:           u.ID,
					Username:     u.Username,
					Email:        u.Email,
					PasswordHash: u.PasswordHash,
					CreatedAt:    u.CreatedAt,
				}
				return nil
			}
		}
		return nil
	})
	return out, err
}
