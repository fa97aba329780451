package repository

import (
	"context"

	"github.com/oksasatya/vidtube/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByUsernameOrEmail returns ErrNotFound when neither value is taken.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
