package repository

import (
	"context"
	"time"

	"github.com/omarsel/flashmart/internal/domain/model"
)

// UserRepository describes persistence operations for identities and
// the admin role grant lookup.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)
	CreateAnonymous(ctx context.Context) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	GrantAdmin(ctx context.Context, userID int64) error
	DeleteStaleAnonymous(ctx context.Context, olderThan time.Time) (int64, error)
}
