package ports

import (
	"context"

	"github.com/shopstack/portal/internal/core/domain"
)

// UserRepository defines persistence for account records.
//
// Create must enforce username uniqueness at the store (unique index) and
// return domain.ErrUserExists on a duplicate, so two concurrent registrations
// with the same name cannot both succeed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
