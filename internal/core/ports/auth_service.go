package ports

import (
	"context"

	"github.com/shopstack/portal/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	// Login returns a signed session token and the matched user. Unknown
	// username and wrong password both yield domain.ErrInvalidCredentials;
	// the caller cannot tell the two apart.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
