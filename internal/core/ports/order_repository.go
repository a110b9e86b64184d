package ports

import (
	"context"

	"github.com/shopstack/portal/internal/core/domain"
)

// OrderRepository persists the purchase ledger. Append-only: there is no
// update or delete.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// ListByUsername returns every order placed by username, in store order.
	ListByUsername(ctx context.Context, username string) ([]*domain.Order, error)
}
