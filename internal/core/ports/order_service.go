package ports

import (
	"context"

	"github.com/shopstack/portal/internal/core/domain"
)

// OrderService records purchases. Like CatalogService it is gate-free; the
// router guarantees only an authenticated user role can reach it.
type OrderService interface {
	PlaceOrder(ctx context.Context, username, productName string) (*domain.Order, error)
	ListOrders(ctx context.Context, username string) ([]*domain.Order, error)
}
