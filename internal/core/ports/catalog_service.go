package ports

import (
	"context"

	"github.com/shopstack/portal/internal/core/domain"
)

// CatalogService manages catalog entries. It performs no authorization
// checks; role gating happens in the router layer before a call reaches it.
type CatalogService interface {
	AddProduct(ctx context.Context, name string, price float64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	FindProduct(ctx context.Context, name string) (*domain.Product, error)
}
