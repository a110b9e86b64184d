package ports

import (
	"context"

	"github.com/shopstack/portal/internal/core/domain"
)

// ProductRepository defines persistence for catalog entries.
// Create returns domain.ErrProductExists when the name is already taken.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// List returns all products in store order.
	List(ctx context.Context) ([]*domain.Product, error)
}
