package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/ports"
)

// CatalogService manages the product catalog. Validation happens here before
// any store write; authorization does not — the router gates admin mutations.
type CatalogService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// AddProduct appends a new catalog entry. Negative prices are rejected, not
// clamped. The product name is the public identifier, enforced unique by the
// store index.
func (s *CatalogService) AddProduct(ctx context.Context, name string, price float64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidProduct
	}
	if price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	product := &domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Str("product", name).Float64("price", price).Msg("product added")
	return product, nil
}

// ListProducts returns all catalog entries in store order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// FindProduct resolves a product by name for order placement.
func (s *CatalogService) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	return s.repo.FindByName(ctx, name)
}
