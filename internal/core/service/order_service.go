package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/ports"
)

// OrderService records purchases in an append-only ledger. No stock checks,
// no duplicate-purchase checks, no reservation semantics.
type OrderService struct {
	catalog ports.CatalogService
	repo    ports.OrderRepository
	log     zerolog.Logger
}

func NewOrderService(catalog ports.CatalogService, repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{catalog: catalog, repo: repo, log: log}
}

// PlaceOrder resolves the product through the catalog and snapshots its name
// and price into a new ledger entry. The copy is deliberate: a later change
// to the catalog price never retroactively affects past orders.
func (s *OrderService) PlaceOrder(ctx context.Context, username, productName string) (*domain.Order, error) {
	product, err := s.catalog.FindProduct(ctx, productName)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		Username:  username,
		Product:   product.Name,
		Price:     product.Price,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Str("username", username).Str("product", productName).Msg("failed to record order")
		return nil, err
	}

	s.log.Info().Str("username", username).Str("product", order.Product).Float64("price", order.Price).Msg("order placed")
	return order, nil
}

// ListOrders returns every order placed by username, in store order.
func (s *OrderService) ListOrders(ctx context.Context, username string) ([]*domain.Order, error) {
	return s.repo.ListByUsername(ctx, username)
}
