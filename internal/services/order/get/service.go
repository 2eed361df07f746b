package get

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/boekwinkel/order_service/internal/domain/models"
)

type orderProvider interface {
	ByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
}

type Service struct {
	log   *slog.Logger
	cache *expirable.LRU[int64, *models.Order]

	orderProvider orderProvider
}

func New(log *slog.Logger, cache *expirable.LRU[int64, *models.Order], orderProvider orderProvider) *Service {
	return &Service{
		log:           log,
		cache:         cache,
		orderProvider: orderProvider,
	}
}

func (s *Service) ByID(ctx context.Context, id int64) (*models.Order, error) {
	const op = "services.order.get.ByID"

	if order, ok := s.cache.Get(id); ok {
		return order, nil
	}

	order, err := s.orderProvider.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_ = s.cache.Add(id, order)

	return order, nil
}

func (s *Service) List(ctx context.Context) ([]models.Order, error) {
	const op = "services.order.get.List"

	orders, err := s.orderProvider.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}
