package customer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boekwinkel/order_service/internal/background"
	"github.com/boekwinkel/order_service/internal/domain/events"
	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

type customerRepository interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type orderChecker interface {
	HasOrders(ctx context.Context, customerID int64) (bool, error)
}

type eventPublisher interface {
	PublishEntityEvent(ctx context.Context, event events.EntityChangeEvent) error
	PublishToQueue(ctx context.Context, queue string, event any) error
}

type gate interface {
	Validate(kind events.Kind, event any) (bool, []string)
}

type Service struct {
	log       *slog.Logger
	repo      customerRepository
	orders    orderChecker
	publisher eventPublisher
	gate      gate
	tasks     *background.Runner
}

func New(
	log *slog.Logger,
	repo customerRepository,
	orders orderChecker,
	publisher eventPublisher,
	gate gate,
	tasks *background.Runner,
) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		orders:    orders,
		publisher: publisher,
		gate:      gate,
		tasks:     tasks,
	}
}

func (s *Service) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	const op = "services.customer.Create"

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publishChange(events.NewCustomerChange(events.ActionCreated, created))

	return created, nil
}

func (s *Service) Update(ctx context.Context, c *models.Customer) error {
	const op = "services.customer.Update"

	if err := s.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publishChange(events.NewCustomerChange(events.ActionUpdated, c))

	return nil
}

// Delete refuses while orders still reference the customer: no snapshot is
// built and nothing is published. Otherwise the deletion snapshot is taken
// before the row disappears and published fire-and-forget.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "services.customer.Delete"

	customer, err := s.repo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hasOrders, err := s.orders.HasOrders(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if hasOrders {
		return internalErrors.ErrCustomerHasOrders
	}

	deleted := events.NewCustomerDeleted(customer, "User requested deletion via API")
	change := events.NewCustomerChange(events.ActionDeleted, customer)

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.tasks.Go("publish customer deletion events", func(taskCtx context.Context) error {
		if ok, _ := s.gate.Validate(events.KindCustomerDeleted, deleted); ok {
			if err := s.publisher.PublishToQueue(taskCtx, rabbitmq.CustomerDeletedQueue, deleted); err != nil {
				return err
			}
		}
		return s.publisher.PublishToQueue(taskCtx, rabbitmq.LegacyEntityChangesQueue, change)
	})
	s.publishChange(change)

	s.log.Info("customer deleted", slog.Int64("customer_id", id), slog.String("name", customer.Name))

	return nil
}

func (s *Service) ByID(ctx context.Context, id int64) (*models.Customer, error) {
	const op = "services.customer.ByID"

	customer, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]models.Customer, error) {
	const op = "services.customer.List"

	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return customers, nil
}

func (s *Service) publishChange(event events.EntityChangeEvent) {
	if ok, _ := s.gate.Validate(events.KindEntityChange, event); !ok {
		return
	}

	s.tasks.Go("publish customer change event", func(taskCtx context.Context) error {
		return s.publisher.PublishEntityEvent(taskCtx, event)
	})
}
