package book

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

type bookRepository interface {
	Create(ctx context.Context, b *models.Book) (*models.Book, error)
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
}

type orderChecker interface {
	HasOrderLines(ctx context.Context, bookID int64) (bool, error)
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
	repo      bookRepository
	orders    orderChecker
	publisher eventPublisher
	gate      gate
	tasks     *background.Runner
}

func New(
	log *slog.Logger,
	repo bookRepository,
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

func (s *Service) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	const op = "services.book.Create"

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publishChange(events.NewBookChange(events.ActionCreated, created))

	return created, nil
}

func (s *Service) Update(ctx context.Context, b *models.Book) error {
	const op = "services.book.Update"

	if err := s.repo.Update(ctx, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publishChange(events.NewBookChange(events.ActionUpdated, b))

	return nil
}

// Delete refuses while order lines still reference the book. The deletion
// snapshot is taken before the row is removed; both deletion events go out
// fire-and-forget so delete latency never waits on the broker.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "services.book.Delete"

	book, err := s.repo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	referenced, err := s.orders.HasOrderLines(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if referenced {
		return internalErrors.ErrBookHasOrderLines
	}

	deleted := events.NewBookDeleted(book, "User requested deletion via API")
	change := events.NewBookChange(events.ActionDeleted, book)

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.tasks.Go("publish book deletion events", func(taskCtx context.Context) error {
		if ok, _ := s.gate.Validate(events.KindBookDeleted, deleted); ok {
			if err := s.publisher.PublishToQueue(taskCtx, rabbitmq.BookDeletedQueue, deleted); err != nil {
				return err
			}
		}
		return s.publisher.PublishToQueue(taskCtx, rabbitmq.LegacyEntityChangesQueue, change)
	})
	s.publishChange(change)

	s.log.Info("book deleted", slog.Int64("book_id", id), slog.String("title", book.Title))

	return nil
}

func (s *Service) ByID(ctx context.Context, id int64) (*models.Book, error) {
	const op = "services.book.ByID"

	book, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Service) List(ctx context.Context) ([]models.Book, error) {
	const op = "services.book.List"

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (s *Service) publishChange(event events.EntityChangeEvent) {
	if ok, _ := s.gate.Validate(events.KindEntityChange, event); !ok {
		return
	}

	s.tasks.Go("publish book change event", func(taskCtx context.Context) error {
		return s.publisher.PublishEntityEvent(taskCtx, event)
	})
}
