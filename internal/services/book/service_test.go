package book

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boekwinkel/order_service/internal/background"
	"github.com/boekwinkel/order_service/internal/domain/events"
	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
	"github.com/boekwinkel/order_service/internal/validation"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

type stubRepo struct {
	book    *models.Book
	deleted bool
}

func (s *stubRepo) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	created := *b
	created.ID = 1
	return &created, nil
}

func (s *stubRepo) Update(ctx context.Context, b *models.Book) error { return nil }

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	s.deleted = true
	return nil
}

func (s *stubRepo) ByID(ctx context.Context, id int64) (*models.Book, error) {
	if s.book == nil || s.book.ID != id {
		return nil, internalErrors.ErrBookNotFound
	}
	return s.book, nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.Book, error) { return nil, nil }

type stubChecker struct {
	referenced bool
}

func (s *stubChecker) HasOrderLines(ctx context.Context, bookID int64) (bool, error) {
	return s.referenced, nil
}

// recordingPublisher captures everything handed to the broker.
type recordingPublisher struct {
	mu           sync.Mutex
	entityEvents []events.EntityChangeEvent
	queuePushes  map[string][]any
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{queuePushes: map[string][]any{}}
}

func (p *recordingPublisher) PublishEntityEvent(ctx context.Context, event events.EntityChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entityEvents = append(p.entityEvents, event)
	return nil
}

func (p *recordingPublisher) PublishToQueue(ctx context.Context, queue string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queuePushes[queue] = append(p.queuePushes[queue], event)
	return nil
}

func (p *recordingPublisher) queued(queue string) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queuePushes[queue]
}

func (p *recordingPublisher) entities() []events.EntityChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entityEvents
}

func newTestService(t *testing.T, repo *stubRepo, checker *stubChecker, publisher *recordingPublisher) (*Service, *background.Runner) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tasks := background.NewRunner(log, 4)

	return New(log, repo, checker, publisher, validation.NewGate(log), tasks), tasks
}

func drain(t *testing.T, tasks *background.Runner) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tasks.Shutdown(ctx))
}

func TestCreate_PublishesEntityChange(t *testing.T) {
	publisher := newRecordingPublisher()
	svc, tasks := newTestService(t, &stubRepo{}, &stubChecker{}, publisher)

	created, err := svc.Create(context.Background(), &models.Book{
		Title: "Refactoring", Author: "Martin Fowler", Price: 42.99, Stock: 18, ISBN: "978-0134757599",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	drain(t, tasks)

	entities := publisher.entities()
	require.Len(t, entities, 1)
	require.Equal(t, events.EntityBook, entities[0].EntityType)
	require.Equal(t, events.ActionCreated, entities[0].Action)
}

func TestDelete_RefusedWhileReferenced(t *testing.T) {
	publisher := newRecordingPublisher()
	repo := &stubRepo{book: &models.Book{ID: 2, Title: "Clean Code", ISBN: "978-0132350884"}}
	svc, tasks := newTestService(t, repo, &stubChecker{referenced: true}, publisher)

	err := svc.Delete(context.Background(), 2)

	require.ErrorIs(t, err, internalErrors.ErrBookHasOrderLines)
	require.False(t, repo.deleted)

	drain(t, tasks)
	require.Empty(t, publisher.entities())
	require.Empty(t, publisher.queued(rabbitmq.BookDeletedQueue))
}

func TestDelete_PublishesSnapshotAndChange(t *testing.T) {
	publisher := newRecordingPublisher()
	repo := &stubRepo{book: &models.Book{ID: 2, Title: "Clean Code", ISBN: "978-0132350884", Stock: 30}}
	svc, tasks := newTestService(t, repo, &stubChecker{}, publisher)

	require.NoError(t, svc.Delete(context.Background(), 2))
	require.True(t, repo.deleted)

	drain(t, tasks)

	snapshots := publisher.queued(rabbitmq.BookDeletedQueue)
	require.Len(t, snapshots, 1)

	snapshot, ok := snapshots[0].(events.BookDeletedEvent)
	require.True(t, ok)
	require.Equal(t, "Clean Code", snapshot.Title)
	require.Equal(t, 30, snapshot.LastStock)

	require.Len(t, publisher.queued(rabbitmq.LegacyEntityChangesQueue), 1)

	entities := publisher.entities()
	require.Len(t, entities, 1)
	require.Equal(t, events.ActionDeleted, entities[0].Action)
}

func TestDelete_UnknownBook(t *testing.T) {
	svc, _ := newTestService(t, &stubRepo{}, &stubChecker{}, newRecordingPublisher())

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, internalErrors.ErrBookNotFound)
}
