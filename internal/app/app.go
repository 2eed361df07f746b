package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	httpapp "github.com/boekwinkel/order_service/internal/app/http"
	"github.com/boekwinkel/order_service/internal/background"
	"github.com/boekwinkel/order_service/internal/config"
	"github.com/boekwinkel/order_service/internal/consumers"
	"github.com/boekwinkel/order_service/internal/crypto"
	deliveryhttp "github.com/boekwinkel/order_service/internal/delivery/http"
	"github.com/boekwinkel/order_service/internal/domain/models"
	"github.com/boekwinkel/order_service/internal/integrations/salesforce"
	"github.com/boekwinkel/order_service/internal/integrations/sap"
	"github.com/boekwinkel/order_service/internal/repository"
	bookService "github.com/boekwinkel/order_service/internal/services/book"
	customerService "github.com/boekwinkel/order_service/internal/services/customer"
	orderCreationService "github.com/boekwinkel/order_service/internal/services/order/create"
	orderRetrievalService "github.com/boekwinkel/order_service/internal/services/order/get"
	"github.com/boekwinkel/order_service/internal/validation"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
	"github.com/boekwinkel/order_service/pkg/databases/postgres"
)

const (
	orderCacheSize = 128
	orderCacheTTL  = 10 * time.Minute

	taskErrBuffer = 16
)

type App struct {
	log *slog.Logger

	HTTPServer *httpapp.App

	db     *postgres.PgDB
	broker *rabbitmq.Client
	tasks  *background.Runner

	workers       []*rabbitmq.Worker
	cancelWorkers context.CancelFunc
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.NewApp"

	cipher, err := setupCipher(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := postgres.New(ctx, log, postgres.Config{
		Host:    cfg.Postgres.Host,
		Port:    cfg.Postgres.Port,
		User:    cfg.Postgres.User,
		Pwd:     cfg.Postgres.Pwd,
		DbName:  cfg.Postgres.DbName,
		SslMode: cfg.Postgres.SslMode,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(log, db.GetDB(), cipher)

	broker := rabbitmq.Connect(log, rabbitmq.Config{
		Host:  cfg.Rabbit.Host,
		Port:  cfg.Rabbit.Port,
		User:  cfg.Rabbit.User,
		Pwd:   cfg.Rabbit.Pwd,
		VHost: cfg.Rabbit.VHost,
	})

	if err = broker.SetupTopology(); err != nil {
		_ = broker.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gate := validation.NewGate(log)
	publisher := rabbitmq.NewPublisher(log, broker)

	crm := salesforce.NewClient(log)
	erp := sap.NewClient(log)

	tasks := background.NewRunner(log, taskErrBuffer)

	orderCreationSvc := orderCreationService.New(log, repo.Orders, crm, erp, publisher, gate)

	cache := expirable.NewLRU[int64, *models.Order](orderCacheSize, nil, orderCacheTTL)
	orderRetrievalSvc := orderRetrievalService.New(log, cache, repo.Orders)

	bookSvc := bookService.New(log, repo.Books, repo.Orders, publisher, gate, tasks)
	customerSvc := customerService.New(log, repo.Customers, repo.Orders, publisher, gate, tasks)

	handler := deliveryhttp.NewHandler(log, orderCreationSvc, orderRetrievalSvc, bookSvc, customerSvc, cfg.APIKey)

	httpServer := httpapp.NewApp(log, handler.InitRoutes(), cfg.HTTP.Port)

	application := &App{
		log:        log,
		HTTPServer: httpServer,
		db:         db,
		broker:     broker,
		tasks:      tasks,
		workers:    setupWorkers(log, broker, crm),
	}

	application.startWorkers(ctx)

	return application, nil
}

// setupWorkers binds each consumed queue to its handler. The salesforce
// topic queue forwards orders to the CRM; everything else, the legacy
// queues included, is audited. Every queue the service publishes to must
// have a worker here, or it accumulates messages unbounded.
func setupWorkers(log *slog.Logger, broker *rabbitmq.Client, crm *salesforce.Client) []*rabbitmq.Worker {
	forwarder := consumers.NewOrderForwarder(log, crm)

	return []*rabbitmq.Worker{
		rabbitmq.NewWorker(log, broker, rabbitmq.SalesforceOrderQueue, forwarder.Handle),
		rabbitmq.NewWorker(log, broker, rabbitmq.EntityChangeQueue, consumers.NewAuditSink(log, "entity-changes").Handle),
		rabbitmq.NewWorker(log, broker, rabbitmq.CustomerDeletedQueue, consumers.NewAuditSink(log, "customer-deleted").Handle),
		rabbitmq.NewWorker(log, broker, rabbitmq.BookDeletedQueue, consumers.NewAuditSink(log, "book-deleted").Handle),
		rabbitmq.NewWorker(log, broker, rabbitmq.LegacySalesforceQueue, consumers.NewAuditSink(log, "legacy-salesforce-orders").Handle),
		rabbitmq.NewWorker(log, broker, rabbitmq.LegacyEntityChangesQueue, consumers.NewAuditSink(log, "legacy-entity-changes").Handle),
	}
}

func (a *App) startWorkers(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	a.cancelWorkers = cancel

	for _, w := range a.workers {
		w := w
		go func() {
			if err := w.Run(workerCtx); err != nil {
				a.log.Error("consumer worker stopped", slog.String("error", err.Error()))
			}
		}()
	}
}

// BrokerDegraded reports whether the service came up without broker
// connectivity.
func (a *App) BrokerDegraded() bool {
	return a.broker.Degraded()
}

func (a *App) Stop() error {
	const op = "app.Stop"

	if a.cancelWorkers != nil {
		a.cancelWorkers()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.HTTPServer.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.tasks.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("background tasks did not drain", slog.String("error", err.Error()))
	}

	if err := a.broker.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func setupCipher(cfg *config.Config) (*crypto.Encryptor, error) {
	if cfg.Encryption.Key == "" {
		// Local profile without a key: customer PII survives only for
		// the lifetime of this process.
		return crypto.NewEphemeral()
	}

	return crypto.New(cfg.Encryption.Key)
}
