package create

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/boekwinkel/order_service/internal/domain/events"
	"github.com/boekwinkel/order_service/internal/domain/models"
	"github.com/boekwinkel/order_service/internal/integrations/salesforce"
	"github.com/boekwinkel/order_service/internal/integrations/sap"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_deps.go -package=mocks

type OrderRepository interface {
	Create(ctx context.Context, customerID int64, items []models.OrderItemInput) (*models.Order, error)
	SetSalesforceID(ctx context.Context, orderID int64, salesforceID string) error
	SetSapStatus(ctx context.Context, orderID int64, status string) error
}

type CRMClient interface {
	CreateOrder(ctx context.Context, event events.OrderEvent) (string, error)
}

type ERPClient interface {
	SendOrder(ctx context.Context, order *models.Order) (sap.Response, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, action events.Action, event events.OrderEvent) error
	PublishToQueue(ctx context.Context, queue string, event any) error
}

type Gate interface {
	Validate(kind events.Kind, event any) (bool, []string)
}

// Service persists a new order and fans out to the broker, the CRM and the
// ERP. The local commit is the only hard failure point: once it succeeds,
// the three outbound legs run concurrently, each leg's failure is captured
// in the result and none of them can fail the order.
type Service struct {
	log       *slog.Logger
	repo      OrderRepository
	crm       CRMClient
	erp       ERPClient
	publisher EventPublisher
	gate      Gate
}

func New(
	log *slog.Logger,
	repo OrderRepository,
	crm CRMClient,
	erp ERPClient,
	publisher EventPublisher,
	gate Gate,
) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		crm:       crm,
		erp:       erp,
		publisher: publisher,
		gate:      gate,
	}
}

type Result struct {
	Order        *models.Order
	SalesforceID string
	SapStatus    string
	Message      string
}

func (s *Service) Create(ctx context.Context, customerID int64, items []models.OrderItemInput) (*Result, error) {
	const op = "services.order.create.Create"

	order, err := s.repo.Create(ctx, customerID, items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.String("order_number", order.OrderNumber))

	var (
		salesforceID string
		sapResp      sap.Response
	)

	// The legs always return nil: a failed leg records its outcome
	// instead of cancelling its siblings.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.publishOrderEvent(gctx, order)
		return nil
	})

	g.Go(func() error {
		salesforceID = s.callCRM(gctx, order)
		return nil
	})

	g.Go(func() error {
		sapResp = s.callERP(gctx, order)
		return nil
	})

	_ = g.Wait()

	order.SalesforceID = salesforceID
	order.SapStatus = sapResp.Status

	return &Result{
		Order:        order,
		SalesforceID: salesforceID,
		SapStatus:    fmt.Sprintf("Status %s: %s", sapResp.Status, sapResp.Message),
		Message:      "order created and forwarded to Salesforce (via broker) and SAP",
	}, nil
}

// publishOrderEvent validates and publishes the order event, best-effort.
// A validation failure skips the publish; the committed order stands.
func (s *Service) publishOrderEvent(ctx context.Context, order *models.Order) {
	event := events.NewOrderEvent(order)

	ok, errs := s.gate.Validate(events.KindOrder, event)
	if !ok {
		s.log.Warn("order event failed validation, publish skipped",
			slog.String("order_number", order.OrderNumber),
			slog.String("errors", strings.Join(errs, "; ")))
		return
	}

	if err := s.publisher.PublishOrderEvent(ctx, events.ActionCreated, event); err != nil {
		s.log.Error("failed to publish order event",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()))
	}

	if err := s.publisher.PublishToQueue(ctx, rabbitmq.LegacySalesforceQueue, event); err != nil {
		s.log.Error("failed to publish order to legacy queue",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()))
	}
}

func (s *Service) callCRM(ctx context.Context, order *models.Order) string {
	id, err := s.crm.CreateOrder(ctx, events.NewOrderEvent(order))
	if err != nil {
		s.log.Error("salesforce integration failed",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()))
		id = salesforce.FailureMarker
	}

	if err := s.repo.SetSalesforceID(ctx, order.ID, id); err != nil {
		s.log.Error("failed to store salesforce id",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
	}

	return id
}

func (s *Service) callERP(ctx context.Context, order *models.Order) sap.Response {
	resp, err := s.erp.SendOrder(ctx, order)
	if err != nil {
		s.log.Error("sap integration failed",
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()))
		resp = sap.Response{Success: false, Status: sap.StatusFailure, Message: err.Error()}
	}

	if err := s.repo.SetSapStatus(ctx, order.ID, resp.Status); err != nil {
		s.log.Error("failed to store sap status",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()))
	}

	return resp
}
