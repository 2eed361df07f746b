package create

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/boekwinkel/order_service/internal/domain/events"
	"github.com/boekwinkel/order_service/internal/domain/models"
	"github.com/boekwinkel/order_service/internal/integrations/salesforce"
	"github.com/boekwinkel/order_service/internal/integrations/sap"
	"github.com/boekwinkel/order_service/internal/services/order/create/mocks"
	"github.com/boekwinkel/order_service/pkg/brokers/rabbitmq"
)

type testDeps struct {
	repo      *mocks.MockOrderRepository
	crm       *mocks.MockCRMClient
	erp       *mocks.MockERPClient
	publisher *mocks.MockEventPublisher
	gate      *mocks.MockGate
}

func newTestService(t *testing.T) (*Service, testDeps) {
	t.Helper()

	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	deps := testDeps{
		repo:      mocks.NewMockOrderRepository(ctl),
		crm:       mocks.NewMockCRMClient(ctl),
		erp:       mocks.NewMockERPClient(ctl),
		publisher: mocks.NewMockEventPublisher(ctl),
		gate:      mocks.NewMockGate(ctl),
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return New(log, deps.repo, deps.crm, deps.erp, deps.publisher, deps.gate), deps
}

func committedOrder() *models.Order {
	return &models.Order{
		ID:          1,
		CustomerID:  1,
		OrderNumber: "ORD20240315093000",
		OrderDate:   time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		Status:      models.OrderStatusProcessing,
		TotalAmount: 99.98,
		Customer:    &models.Customer{ID: 1, Name: "Jan Jansen", Email: "jan@example.com"},
		Lines: []models.OrderLine{
			{BookID: 1, BookTitle: "C# in Depth", Quantity: 2, UnitPrice: 49.99},
		},
	}
}

func TestCreate_HappyPath(t *testing.T) {
	svc, deps := newTestService(t)

	ctx := context.Background()
	items := []models.OrderItemInput{{BookID: 1, Quantity: 2}}
	order := committedOrder()

	deps.repo.EXPECT().Create(ctx, int64(1), items).Return(order, nil)

	deps.gate.EXPECT().Validate(events.KindOrder, gomock.Any()).Return(true, nil)
	deps.publisher.EXPECT().PublishOrderEvent(gomock.Any(), events.ActionCreated, gomock.Any()).Return(nil)
	deps.publisher.EXPECT().PublishToQueue(gomock.Any(), rabbitmq.LegacySalesforceQueue, gomock.Any()).Return(nil)

	deps.crm.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("SF1A2B3C4D", nil)
	deps.repo.EXPECT().SetSalesforceID(gomock.Any(), int64(1), "SF1A2B3C4D").Return(nil)

	deps.erp.EXPECT().SendOrder(gomock.Any(), order).Return(sap.Response{
		Success:    true,
		Status:     sap.StatusSuccess,
		Message:    "iDoc verwerkt",
		IDocNumber: "IDOC0000000001",
	}, nil)
	deps.repo.EXPECT().SetSapStatus(gomock.Any(), int64(1), sap.StatusSuccess).Return(nil)

	result, err := svc.Create(ctx, 1, items)

	require.NoError(t, err)
	require.Equal(t, "ORD20240315093000", result.Order.OrderNumber)
	require.InDelta(t, 99.98, result.Order.TotalAmount, 0.001)
	require.Equal(t, "SF1A2B3C4D", result.SalesforceID)
	require.Equal(t, "Status 53: iDoc verwerkt", result.SapStatus)
}

func TestCreate_RepoFailureIsFatal(t *testing.T) {
	svc, deps := newTestService(t)

	ctx := context.Background()
	items := []models.OrderItemInput{{BookID: 1, Quantity: 2}}

	deps.repo.EXPECT().Create(ctx, int64(1), items).Return(nil, errors.New("insufficient stock"))

	result, err := svc.Create(ctx, 1, items)

	require.Error(t, err)
	require.Nil(t, result)
}

func TestCreate_CRMFailureIsCaptured(t *testing.T) {
	svc, deps := newTestService(t)

	ctx := context.Background()
	items := []models.OrderItemInput{{BookID: 1, Quantity: 2}}
	order := committedOrder()

	deps.repo.EXPECT().Create(ctx, int64(1), items).Return(order, nil)

	deps.gate.EXPECT().Validate(events.KindOrder, gomock.Any()).Return(true, nil)
	deps.publisher.EXPECT().PublishOrderEvent(gomock.Any(), events.ActionCreated, gomock.Any()).Return(nil)
	deps.publisher.EXPECT().PublishToQueue(gomock.Any(), rabbitmq.LegacySalesforceQueue, gomock.Any()).Return(nil)

	deps.crm.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("", errors.New("salesforce timeout"))
	deps.repo.EXPECT().SetSalesforceID(gomock.Any(), int64(1), salesforce.FailureMarker).Return(nil)

	deps.erp.EXPECT().SendOrder(gomock.Any(), order).Return(sap.Response{
		Success: true,
		Status:  sap.StatusSuccess,
		Message: "iDoc verwerkt",
	}, nil)
	deps.repo.EXPECT().SetSapStatus(gomock.Any(), int64(1), sap.StatusSuccess).Return(nil)

	result, err := svc.Create(ctx, 1, items)

	require.NoError(t, err)
	require.Equal(t, salesforce.FailureMarker, result.SalesforceID)
}

func TestCreate_ERPFailureIsCaptured(t *testing.T) {
	svc, deps := newTestService(t)

	ctx := context.Background()
	items := []models.OrderItemInput{{BookID: 1, Quantity: 2}}
	order := committedOrder()

	deps.repo.EXPECT().Create(ctx, int64(1), items).Return(order, nil)

	deps.gate.EXPECT().Validate(events.KindOrder, gomock.Any()).Return(true, nil)
	deps.publisher.EXPECT().PublishOrderEvent(gomock.Any(), events.ActionCreated, gomock.Any()).Return(nil)
	deps.publisher.EXPECT().PublishToQueue(gomock.Any(), rabbitmq.LegacySalesforceQueue, gomock.Any()).Return(nil)

	deps.crm.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("SF1A2B3C4D", nil)
	deps.repo.EXPECT().SetSalesforceID(gomock.Any(), int64(1), "SF1A2B3C4D").Return(nil)

	deps.erp.EXPECT().SendOrder(gomock.Any(), order).Return(sap.Response{}, errors.New("sap offline"))
	deps.repo.EXPECT().SetSapStatus(gomock.Any(), int64(1), sap.StatusFailure).Return(nil)

	result, err := svc.Create(ctx, 1, items)

	require.NoError(t, err)
	require.Equal(t, "Status 51: sap offline", result.SapStatus)
}

func TestCreate_ValidationFailureSkipsPublish(t *testing.T) {
	svc, deps := newTestService(t)

	ctx := context.Background()
	items := []models.OrderItemInput{{BookID: 1, Quantity: 2}}
	order := committedOrder()
	order.TotalAmount = 0

	deps.repo.EXPECT().Create(ctx, int64(1), items).Return(order, nil)

	deps.gate.EXPECT().Validate(events.KindOrder, gomock.Any()).
		Return(false, []string{"TotalAmount: failed rule 'gt' (0)"})

	deps.crm.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return("SF1A2B3C4D", nil)
	deps.repo.EXPECT().SetSalesforceID(gomock.Any(), int64(1), "SF1A2B3C4D").Return(nil)

	deps.erp.EXPECT().SendOrder(gomock.Any(), order).Return(sap.Response{
		Success: true,
		Status:  sap.StatusSuccess,
	}, nil)
	deps.repo.EXPECT().SetSapStatus(gomock.Any(), int64(1), sap.StatusSuccess).Return(nil)

	result, err := svc.Create(ctx, 1, items)

	require.NoError(t, err)
	require.NotNil(t, result.Order)
}
