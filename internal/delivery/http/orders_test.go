package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
	createService "github.com/boekwinkel/order_service/internal/services/order/create"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type stubOrderCreator struct {
	result *createService.Result
	err    error
}

func (s *stubOrderCreator) Create(ctx context.Context, customerID int64, items []models.OrderItemInput) (*createService.Result, error) {
	return s.result, s.err
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	tCases := []struct {
		name    string
		request CreateOrderRequest
		wantErr error
	}{
		{
			name: "valid",
			request: CreateOrderRequest{
				CustomerID: 1,
				Items:      []OrderItemRequest{{BookID: 1, Quantity: 2}},
			},
		},
		{
			name: "missing customer",
			request: CreateOrderRequest{
				Items: []OrderItemRequest{{BookID: 1, Quantity: 2}},
			},
			wantErr: errInvalidCustomerID,
		},
		{
			name:    "no items",
			request: CreateOrderRequest{CustomerID: 1},
			wantErr: errEmptyItems,
		},
		{
			name: "bad book id",
			request: CreateOrderRequest{
				CustomerID: 1,
				Items:      []OrderItemRequest{{BookID: 0, Quantity: 2}},
			},
			wantErr: errInvalidBookID,
		},
		{
			name: "zero quantity",
			request: CreateOrderRequest{
				CustomerID: 1,
				Items:      []OrderItemRequest{{BookID: 1, Quantity: 0}},
			},
			wantErr: errInvalidQuantity,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			err := tCase.request.validate()

			if tCase.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tCase.wantErr)
		})
	}
}

func TestCreateOrderHandler(t *testing.T) {
	order := &models.Order{
		ID:          1,
		OrderNumber: "ORD20240315093000",
		Status:      models.OrderStatusProcessing,
		TotalAmount: 99.98,
	}

	tCases := []struct {
		name       string
		creator    *stubOrderCreator
		reqBody    string
		wantStatus int
	}{
		{
			name: "created",
			creator: &stubOrderCreator{result: &createService.Result{
				Order:        order,
				SalesforceID: "SF1A2B3C4D",
				SapStatus:    "Status 53: iDoc verwerkt",
			}},
			reqBody:    `{"customer_id": 1, "items": [{"book_id": 1, "quantity": 2}]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid body",
			creator:    &stubOrderCreator{},
			reqBody:    `{"customer_id": 1, "items": []}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown customer",
			creator:    &stubOrderCreator{err: fmt.Errorf("create: %w", internalErrors.ErrCustomerNotFound)},
			reqBody:    `{"customer_id": 99, "items": [{"book_id": 1, "quantity": 2}]}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "insufficient stock",
			creator:    &stubOrderCreator{err: fmt.Errorf("create: %w", internalErrors.ErrInsufficientStock)},
			reqBody:    `{"customer_id": 1, "items": [{"book_id": 1, "quantity": 999}]}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			h := NewHandler(testLogger(), tCase.creator, nil, nil, nil, "")

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(tCase.reqBody))
			req.Header.Set("Content-Type", "application/json")

			h.createOrder(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			require.Equal(t, tCase.wantStatus, res.StatusCode)

			if tCase.wantStatus == http.StatusCreated {
				var body OrderResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
				require.Equal(t, "ORD20240315093000", body.OrderNumber)
				require.Equal(t, "SF1A2B3C4D", body.SalesforceID)
			}
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("empty key disables the check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		APIKey("")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		APIKey("geheim")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.Header.Set("X-API-Key", "fout")
		APIKey("geheim")(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct key passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		req.Header.Set("X-API-Key", "geheim")
		APIKey("geheim")(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
