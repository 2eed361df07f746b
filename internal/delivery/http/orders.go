package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
	httpresponse "github.com/boekwinkel/order_service/internal/lib/http"
)

var (
	errEmptyItems        = errors.New("order must contain at least 1 item")
	errInvalidCustomerID = errors.New("invalid customer_id")
	errInvalidBookID     = errors.New("invalid book_id")
	errInvalidQuantity   = errors.New("invalid quantity")
)

type CreateOrderRequest struct {
	CustomerID int64              `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

func (req *CreateOrderRequest) validate() error {
	if req.CustomerID <= 0 {
		return errInvalidCustomerID
	}

	if len(req.Items) == 0 {
		return errEmptyItems
	}

	for _, item := range req.Items {
		if item.BookID <= 0 {
			return errInvalidBookID
		}
		if item.Quantity <= 0 {
			return errInvalidQuantity
		}
	}

	return nil
}

func (req *CreateOrderRequest) toDTO() []models.OrderItemInput {
	items := make([]models.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItemInput{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		})
	}

	return items
}

type OrderResponse struct {
	OrderID      int64     `json:"orderId"`
	OrderNumber  string    `json:"orderNummer"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"totalAmount"`
	OrderDate    time.Time `json:"orderDate"`
	SalesforceID string    `json:"salesforceId"`
	SapStatus    string    `json:"sapStatus"`
	Message      string    `json:"message"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var request CreateOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.log.Error("failed to decode request", "error", err)
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := request.validate(); err != nil {
		h.log.Error("failed to validate request", "error", err)
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.orderCreator.Create(r.Context(), request.CustomerID, request.toDTO())
	if err != nil {
		h.log.Error("failed to create order", "error", err)

		switch {
		case errors.Is(err, internalErrors.ErrCustomerNotFound),
			errors.Is(err, internalErrors.ErrBookNotFound):
			httpresponse.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, internalErrors.ErrInsufficientStock):
			httpresponse.Error(w, http.StatusBadRequest, err.Error())
		default:
			httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// Integration failures are reported as status fields, never as an
	// HTTP error: the order itself already committed.
	_ = httpresponse.JSON(w, http.StatusCreated, OrderResponse{
		OrderID:      result.Order.ID,
		OrderNumber:  result.Order.OrderNumber,
		Status:       result.Order.Status,
		TotalAmount:  result.Order.TotalAmount,
		OrderDate:    result.Order.OrderDate,
		SalesforceID: result.SalesforceID,
		SapStatus:    result.SapStatus,
		Message:      result.Message,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderProvider.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			httpresponse.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("failed to get order", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderProvider.List(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusOK, orders)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}

	return id, nil
}
