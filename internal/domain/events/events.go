package events

import (
	"encoding/json"
	"time"

	"github.com/boekwinkel/order_service/internal/domain/models"
)

// Kind tags an outbound event for the validation gate registry.
type Kind string

const (
	KindOrder           Kind = "OrderEvent"
	KindEntityChange    Kind = "EntityChangeEvent"
	KindCustomerDeleted Kind = "CustomerDeletedEvent"
	KindBookDeleted     Kind = "BookDeletedEvent"
)

type EntityType string

const (
	EntityCustomer EntityType = "Customer"
	EntityBook     EntityType = "Book"
	EntityOrder    EntityType = "Order"
)

type Action string

const (
	ActionCreated Action = "Created"
	ActionUpdated Action = "Updated"
	ActionDeleted Action = "Deleted"
)

const defaultActor = "System"

// OrderEvent is the wire representation of a committed order, consumed by
// the CRM forwarder. Immutable once built.
type OrderEvent struct {
	OrderNumber   string      `json:"order_number" validate:"required,order_number"`
	CustomerName  string      `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string      `json:"customer_email" validate:"required,email"`
	OrderDate     time.Time   `json:"order_date" validate:"required,not_future"`
	TotalAmount   float64     `json:"total_amount" validate:"gt=0,lt=100000"`
	Items         []OrderItem `json:"items" validate:"required,min=1,max=50,dive"`
}

type OrderItem struct {
	BookTitle string  `json:"book_title" validate:"required,max=200"`
	Quantity  int     `json:"quantity" validate:"gt=0,lte=100"`
	UnitPrice float64 `json:"unit_price" validate:"gt=0,lt=10000"`
}

func NewOrderEvent(order *models.Order) OrderEvent {
	ev := OrderEvent{
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate,
		TotalAmount: order.TotalAmount,
	}

	if order.Customer != nil {
		ev.CustomerName = order.Customer.Name
		ev.CustomerEmail = order.Customer.Email
	}

	for _, line := range order.Lines {
		ev.Items = append(ev.Items, OrderItem{
			BookTitle: line.BookTitle,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return ev
}

// EntityChangeEvent records a committed create/update/delete of a catalogue
// or customer entity. Data carries a typed per-kind payload rather than an
// open-ended map, so round-trips stay exact.
type EntityChangeEvent struct {
	EntityType  EntityType      `json:"entity_type" validate:"required,entity_type"`
	Action      Action          `json:"action" validate:"required,action_type"`
	EntityID    int64           `json:"entity_id" validate:"gt=0"`
	EntityName  string          `json:"entity_name" validate:"required,max=200"`
	Timestamp   time.Time       `json:"timestamp" validate:"required,not_future"`
	PerformedBy string          `json:"performed_by"`
	Data        json.RawMessage `json:"data,omitempty"`
}

type CustomerChangeData struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type BookChangeData struct {
	ISBN  string `json:"isbn"`
	Stock int    `json:"stock"`
}

func NewCustomerChange(action Action, c *models.Customer) EntityChangeEvent {
	data, _ := json.Marshal(CustomerChangeData{Email: c.Email, Phone: c.Phone})

	return EntityChangeEvent{
		EntityType:  EntityCustomer,
		Action:      action,
		EntityID:    c.ID,
		EntityName:  c.Name,
		Timestamp:   time.Now().UTC(),
		PerformedBy: defaultActor,
		Data:        data,
	}
}

func NewBookChange(action Action, b *models.Book) EntityChangeEvent {
	data, _ := json.Marshal(BookChangeData{ISBN: b.ISBN, Stock: b.Stock})

	return EntityChangeEvent{
		EntityType:  EntityBook,
		Action:      action,
		EntityID:    b.ID,
		EntityName:  b.Title,
		Timestamp:   time.Now().UTC(),
		PerformedBy: defaultActor,
		Data:        data,
	}
}

// CustomerDeletedEvent snapshots the customer before the row is removed.
// It must be built before the DELETE executes.
type CustomerDeletedEvent struct {
	CustomerID int64     `json:"customer_id" validate:"gt=0"`
	Name       string    `json:"name" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	DeletedAt  time.Time `json:"deleted_at" validate:"required,not_future"`
	Reason     string    `json:"reason" validate:"required,max=500"`
}

func NewCustomerDeleted(c *models.Customer, reason string) CustomerDeletedEvent {
	return CustomerDeletedEvent{
		CustomerID: c.ID,
		Name:       c.Name,
		Email:      c.Email,
		DeletedAt:  time.Now().UTC(),
		Reason:     reason,
	}
}

// BookDeletedEvent snapshots the book, including its last known stock
// count, before the row is removed.
type BookDeletedEvent struct {
	BookID    int64     `json:"book_id" validate:"gt=0"`
	Title     string    `json:"title" validate:"required"`
	ISBN      string    `json:"isbn"`
	LastStock int       `json:"last_stock"`
	DeletedAt time.Time `json:"deleted_at" validate:"required,not_future"`
	Reason    string    `json:"reason" validate:"required,max=500"`
}

func NewBookDeleted(b *models.Book, reason string) BookDeletedEvent {
	return BookDeletedEvent{
		BookID:    b.ID,
		Title:     b.Title,
		ISBN:      b.ISBN,
		LastStock: b.Stock,
		DeletedAt: time.Now().UTC(),
		Reason:    reason,
	}
}
