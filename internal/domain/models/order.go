package models

import "time"

const OrderStatusProcessing = "processing"

type Order struct {
	ID           int64       `db:"id" json:"id"`
	CustomerID   int64       `db:"customer_id" json:"customer_id"`
	OrderNumber  string      `db:"order_number" json:"order_number"`
	OrderDate    time.Time   `db:"order_date" json:"order_date"`
	Status       string      `db:"status" json:"status"`
	TotalAmount  float64     `db:"total_amount" json:"total_amount"`
	SalesforceID string      `db:"salesforce_id" json:"salesforce_id,omitempty"`
	SapStatus    string      `db:"sap_status" json:"sap_status,omitempty"`
	Customer     *Customer   `db:"-" json:"customer,omitempty"`
	Lines        []OrderLine `db:"-" json:"lines,omitempty"`
}

type OrderLine struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"order_id"`
	BookID    int64   `db:"book_id" json:"book_id"`
	BookTitle string  `db:"book_title" json:"book_title"`
	ISBN      string  `db:"isbn" json:"isbn"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// OrderItemInput is what the create-order flow receives before prices and
// titles are resolved against the catalogue.
type OrderItemInput struct {
	BookID   int64
	Quantity int
}
