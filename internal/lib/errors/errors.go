package errors

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookNotFound     = errors.New("book not found")

	ErrInsufficientStock = errors.New("insufficient stock")

	ErrCustomerHasOrders = errors.New("customer still has orders")
	ErrBookHasOrderLines = errors.New("book is still referenced by order lines")
)
