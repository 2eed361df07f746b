package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
)

type Cipher interface {
	Decrypt(encoded string) (string, error)
}

type Repository struct {
	log    *slog.Logger
	db     *sqlx.DB
	cipher Cipher
}

func NewRepository(log *slog.Logger, db *sqlx.DB, cipher Cipher) *Repository {
	return &Repository{log: log, db: db, cipher: cipher}
}

// Create persists the order, its lines and the stock decrement in one
// serializable transaction. The returned order is fully hydrated (customer
// decrypted, lines with titles and prices) so the fan-out legs need no
// further reads.
func (r *Repository) Create(ctx context.Context, customerID int64, items []models.OrderItemInput) (order *models.Order, err error) {
	const op = "repository.order.Create"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				r.log.Error(op, slog.String("error", rollBackErr.Error()))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	customer, err := r.customerTx(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	books, err := r.booksForUpdate(ctx, tx, items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order = &models.Order{
		CustomerID:  customerID,
		OrderNumber: NewOrderNumber(now),
		OrderDate:   now,
		Status:      models.OrderStatusProcessing,
		Customer:    customer,
	}

	const orderQuery = `
		INSERT INTO orders (customer_id, order_number, order_date, status, total_amount)
			VALUES ($1, $2, $3, $4, 0)
			RETURNING id`

	if err = tx.QueryRowContext(ctx, orderQuery, customerID, order.OrderNumber, order.OrderDate, order.Status).
		Scan(&order.ID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: insert order: %w", op, err)
	}

	for _, item := range items {
		book := books[item.BookID]

		if book.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: %q has %d in stock, %d requested",
				internalErrors.ErrInsufficientStock, book.Title, book.Stock, item.Quantity)
		}

		line := models.OrderLine{
			OrderID:   order.ID,
			BookID:    book.ID,
			BookTitle: book.Title,
			ISBN:      book.ISBN,
			Quantity:  item.Quantity,
			UnitPrice: book.Price,
		}

		const lineQuery = `
			INSERT INTO order_lines (order_id, book_id, quantity, unit_price)
				VALUES ($1, $2, $3, $4)
				RETURNING id`

		if err = tx.QueryRowContext(ctx, lineQuery, order.ID, book.ID, item.Quantity, book.Price).
			Scan(&line.ID); err != nil {
			r.log.Error(op, slog.String("error", err.Error()))
			return nil, fmt.Errorf("%s: insert order line: %w", op, err)
		}

		if _, err = tx.ExecContext(ctx,
			`UPDATE books SET stock = stock - $1 WHERE id = $2`, item.Quantity, book.ID); err != nil {
			r.log.Error(op, slog.String("error", err.Error()))
			return nil, fmt.Errorf("%s: decrement stock: %w", op, err)
		}

		order.Lines = append(order.Lines, line)
		order.TotalAmount += float64(item.Quantity) * book.Price
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE orders SET total_amount = $1 WHERE id = $2`, order.TotalAmount, order.ID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: set order total: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return order, nil
}

// SetSalesforceID writes back the CRM leg outcome. The CRM and ERP
// write-backs touch disjoint columns, so they may run concurrently without
// an optimistic-concurrency check.
func (r *Repository) SetSalesforceID(ctx context.Context, orderID int64, salesforceID string) error {
	const op = "repository.order.SetSalesforceID"

	if _, err := r.db.ExecContext(ctx,
		`UPDATE orders SET salesforce_id = $1 WHERE id = $2`, salesforceID, orderID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return fmt.Errorf("%s: update order: %w", op, err)
	}

	return nil
}

// SetSapStatus writes back the ERP leg outcome.
func (r *Repository) SetSapStatus(ctx context.Context, orderID int64, status string) error {
	const op = "repository.order.SetSapStatus"

	if _, err := r.db.ExecContext(ctx,
		`UPDATE orders SET sap_status = $1 WHERE id = $2`, status, orderID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return fmt.Errorf("%s: update order: %w", op, err)
	}

	return nil
}

func (r *Repository) ByID(ctx context.Context, id int64) (*models.Order, error) {
	const op = "repository.order.ByID"

	var row orderRow

	const orderQuery = `
		SELECT id, customer_id, order_number, order_date, status, total_amount,
		       COALESCE(salesforce_id, '') AS salesforce_id,
		       COALESCE(sap_status, '') AS sap_status
			FROM orders
			WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, orderQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select order: %w", op, err)
	}

	order := row.toModel()

	customer, err := r.customer(ctx, order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Customer = customer

	const linesQuery = `
		SELECT ol.id, ol.order_id, ol.book_id, b.title AS book_title, b.isbn, ol.quantity, ol.unit_price
			FROM order_lines ol
			JOIN books b ON b.id = ol.book_id
			WHERE ol.order_id = $1
			ORDER BY ol.id`

	if err := r.db.SelectContext(ctx, &order.Lines, linesQuery, id); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select order lines: %w", op, err)
	}

	return order, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	const op = "repository.order.List"

	var rows []orderRow

	const query = `
		SELECT id, customer_id, order_number, order_date, status, total_amount,
		       COALESCE(salesforce_id, '') AS salesforce_id,
		       COALESCE(sap_status, '') AS sap_status
			FROM orders
			ORDER BY id`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select orders: %w", op, err)
	}

	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, *row.toModel())
	}

	return orders, nil
}

// HasOrders reports whether any order references the customer; such a
// customer must not be deleted.
func (r *Repository) HasOrders(ctx context.Context, customerID int64) (bool, error) {
	const op = "repository.order.HasOrders"

	var exists bool

	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE customer_id = $1)`, customerID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// HasOrderLines reports whether any order line references the book.
func (r *Repository) HasOrderLines(ctx context.Context, bookID int64) (bool, error) {
	const op = "repository.order.HasOrderLines"

	var exists bool

	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM order_lines WHERE book_id = $1)`, bookID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// NewOrderNumber renders the fixed order-number template: literal ORD plus
// a 14-digit timestamp.
func NewOrderNumber(t time.Time) string {
	return "ORD" + t.Format("20060102150405")
}

type orderRow struct {
	ID           int64     `db:"id"`
	CustomerID   int64     `db:"customer_id"`
	OrderNumber  string    `db:"order_number"`
	OrderDate    time.Time `db:"order_date"`
	Status       string    `db:"status"`
	TotalAmount  float64   `db:"total_amount"`
	SalesforceID string    `db:"salesforce_id"`
	SapStatus    string    `db:"sap_status"`
}

func (row orderRow) toModel() *models.Order {
	return &models.Order{
		ID:           row.ID,
		CustomerID:   row.CustomerID,
		OrderNumber:  row.OrderNumber,
		OrderDate:    row.OrderDate,
		Status:       row.Status,
		TotalAmount:  row.TotalAmount,
		SalesforceID: row.SalesforceID,
		SapStatus:    row.SapStatus,
	}
}

func (r *Repository) customer(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer

	if err := r.db.GetContext(ctx, &c,
		`SELECT id, name, email, phone, address FROM customers WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}

	return r.openCustomer(&c)
}

func (r *Repository) customerTx(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Customer, error) {
	var c models.Customer

	if err := tx.GetContext(ctx, &c,
		`SELECT id, name, email, phone, address FROM customers WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}

	return r.openCustomer(&c)
}

func (r *Repository) openCustomer(c *models.Customer) (*models.Customer, error) {
	var err error

	if c.Email, err = r.cipher.Decrypt(c.Email); err != nil {
		return nil, fmt.Errorf("decrypt email: %w", err)
	}
	if c.Phone, err = r.cipher.Decrypt(c.Phone); err != nil {
		return nil, fmt.Errorf("decrypt phone: %w", err)
	}
	if c.Address, err = r.cipher.Decrypt(c.Address); err != nil {
		return nil, fmt.Errorf("decrypt address: %w", err)
	}

	return c, nil
}

func (r *Repository) booksForUpdate(ctx context.Context, tx *sqlx.Tx, items []models.OrderItemInput) (map[int64]*models.Book, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BookID)
	}

	const query = `SELECT id, title, author, price, stock, isbn FROM books WHERE id = ANY($1) FOR UPDATE`

	var books []models.Book
	if err := tx.SelectContext(ctx, &books, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}

	byID := make(map[int64]*models.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	for _, item := range items {
		if _, ok := byID[item.BookID]; !ok {
			return nil, fmt.Errorf("%w: id %d", internalErrors.ErrBookNotFound, item.BookID)
		}
	}

	return byID, nil
}
