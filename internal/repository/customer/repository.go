package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
)

// Cipher protects PII columns (email, phone, address) at rest.
type Cipher interface {
	Encrypt(plain string) (string, error)
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

func (r *Repository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	const op = "repository.customer.Create"

	enc, err := r.seal(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	const query = `INSERT INTO customers (name, email, phone, address) VALUES ($1, $2, $3, $4) RETURNING id`

	if err = r.db.QueryRowContext(ctx, query, c.Name, enc.Email, enc.Phone, enc.Address).Scan(&c.ID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: insert customer: %w", op, err)
	}

	return c, nil
}

func (r *Repository) Update(ctx context.Context, c *models.Customer) error {
	const op = "repository.customer.Update"

	enc, err := r.seal(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const query = `UPDATE customers SET name = $1, email = $2, phone = $3, address = $4 WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query, c.Name, enc.Email, enc.Phone, enc.Address, c.ID)
	if err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return fmt.Errorf("%s: update customer: %w", op, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return internalErrors.ErrCustomerNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	const op = "repository.customer.Delete"

	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return fmt.Errorf("%s: delete customer: %w", op, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return internalErrors.ErrCustomerNotFound
	}

	return nil
}

func (r *Repository) ByID(ctx context.Context, id int64) (*models.Customer, error) {
	const op = "repository.customer.ByID"

	var c models.Customer

	const query = `SELECT id, name, email, phone, address FROM customers WHERE id = $1`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrCustomerNotFound
		}
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select customer: %w", op, err)
	}

	if err := r.open(&c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	const op = "repository.customer.List"

	var customers []models.Customer

	const query = `SELECT id, name, email, phone, address FROM customers ORDER BY id`

	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select customers: %w", op, err)
	}

	for i := range customers {
		if err := r.open(&customers[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return customers, nil
}

type sealed struct {
	Email   string
	Phone   string
	Address string
}

func (r *Repository) seal(c *models.Customer) (sealed, error) {
	var (
		s   sealed
		err error
	)

	if s.Email, err = r.cipher.Encrypt(c.Email); err != nil {
		return s, fmt.Errorf("encrypt email: %w", err)
	}
	if s.Phone, err = r.cipher.Encrypt(c.Phone); err != nil {
		return s, fmt.Errorf("encrypt phone: %w", err)
	}
	if s.Address, err = r.cipher.Encrypt(c.Address); err != nil {
		return s, fmt.Errorf("encrypt address: %w", err)
	}

	return s, nil
}

func (r *Repository) open(c *models.Customer) error {
	var err error

	if c.Email, err = r.cipher.Decrypt(c.Email); err != nil {
		return fmt.Errorf("decrypt email: %w", err)
	}
	if c.Phone, err = r.cipher.Decrypt(c.Phone); err != nil {
		return fmt.Errorf("decrypt phone: %w", err)
	}
	if c.Address, err = r.cipher.Decrypt(c.Address); err != nil {
		return fmt.Errorf("decrypt address: %w", err)
	}

	return nil
}
