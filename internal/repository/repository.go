package repository

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/boekwinkel/order_service/internal/repository/book"
	"github.com/boekwinkel/order_service/internal/repository/customer"
	"github.com/boekwinkel/order_service/internal/repository/order"
)

// Cipher is what the PII-bearing repositories need from the encryptor.
type Cipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(encoded string) (string, error)
}

type Repository struct {
	Books     *book.Repository
	Customers *customer.Repository
	Orders    *order.Repository
}

func NewRepository(log *slog.Logger, db *sqlx.DB, cipher Cipher) *Repository {
	return &Repository{
		Books:     book.NewRepository(log, db),
		Customers: customer.NewRepository(log, db, cipher),
		Orders:    order.NewRepository(log, db, cipher),
	}
}
