package book

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

type Repository struct {
	log *slog.Logger
	db  *sqlx.DB
}

func NewRepository(log *slog.Logger, db *sqlx.DB) *Repository {
	return &Repository{log: log, db: db}
}

func (r *Repository) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	const op = "repository.book.Create"

	const query = `INSERT INTO books (title, author, price, stock, isbn) VALUES ($1, $2, $3, $4, $5) RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, b.Title, b.Author, b.Price, b.Stock, b.ISBN).Scan(&b.ID); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: insert book: %w", op, err)
	}

	return b, nil
}

func (r *Repository) Update(ctx context.Context, b *models.Book) error {
	const op = "repository.book.Update"

	const query = `UPDATE books SET title = $1, author = $2, price = $3, stock = $4, isbn = $5 WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query, b.Title, b.Author, b.Price, b.Stock, b.ISBN, b.ID)
	if err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return fmt.Errorf("%s: update book: %w", op, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return internalErrors.ErrBookNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	const op = "repository.book.Delete"

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return fmt.Errorf("%s: delete book: %w", op, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return internalErrors.ErrBookNotFound
	}

	return nil
}

func (r *Repository) ByID(ctx context.Context, id int64) (*models.Book, error) {
	const op = "repository.book.ByID"

	var b models.Book

	const query = `SELECT id, title, author, price, stock, isbn FROM books WHERE id = $1`

	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrBookNotFound
		}
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select book: %w", op, err)
	}

	return &b, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Book, error) {
	const op = "repository.book.List"

	var books []models.Book

	const query = `SELECT id, title, author, price, stock, isbn FROM books ORDER BY id`

	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		r.log.Error(op, slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select books: %w", op, err)
	}

	return books, nil
}
