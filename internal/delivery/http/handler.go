package delivery

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	createService "github.com/boekwinkel/order_service/internal/services/order/create"

	"github.com/boekwinkel/order_service/internal/domain/models"
)

type OrderCreator interface {
	Create(ctx context.Context, customerID int64, items []models.OrderItemInput) (*createService.Result, error)
}

type OrderProvider interface {
	ByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
}

type BookService interface {
	Create(ctx context.Context, b *models.Book) (*models.Book, error)
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
}

type CustomerService interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type Handler struct {
	log *slog.Logger

	orderCreator  OrderCreator
	orderProvider OrderProvider
	books         BookService
	customers     CustomerService
	apiKey        string
}

func NewHandler(
	log *slog.Logger,
	orderCreator OrderCreator,
	orderProvider OrderProvider,
	books BookService,
	customers CustomerService,
	apiKey string,
) *Handler {
	return &Handler{
		log:           log,
		orderCreator:  orderCreator,
		orderProvider: orderProvider,
		books:         books,
		customers:     customers,
		apiKey:        apiKey,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Route("/api", func(r chi.Router) {
		r.Use(APIKey(h.apiKey))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.listBooks)
			r.Post("/", h.createBook)
			r.Get("/{id}", h.getBook)
			r.Put("/{id}", h.updateBook)
			r.Delete("/{id}", h.deleteBook)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.listCustomers)
			r.Post("/", h.createCustomer)
			r.Get("/{id}", h.getCustomer)
			r.Put("/{id}", h.updateCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})
	})

	return mux
}
