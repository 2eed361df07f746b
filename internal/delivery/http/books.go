package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
	httpresponse "github.com/boekwinkel/order_service/internal/lib/http"
)

var (
	errEmptyTitle   = errors.New("title can't be empty")
	errInvalidPrice = errors.New("invalid price")
	errInvalidStock = errors.New("invalid stock")
)

type BookRequest struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	ISBN   string  `json:"isbn"`
}

func (req *BookRequest) validate() error {
	if req.Title == "" {
		return errEmptyTitle
	}
	if req.Price <= 0 {
		return errInvalidPrice
	}
	if req.Stock < 0 {
		return errInvalidStock
	}

	return nil
}

func (req *BookRequest) toDTO() models.Book {
	return models.Book{
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
		Stock:  req.Stock,
		ISBN:   req.ISBN,
	}
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var request BookRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := request.validate(); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	book := request.toDTO()
	created, err := h.books.Create(r.Context(), &book)
	if err != nil {
		h.log.Error("failed to create book", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var request BookRequest

	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = request.validate(); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	book := request.toDTO()
	book.ID = id

	if err = h.books.Update(r.Context(), &book); err != nil {
		if errors.Is(err, internalErrors.ErrBookNotFound) {
			httpresponse.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("failed to update book", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = h.books.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrBookNotFound):
			httpresponse.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, internalErrors.ErrBookHasOrderLines):
			httpresponse.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("failed to delete book", "error", err)
			httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.books.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrBookNotFound) {
			httpresponse.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("failed to get book", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusOK, book)
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		h.log.Error("failed to list books", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusOK, books)
}
