package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/boekwinkel/order_service/internal/domain/models"
	internalErrors "github.com/boekwinkel/order_service/internal/lib/errors"
	httpresponse "github.com/boekwinkel/order_service/internal/lib/http"
)

var (
	errEmptyName    = errors.New("name can't be empty")
	errInvalidEmail = errors.New("invalid email")
)

type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (req *CustomerRequest) validate() error {
	if req.Name == "" {
		return errEmptyName
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errInvalidEmail
	}

	return nil
}

func (req *CustomerRequest) toDTO() models.Customer {
	return models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var request CustomerRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := request.validate(); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	customer := request.toDTO()
	created, err := h.customers.Create(r.Context(), &customer)
	if err != nil {
		h.log.Error("failed to create customer", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var request CustomerRequest

	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = request.validate(); err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	customer := request.toDTO()
	customer.ID = id

	if err = h.customers.Update(r.Context(), &customer); err != nil {
		if errors.Is(err, internalErrors.ErrCustomerNotFound) {
			httpresponse.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("failed to update customer", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = h.customers.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrCustomerNotFound):
			httpresponse.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, internalErrors.ErrCustomerHasOrders):
			httpresponse.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("failed to delete customer", "error", err)
			httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.customers.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCustomerNotFound) {
			httpresponse.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("failed to get customer", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusOK, customer)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		h.log.Error("failed to list customers", "error", err)
		httpresponse.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = httpresponse.JSON(w, http.StatusOK, customers)
}
