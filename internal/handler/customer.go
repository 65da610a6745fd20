package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

type customerResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Destinations []destinationResponse `json:"destinations"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    *time.Time            `json:"updatedAt"`
}

func customerToResponse(c domain.Customer) customerResponse {
	dests := make([]destinationResponse, len(c.Destinations))
	for i, d := range c.Destinations {
		dests[i] = destinationToResponse(d)
	}
	return customerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Destinations: dests,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type createCustomerRequest struct {
	Name         string              `json:"name" validate:"required,notblank"`
	Email        openapi_types.Email `json:"email" validate:"required,email"`
	Destinations []destinationItem   `json:"destinations" validate:"required,min=1,dive"`
}

type updateCustomerRequest struct {
	Name  *string              `json:"name" validate:"omitempty,notblank"`
	Email *openapi_types.Email `json:"email" validate:"omitempty,email"`
}

func (in updateCustomerRequest) toPatch() domain.CustomerPatch {
	p := domain.CustomerPatch{Name: in.Name}
	if in.Email != nil {
		email := string(*in.Email)
		p.Email = &email
	}
	return p
}

// ListCustomers handles GET /customers.
// Supports name, email, createdFrom/To, updatedFrom/To, sortBy, sortOrder,
// page and limit. Each customer is returned with all its destinations.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q, err := customerQuery(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	page, err := s.customers.List(r.Context(), q)
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	writePage(s, w, r, "Customers retrieved successfully", page, customerToResponse)
}

// GetCustomer handles GET /customer/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	c, err := s.customers.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	s.ok(w, r, http.StatusOK, "Customer retrieved successfully", customerToResponse(c))
}

// ListCustomerDestinations handles GET /customer/{id}/destinations.
// Accepts the same filters, sorting and paging as GET /destinations.
func (s *Server) ListCustomerDestinations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	q, err := destinationQuery(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	page, err := s.destinations.ListByCustomer(r.Context(), id, q)
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	writePage(s, w, r, "Destinations retrieved successfully", page, destinationToResponse)
}

// CreateCustomer handles POST /customer/create.
// The customer and its destinations are stored together or not at all.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	c := domain.Customer{
		Name:         req.Name,
		Email:        string(req.Email),
		Destinations: make([]domain.Destination, len(req.Destinations)),
	}
	for i, d := range req.Destinations {
		c.Destinations[i] = d.toDomain(0)
	}

	created, err := s.customers.Create(r.Context(), c)
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	s.metrics.IncrementCustomersCreated(len(created.Destinations))
	s.ok(w, r, http.StatusCreated, "Customer created successfully", customerToResponse(created))
}

// UpdateCustomer handles PATCH /customer/update/{id}.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	var req updateCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	updated, err := s.customers.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	s.ok(w, r, http.StatusOK, "Customer updated successfully", customerToResponse(updated))
}

// DeleteCustomer handles DELETE /customer/delete/{id}.
// The customer's destinations are deleted with it.
func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	if err := s.customers.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	s.ok(w, r, http.StatusOK, "Customer deleted successfully", nil)
}
