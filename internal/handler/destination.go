package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

type destinationResponse struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customerId"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func destinationToResponse(d domain.Destination) destinationResponse {
	return destinationResponse{
		ID:          d.ID,
		CustomerID:  d.CustomerID,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// destinationItem is a destination nested in a customer create request.
type destinationItem struct {
	Destination string     `json:"destination" validate:"required,notblank"`
	StartDate   *timestamp `json:"startDate" validate:"required"`
	EndDate     *timestamp `json:"endDate" validate:"required"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED CANCELLED"`
}

func (in destinationItem) toDomain(customerID int64) domain.Destination {
	return domain.Destination{
		CustomerID:  customerID,
		Destination: in.Destination,
		StartDate:   in.StartDate.Time,
		EndDate:     in.EndDate.Time,
		Status:      domain.Status(deref(in.Status)),
	}
}

type createDestinationRequest struct {
	CustomerID  int64      `json:"customerId" validate:"required,gt=0"`
	Destination string     `json:"destination" validate:"required,notblank"`
	StartDate   *timestamp `json:"startDate" validate:"required"`
	EndDate     *timestamp `json:"endDate" validate:"required"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED CANCELLED"`
}

// updateDestinationRequest carries a partial update. customerId is accepted
// only so that an attempt to move a destination can be rejected explicitly.
type updateDestinationRequest struct {
	CustomerID  *int64     `json:"customerId"`
	Destination *string    `json:"destination" validate:"omitempty,notblank"`
	StartDate   *timestamp `json:"startDate"`
	EndDate     *timestamp `json:"endDate"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED CANCELLED"`
}

func (in updateDestinationRequest) toPatch() domain.DestinationPatch {
	var p domain.DestinationPatch
	p.Destination = in.Destination
	if in.StartDate != nil {
		p.StartDate = &in.StartDate.Time
	}
	if in.EndDate != nil {
		p.EndDate = &in.EndDate.Time
	}
	if in.Status != nil {
		st := domain.Status(*in.Status)
		p.Status = &st
	}
	return p
}

// GetDestination handles GET /destination/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	d, err := s.destinations.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "Destination not found")
		return
	}
	s.ok(w, r, http.StatusOK, "Destination retrieved successfully", destinationToResponse(d))
}

// ListDestinations handles GET /destinations.
// Supports name, startDate, endDate, status, sortBy, sortOrder, page and limit.
// Unknown sortBy or sortOrder values are rejected with 400.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	q, err := destinationQuery(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	page, err := s.destinations.List(r.Context(), q)
	if err != nil {
		s.writeServiceError(w, r, err, "Destination not found")
		return
	}
	writePage(s, w, r, "Destinations retrieved successfully", page, destinationToResponse)
}

// CreateDestination handles POST /destination/create.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req createDestinationRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	created, err := s.destinations.Create(r.Context(), domain.Destination{
		CustomerID:  req.CustomerID,
		Destination: req.Destination,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Status:      domain.Status(deref(req.Status)),
	})
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}
	s.metrics.IncrementDestinationsCreated()
	s.ok(w, r, http.StatusCreated, "Destination created successfully", destinationToResponse(created))
}

// UpdateDestination handles PATCH /destination/update/{id}.
// Only the supplied fields change; updatedAt is always stamped.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	var req updateDestinationRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	if req.CustomerID != nil {
		s.writeRequestError(w, r, fmt.Errorf("%w: customerId cannot be changed", domain.ErrValidation))
		return
	}
	updated, err := s.destinations.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.writeServiceError(w, r, err, "Destination not found")
		return
	}
	s.ok(w, r, http.StatusOK, "Destination updated successfully", destinationToResponse(updated))
}

// DeleteDestination handles DELETE /destination/delete/{id}.
// Deleting a customer's only destination is rejected with 400.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	if err := s.destinations.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "Destination not found")
		return
	}
	s.ok(w, r, http.StatusOK, "Destination deleted successfully", nil)
}
