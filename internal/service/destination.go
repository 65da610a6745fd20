package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/repo"
)

// DestinationService implements business logic for Destination operations.
// It holds the customers repo because creating and scoped listing require
// verifying the owning customer exists.
type DestinationService struct {
	customers    repo.CustomerRepo
	destinations repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repos.
func NewDestinationService(customers repo.CustomerRepo, destinations repo.DestinationRepo) *DestinationService {
	return &DestinationService{customers: customers, destinations: destinations}
}

// Create validates the destination, verifies the owning customer exists,
// then persists. Status defaults to PLANNED.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the customer does not exist.
func (s *DestinationService) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	if d.Status == "" {
		d.Status = domain.StatusPlanned
	}
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}
	if err := s.requireCustomer(ctx, d.CustomerID); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	result, err := s.destinations.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single destination.
// Returns domain.ErrNotFound if no destination with that ID exists.
func (s *DestinationService) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	result, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of destinations matching q across all customers.
func (s *DestinationService) List(ctx context.Context, q domain.DestinationQuery) (domain.Page[domain.Destination], error) {
	items, total, err := s.destinations.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Destination]{}, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	return domain.NewPage(items, total, q.Page), nil
}

// ListByCustomer returns one page of a single customer's destinations.
// Returns domain.ErrNotFound if the customer does not exist.
func (s *DestinationService) ListByCustomer(ctx context.Context, customerID int64, q domain.DestinationQuery) (domain.Page[domain.Destination], error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return domain.Page[domain.Destination]{}, fmt.Errorf("service.DestinationService.ListByCustomer: %w", err)
	}
	q.Filter.CustomerID = &customerID
	items, total, err := s.destinations.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Destination]{}, fmt.Errorf("service.DestinationService.ListByCustomer: %w", err)
	}
	return domain.NewPage(items, total, q.Page), nil
}

// Update applies a partial update and stamps updated_at. When either date
// changes, the merged record must still end on or after its start.
// Returns domain.ErrNotFound if the destination does not exist.
func (s *DestinationService) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (domain.Destination, error) {
	if patch.Destination != nil && strings.TrimSpace(*patch.Destination) == "" {
		return domain.Destination{}, fmt.Errorf("%w: destination must not be empty", domain.ErrValidation)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Destination{}, fmt.Errorf("%w: status %q is not valid", domain.ErrValidation, *patch.Status)
	}
	if patch.StartDate != nil || patch.EndDate != nil {
		current, err := s.destinations.GetByID(ctx, id)
		if err != nil {
			return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
		}
		if err := validateDates(patch.Apply(current)); err != nil {
			return domain.Destination{}, err
		}
	}
	result, err := s.destinations.Update(ctx, id, patch)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination. Returns domain.ErrLastDestination (a
// validation error) when it is its customer's only destination, and
// domain.ErrNotFound if it does not exist.
func (s *DestinationService) Delete(ctx context.Context, id int64) error {
	if err := s.destinations.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// requireCustomer returns domain.ErrNotFound when the customer is missing.
func (s *DestinationService) requireCustomer(ctx context.Context, id int64) error {
	ok, err := s.customers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// validateDestination enforces business rules for a new destination.
//   - The label must be non-empty (whitespace-only labels are rejected).
//   - Start and end dates are required and end must not precede start.
//   - Status, when set, must be a declared member.
func validateDestination(d domain.Destination) error {
	if strings.TrimSpace(d.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if d.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", domain.ErrValidation)
	}
	if d.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", domain.ErrValidation)
	}
	if d.Status != "" && !d.Status.Valid() {
		return fmt.Errorf("%w: status %q is not valid", domain.ErrValidation, d.Status)
	}
	return validateDates(d)
}

func validateDates(d domain.Destination) error {
	if d.EndDate.Before(d.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}
