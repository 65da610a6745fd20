// Package service contains the business logic for the travel CRM API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/repo"
)

// CustomerService implements business logic for Customer operations.
type CustomerService struct {
	customers repo.CustomerRepo
}

// NewCustomerService constructs a CustomerService backed by the provided CustomerRepo.
func NewCustomerService(customers repo.CustomerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create validates the aggregate and persists the customer together with its
// destinations. Returns domain.ErrValidation if the customer has no
// destinations or any field violates a business rule.
func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	if err := validateCustomer(c); err != nil {
		return domain.Customer{}, err
	}
	result, err := s.customers.Create(ctx, c)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a customer and all its destinations.
// Returns domain.ErrNotFound if no customer with that ID exists.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	result, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of customers matching q.
func (s *CustomerService) List(ctx context.Context, q domain.CustomerQuery) (domain.Page[domain.Customer], error) {
	items, total, err := s.customers.List(ctx, q)
	if err != nil {
		return domain.Page[domain.Customer]{}, fmt.Errorf("service.CustomerService.List: %w", err)
	}
	return domain.NewPage(items, total, q.Page), nil
}

// Update applies a partial update. An empty patch still stamps updated_at.
// Returns domain.ErrNotFound if the customer does not exist.
func (s *CustomerService) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (domain.Customer, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Customer{}, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return domain.Customer{}, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
	}
	result, err := s.customers.Update(ctx, id, patch)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a customer and, by cascade, its destinations.
// Returns domain.ErrNotFound if the customer does not exist.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CustomerService.Delete: %w", err)
	}
	return nil
}

// validateCustomer enforces the rules for a new aggregate.
//   - Name and email must be non-empty.
//   - At least one destination is required, and each must be valid.
func validateCustomer(c domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(c.Destinations) == 0 {
		return fmt.Errorf("%w: at least one destination is required", domain.ErrValidation)
	}
	for i, d := range c.Destinations {
		if err := validateDestination(d); err != nil {
			return fmt.Errorf("destinations[%d]: %w", i, err)
		}
	}
	return nil
}
