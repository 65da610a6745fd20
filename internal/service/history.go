package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/repo"
)

// HistoryService assembles the data rendered by the history download.
type HistoryService struct {
	customers    repo.CustomerRepo
	destinations repo.DestinationRepo
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(customers repo.CustomerRepo, destinations repo.DestinationRepo) *HistoryService {
	return &HistoryService{customers: customers, destinations: destinations}
}

// History returns the customer and every one of its destinations, unfiltered
// and unpaged, ordered by start date.
// Returns domain.ErrNotFound if the customer does not exist.
func (s *HistoryService) History(ctx context.Context, customerID int64) (domain.History, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return domain.History{}, fmt.Errorf("service.HistoryService.History: %w", err)
	}
	dests, err := s.destinations.ListByCustomerID(ctx, customerID)
	if err != nil {
		return domain.History{}, fmt.Errorf("service.HistoryService.History: %w", err)
	}
	customer.Destinations = nil
	return domain.History{Customer: customer, Destinations: dests}, nil
}
