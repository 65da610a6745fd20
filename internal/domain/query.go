package domain

import (
	"fmt"
	"slices"
	"time"
)

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DestinationSortKeys is the allow-list of sortBy values for destination listings.
var DestinationSortKeys = []string{"id", "customerId", "destination", "startDate", "endDate", "createdAt", "updatedAt"}

// CustomerSortKeys is the allow-list of sortBy values for customer listings.
var CustomerSortKeys = []string{"id", "name", "createdAt", "updatedAt"}

// Sort is one allow-listed sort key and a direction.
type Sort struct {
	By    string
	Order SortOrder
}

// NewSort normalizes optional sortBy/sortOrder values against allowed.
// Empty values fall back to "id" ascending. Values outside the allow-list
// are rejected with ErrValidation rather than silently replaced.
func NewSort(by, order string, allowed []string) (Sort, error) {
	s := Sort{By: "id", Order: SortAsc}
	if by != "" {
		if !slices.Contains(allowed, by) {
			return Sort{}, fmt.Errorf("%w: sortBy must be one of %v", ErrValidation, allowed)
		}
		s.By = by
	}
	switch SortOrder(order) {
	case "":
	case SortAsc, SortDesc:
		s.Order = SortOrder(order)
	default:
		return Sort{}, fmt.Errorf("%w: sortOrder must be asc or desc", ErrValidation)
	}
	return s, nil
}

// DestinationFilter lists the optional predicates of a destination listing.
// StartFrom keeps rows with start_date >= StartFrom; EndUntil keeps rows with
// end_date <= EndUntil. The two bounds are independent.
type DestinationFilter struct {
	CustomerID *int64
	Name       string
	StartFrom  *time.Time
	EndUntil   *time.Time
	Status     *Status
}

// DestinationQuery is the normalized filter/sort/page specification for
// destination listings.
type DestinationQuery struct {
	Filter DestinationFilter
	Sort   Sort
	Page   PaginationParams
}

// CustomerFilter lists the optional predicates of a customer listing.
// Each range bound is independently optional and inclusive.
type CustomerFilter struct {
	Name        string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	UpdatedFrom *time.Time
	UpdatedTo   *time.Time
}

// CustomerQuery is the normalized filter/sort/page specification for
// customer listings.
type CustomerQuery struct {
	Filter CustomerFilter
	Sort   Sort
	Page   PaginationParams
}
