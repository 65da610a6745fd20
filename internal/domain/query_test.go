package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

func TestNewSort_DefaultsToIDAscending(t *testing.T) {
	s, err := domain.NewSort("", "", domain.DestinationSortKeys)

	require.NoError(t, err)
	assert.Equal(t, domain.Sort{By: "id", Order: domain.SortAsc}, s)
}

func TestNewSort_AcceptsAllowedKey(t *testing.T) {
	s, err := domain.NewSort("startDate", "desc", domain.DestinationSortKeys)

	require.NoError(t, err)
	assert.Equal(t, "startDate", s.By)
	assert.Equal(t, domain.SortDesc, s.Order)
}

func TestNewSort_RejectsUnknownKey(t *testing.T) {
	_, err := domain.NewSort("password", "asc", domain.CustomerSortKeys)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewSort_RejectsKeyFromOtherEntity(t *testing.T) {
	// "destination" is sortable for destinations but not for customers.
	_, err := domain.NewSort("destination", "", domain.CustomerSortKeys)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewSort_RejectsUnknownOrder(t *testing.T) {
	_, err := domain.NewSort("id", "sideways", domain.CustomerSortKeys)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, domain.StatusOngoing.Valid())
	assert.False(t, domain.Status("LOST").Valid())
}

func TestDestinationPatch_Apply(t *testing.T) {
	label := "Aceh"
	status := domain.StatusCompleted
	d := domain.Destination{ID: 1, Destination: "Bali", Status: domain.StatusPlanned}

	got := domain.DestinationPatch{Destination: &label, Status: &status}.Apply(d)

	assert.Equal(t, "Aceh", got.Destination)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Bali", d.Destination, "original must not be mutated")
}
