package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/repo"
)

// day returns midnight UTC of the given June 2025 day.
func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

// destinationFixture returns a valid destination without a customer.
func destinationFixture(label string, startDay int) domain.Destination {
	return domain.Destination{
		Destination: label,
		StartDate:   day(startDay),
		EndDate:     day(startDay + 2),
		Status:      domain.StatusPlanned,
	}
}

// customerFixture returns a customer with one destination per label.
// Emails are unique per call so fixtures can be created repeatedly.
var fixtureSeq int

func customerFixture(name string, labels ...string) domain.Customer {
	fixtureSeq++
	c := domain.Customer{
		Name:  name,
		Email: fmt.Sprintf("%s.%d@example.com", name, fixtureSeq),
	}
	for i, l := range labels {
		c.Destinations = append(c.Destinations, destinationFixture(l, i+1))
	}
	return c
}

// mustCreateCustomer persists a customer aggregate or fails the test.
func mustCreateCustomer(t *testing.T, r repo.CustomerRepo, c domain.Customer) domain.Customer {
	t.Helper()
	created, err := r.Create(context.Background(), c)
	require.NoError(t, err)
	return created
}
