package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

func TestDestinationRepo_Create(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	customer := mustCreateCustomer(t, cr, customerFixture("hana", "Bali"))

	input := destinationFixture("Lombok", 10)
	input.CustomerID = customer.ID
	input.Status = ""

	got, err := dr.Create(context.Background(), input)

	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.Equal(t, "Lombok", got.Destination)
	assert.True(t, got.StartDate.Equal(input.StartDate))
	assert.Equal(t, domain.StatusPlanned, got.Status, "status defaults to PLANNED")
	assert.Nil(t, got.UpdatedAt)
}

func TestDestinationRepo_Create_UnknownCustomer(t *testing.T) {
	_, dr := newCustomerRepos(t)

	input := destinationFixture("Lombok", 10)
	input.CustomerID = 1 << 40

	_, err := dr.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationRepo_List_SortsByDestination(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	customer := mustCreateCustomer(t, cr, customerFixture("ivan", "Bali", "Aceh", "Jakarta"))

	items, total, err := dr.List(context.Background(), domain.DestinationQuery{
		Filter: domain.DestinationFilter{CustomerID: &customer.ID},
		Sort:   domain.Sort{By: "destination", Order: domain.SortAsc},
		Page:   domain.PaginationParams{Page: 1, Limit: 5},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	var labels []string
	for _, d := range items {
		labels = append(labels, d.Destination)
	}
	assert.Equal(t, []string{"Aceh", "Bali", "Jakarta"}, labels)
}

func TestDestinationRepo_List_Filters(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	ctx := context.Background()
	customer := mustCreateCustomer(t, cr, customerFixture("jade", "Bali", "Aceh", "Jakarta"))
	// Fixture dates: Bali 1→3, Aceh 2→4, Jakarta 3→5.

	completed := domain.StatusCompleted
	_, err := dr.Update(ctx, customer.Destinations[2].ID, domain.DestinationPatch{Status: &completed})
	require.NoError(t, err)

	base := domain.DestinationQuery{
		Sort: domain.Sort{By: "id", Order: domain.SortAsc},
		Page: domain.PaginationParams{Page: 1, Limit: 5},
	}

	t.Run("startDate lower bound", func(t *testing.T) {
		q := base
		from := day(2)
		q.Filter = domain.DestinationFilter{CustomerID: &customer.ID, StartFrom: &from}
		items, total, err := dr.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "Aceh", items[0].Destination)
	})

	t.Run("endDate upper bound", func(t *testing.T) {
		q := base
		until := day(4)
		q.Filter = domain.DestinationFilter{CustomerID: &customer.ID, EndUntil: &until}
		_, total, err := dr.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("status", func(t *testing.T) {
		q := base
		q.Filter = domain.DestinationFilter{CustomerID: &customer.ID, Status: &completed}
		items, total, err := dr.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Jakarta", items[0].Destination)
	})

	t.Run("name substring", func(t *testing.T) {
		q := base
		q.Filter = domain.DestinationFilter{CustomerID: &customer.ID, Name: "ak"}
		items, total, err := dr.List(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Jakarta", items[0].Destination)
	})

	t.Run("no match", func(t *testing.T) {
		q := base
		q.Filter = domain.DestinationFilter{CustomerID: &customer.ID, Name: "Tokyo"}
		items, total, err := dr.List(ctx, q)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestDestinationRepo_ListByCustomerID_OrderedByStart(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	ctx := context.Background()
	customer := mustCreateCustomer(t, cr, customerFixture("kim", "Bali", "Aceh"))

	early := destinationFixture("Medan", 1)
	early.StartDate = day(1).AddDate(0, -1, 0)
	early.CustomerID = customer.ID
	_, err := dr.Create(ctx, early)
	require.NoError(t, err)

	items, err := dr.ListByCustomerID(ctx, customer.ID)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Medan", items[0].Destination)
}

func TestDestinationRepo_Update_Partial(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	customer := mustCreateCustomer(t, cr, customerFixture("lena", "Bali"))
	original := customer.Destinations[0]

	label := "Bali Utara"
	got, err := dr.Update(context.Background(), original.ID, domain.DestinationPatch{Destination: &label})

	require.NoError(t, err)
	assert.Equal(t, label, got.Destination)
	assert.True(t, got.StartDate.Equal(original.StartDate), "startDate must be untouched")
	assert.Equal(t, original.Status, got.Status)
	assert.NotNil(t, got.UpdatedAt)
}

func TestDestinationRepo_Update_RestampsEachCall(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	ctx := context.Background()
	customer := mustCreateCustomer(t, cr, customerFixture("lars", "Bali"))
	id := customer.Destinations[0].ID

	label := "Ubud"
	first, err := dr.Update(ctx, id, domain.DestinationPatch{Destination: &label})
	require.NoError(t, err)
	status := domain.StatusOngoing
	second, err := dr.Update(ctx, id, domain.DestinationPatch{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, first.UpdatedAt)
	require.NotNil(t, second.UpdatedAt)
	assert.True(t, second.UpdatedAt.After(*first.UpdatedAt),
		"second update %v must be stamped after the first %v", *second.UpdatedAt, *first.UpdatedAt)
}

func TestDestinationRepo_Update_EndBeforeStart(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	customer := mustCreateCustomer(t, cr, customerFixture("mia", "Bali"))

	end := customer.Destinations[0].StartDate.AddDate(0, 0, -1)
	_, err := dr.Update(context.Background(), customer.Destinations[0].ID, domain.DestinationPatch{EndDate: &end})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationRepo_Update_NotFound(t *testing.T) {
	_, dr := newCustomerRepos(t)
	label := "nowhere"

	_, err := dr.Update(context.Background(), 1<<40, domain.DestinationPatch{Destination: &label})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationRepo_Delete(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	ctx := context.Background()
	customer := mustCreateCustomer(t, cr, customerFixture("nina", "Bali", "Aceh"))

	require.NoError(t, dr.Delete(ctx, customer.Destinations[0].ID))

	_, err := dr.GetByID(ctx, customer.Destinations[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationRepo_Delete_LastDestinationRejected(t *testing.T) {
	cr, dr := newCustomerRepos(t)
	ctx := context.Background()
	customer := mustCreateCustomer(t, cr, customerFixture("omar", "Bali"))

	err := dr.Delete(ctx, customer.Destinations[0].ID)

	assert.ErrorIs(t, err, domain.ErrLastDestination)
	assert.ErrorIs(t, err, domain.ErrValidation)
	remaining, err := dr.ListByCustomerID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "the row count must be unchanged")
}

func TestDestinationRepo_Delete_NotFound(t *testing.T) {
	_, dr := newCustomerRepos(t)

	err := dr.Delete(context.Background(), 1<<40)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
