package service_test

import (
	"context"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/repo"
)

// mockCustomerRepo is a hand-written test double for repo.CustomerRepo.
// Each method is a function field — set only the ones your test needs.
type mockCustomerRepo struct {
	create  func(ctx context.Context, c domain.Customer) (domain.Customer, error)
	getByID func(ctx context.Context, id int64) (domain.Customer, error)
	exists  func(ctx context.Context, id int64) (bool, error)
	list    func(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int64, error)
	update  func(ctx context.Context, id int64, patch domain.CustomerPatch) (domain.Customer, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockCustomerRepo) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	return m.create(ctx, c)
}
func (m *mockCustomerRepo) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	return m.getByID(ctx, id)
}
func (m *mockCustomerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists(ctx, id)
}
func (m *mockCustomerRepo) List(ctx context.Context, q domain.CustomerQuery) ([]domain.Customer, int64, error) {
	return m.list(ctx, q)
}
func (m *mockCustomerRepo) Update(ctx context.Context, id int64, patch domain.CustomerPatch) (domain.Customer, error) {
	return m.update(ctx, id, patch)
}
func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockCustomerRepo must satisfy repo.CustomerRepo.
var _ repo.CustomerRepo = (*mockCustomerRepo)(nil)

// mockDestinationRepo is a hand-written test double for repo.DestinationRepo.
type mockDestinationRepo struct {
	create           func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID          func(ctx context.Context, id int64) (domain.Destination, error)
	list             func(ctx context.Context, q domain.DestinationQuery) ([]domain.Destination, int64, error)
	listByCustomerID func(ctx context.Context, customerID int64) ([]domain.Destination, error)
	update           func(ctx context.Context, id int64, patch domain.DestinationPatch) (domain.Destination, error)
	delete           func(ctx context.Context, id int64) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id int64) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context, q domain.DestinationQuery) ([]domain.Destination, int64, error) {
	return m.list(ctx, q)
}
func (m *mockDestinationRepo) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Destination, error) {
	return m.listByCustomerID(ctx, customerID)
}
func (m *mockDestinationRepo) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (domain.Destination, error) {
	return m.update(ctx, id, patch)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

// mockStaffRepo is a hand-written test double for repo.StaffRepo.
type mockStaffRepo struct {
	create        func(ctx context.Context, s domain.Staff) (domain.Staff, error)
	getByUsername func(ctx context.Context, username string) (domain.Staff, error)
}

func (m *mockStaffRepo) Create(ctx context.Context, s domain.Staff) (domain.Staff, error) {
	return m.create(ctx, s)
}
func (m *mockStaffRepo) GetByUsername(ctx context.Context, username string) (domain.Staff, error) {
	return m.getByUsername(ctx, username)
}

var _ repo.StaffRepo = (*mockStaffRepo)(nil)
