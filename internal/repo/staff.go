package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// StaffRepo defines the persistence operations for staff principals.
type StaffRepo interface {
	// Create inserts a staff member. A duplicate username or email yields
	// domain.ErrConflict.
	Create(ctx context.Context, s domain.Staff) (domain.Staff, error)

	// GetByUsername returns the staff member with that username, including
	// the password hash. Returns domain.ErrNotFound if none exists.
	GetByUsername(ctx context.Context, username string) (domain.Staff, error)
}

// pgStaffRepo is the Postgres implementation of StaffRepo.
type pgStaffRepo struct {
	db db
}

// NewStaffRepo constructs a StaffRepo backed by the provided db connection.
func NewStaffRepo(db db) StaffRepo {
	return &pgStaffRepo{db: db}
}

const staffColumns = `id, username, name, email, password, role::text, created_at`

// Create inserts a staff row. Role defaults to STAFF when empty.
func (r *pgStaffRepo) Create(ctx context.Context, s domain.Staff) (domain.Staff, error) {
	const q = `
		INSERT INTO staff (username, name, email, password, role)
		VALUES (@username, @name, @email, @password, @role::staff_role)
		RETURNING ` + staffColumns

	role := s.Role
	if role == "" {
		role = domain.RoleStaff
	}
	args := pgx.NamedArgs{
		"username": s.Username,
		"name":     s.Name,
		"email":    s.Email,
		"password": s.PasswordHash,
		"role":     string(role),
	}
	result, err := scanStaff(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Staff{}, fmt.Errorf("repo.StaffRepo.Create: %w", translate(err))
	}
	return result, nil
}

// GetByUsername looks a staff member up by unique username.
func (r *pgStaffRepo) GetByUsername(ctx context.Context, username string) (domain.Staff, error) {
	const q = `SELECT ` + staffColumns + ` FROM staff WHERE username = @username`

	result, err := scanStaff(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.Staff{}, fmt.Errorf("repo.StaffRepo.GetByUsername: %w", translate(err))
	}
	return result, nil
}

func scanStaff(s scanner) (domain.Staff, error) {
	var (
		st   domain.Staff
		role string
	)
	if err := s.Scan(&st.ID, &st.Username, &st.Name, &st.Email, &st.PasswordHash, &role, &st.CreatedAt); err != nil {
		return domain.Staff{}, err
	}
	st.Role = domain.Role(role)
	return st, nil
}
