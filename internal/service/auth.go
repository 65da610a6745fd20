package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/repo"
)

// Client-facing login failures. The two cases are distinguishable on purpose:
// an unknown username is a 404, a wrong password a 400.
var (
	ErrUserNotFound    = fmt.Errorf("%w: User not found", domain.ErrNotFound)
	ErrInvalidPassword = fmt.Errorf("%w: Invalid password", domain.ErrValidation)
)

// PasswordHasher hashes and verifies staff passwords.
// Defined here so tests can substitute a fast fake for bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// TokenIssuer mints bearer tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(p domain.Principal) (string, error)
}

// Registration is the input of AuthService.Register.
type Registration struct {
	Name     string
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService implements login and staff registration.
type AuthService struct {
	staff  repo.StaffRepo
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(staff repo.StaffRepo, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{staff: staff, hasher: hasher, tokens: tokens}
}

// Login verifies credentials and issues a token.
// Returns ErrUserNotFound for an unknown username and ErrInvalidPassword on mismatch.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	staff, err := s.staff.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, ErrUserNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	ok, err := s.hasher.Compare(staff.PasswordHash, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if !ok {
		return domain.Session{}, ErrInvalidPassword
	}

	p := staff.Principal()
	token, err := s.tokens.Issue(p)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return domain.Session{Principal: p, Token: token}, nil
}

// Register hashes the password and stores a new staff member. The returned
// record carries no password hash.
// Returns domain.ErrConflict if the username or email is taken.
func (s *AuthService) Register(ctx context.Context, r Registration) (domain.Staff, error) {
	if strings.TrimSpace(r.Username) == "" {
		return domain.Staff{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Name) == "" {
		return domain.Staff{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if r.Role != "" && r.Role != domain.RoleAdmin && r.Role != domain.RoleStaff {
		return domain.Staff{}, fmt.Errorf("%w: role %q is not valid", domain.ErrValidation, r.Role)
	}

	hash, err := s.hasher.Hash(r.Password)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	created, err := s.staff.Create(ctx, domain.Staff{
		Username:     r.Username,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: hash,
		Role:         r.Role,
	})
	if err != nil {
		return domain.Staff{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	created.PasswordHash = ""
	return created, nil
}
