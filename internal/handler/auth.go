package handler

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/metrics"
	"github.com/pkordes/travel-crm/backend/internal/service"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// registerRequest uses the same password minimum as loginRequest so every
// accepted registration can log in.
type registerRequest struct {
	Name     string              `json:"name" validate:"required,notblank"`
	Username string              `json:"username" validate:"required,notblank"`
	Email    openapi_types.Email `json:"email" validate:"required,email"`
	Password string              `json:"password" validate:"required,min=8"`
	Role     *string             `json:"role" validate:"omitempty,oneof=ADMIN STAFF"`
}

// registerResponse never carries the password or its hash.
type registerResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Login handles POST /auth/login.
// An unknown username is a 404 "User not found"; a wrong password is a
// 400 "Invalid password".
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	session, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.metrics.IncrementLogins(loginOutcome(err))
		s.writeServiceError(w, r, err, "User not found")
		return
	}
	s.metrics.IncrementLogins(metrics.LoginSuccess)
	s.ok(w, r, http.StatusOK, "User logged in successfully.", loginResponse{
		ID:       session.ID,
		Username: session.Username,
		Email:    session.Email,
		Role:     string(session.Role),
		Token:    session.Token,
	})
}

// Register handles POST /auth/register.
// A taken username or email is a 409.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	staff, err := s.auth.Register(r.Context(), service.Registration{
		Name:     req.Name,
		Username: req.Username,
		Email:    string(req.Email),
		Password: req.Password,
		Role:     domain.Role(deref(req.Role)),
	})
	if err != nil {
		s.writeServiceError(w, r, err, "Not found")
		return
	}
	s.ok(w, r, http.StatusOK, "User registered successfully.", registerResponse{
		Username: staff.Username,
		Name:     staff.Name,
		Email:    staff.Email,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return metrics.LoginUnknownUser
	case errors.Is(err, service.ErrInvalidPassword):
		return metrics.LoginInvalidPassword
	default:
		return metrics.LoginError
	}
}
