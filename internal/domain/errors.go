package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when a credential is missing, malformed,
// expired, or signed with the wrong key. Callers never learn which.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a write collides with a uniqueness constraint
// (duplicate username, duplicate customer email).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrLastDestination is returned when deleting a destination would leave its
// customer with none. It wraps ErrValidation so handlers treat it as a 400.
var ErrLastDestination = fmt.Errorf("%w: customer must keep at least one destination", ErrValidation)
