package domain

import "time"

// Role is the authorization role of a staff member.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// Staff is an authenticated principal of the API.
// PasswordHash is never serialized or returned to clients.
type Staff struct {
	ID           int64
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the identity carried inside a verified bearer token.
type Principal struct {
	ID       int64
	Username string
	Email    string
	Role     Role
}

// Principal returns the token identity for s.
func (s Staff) Principal() Principal {
	return Principal{ID: s.ID, Username: s.Username, Email: s.Email, Role: s.Role}
}

// Session is the result of a successful login.
type Session struct {
	Principal
	Token string
}
