// Package domain contains the core data types for the travel CRM application.
// This package has no database or transport dependencies and is imported by
// every other internal package (repo, service, handler).
package domain

import "time"

// Customer is the top-level aggregate; destinations belong to a customer.
// UpdatedAt is nil until the first update.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Destinations []Destination
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// CustomerPatch carries a partial update. Nil fields are left unchanged.
type CustomerPatch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch changes no field.
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}
