package domain

import "time"

// Status is the lifecycle state of a Destination.
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every valid Status in declaration order.
var Statuses = []Status{StatusPlanned, StatusOngoing, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Destination is a single travel record owned by a customer.
// CustomerID is fixed at creation and never changes.
type Destination struct {
	ID          int64
	CustomerID  int64
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// DestinationPatch carries a partial update. Nil fields are left unchanged.
type DestinationPatch struct {
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *Status
}

// IsEmpty reports whether the patch changes no field.
func (p DestinationPatch) IsEmpty() bool {
	return p.Destination == nil && p.StartDate == nil && p.EndDate == nil && p.Status == nil
}

// Apply returns a copy of d with the patch fields overlaid.
func (p DestinationPatch) Apply(d Destination) Destination {
	if p.Destination != nil {
		d.Destination = *p.Destination
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = *p.EndDate
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	return d
}
