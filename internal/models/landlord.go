package models

import (
	"time"

	"github.com/google/uuid"
)

// Landlord owns one or more properties and receives the monthly payout
// statement computed from their occupying leases.
type Landlord struct {
	ID        uuid.UUID  `json:"id"`
	Number    string     `json:"number"` // allocator-issued, BLR-YYYY-NNNN
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	Versioned
}

func (l *Landlord) GetID() string { return l.ID.String() }
