package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the counterparty of a lease.
type Tenant struct {
	ID        uuid.UUID  `json:"id"`
	Number    string     `json:"number"` // allocator-issued, LOC-YYYY-NNNN
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

func (t *Tenant) GetID() string { return t.ID.String() }
