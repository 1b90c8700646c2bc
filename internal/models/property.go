package models

import (
	"time"

	"github.com/google/uuid"
)

// ManagementMode says whether a property is let as a whole or split into
// rental units.
type ManagementMode string

const (
	ManagementWhole     ManagementMode = "whole"
	ManagementMultiUnit ManagementMode = "multi_unit"
)

// Property is the top-level leasable resource. Available is a derived
// projection of the lease table: it is recomputed by the availability
// engine and must never be written by any other code path (the generic
// repository update statement deliberately omits the column).
type Property struct {
	ID         uuid.UUID      `json:"id"`
	Number     string         `json:"number"` // allocator-issued, PRP-YYYY-NNNN
	LandlordID uuid.UUID      `json:"landlord_id"`
	Title      string         `json:"title"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	Mode       ManagementMode `json:"mode"`
	Available  bool           `json:"available"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  *time.Time     `json:"deleted_at,omitempty"`

	Versioned
}

func (p *Property) GetID() string { return p.ID.String() }

// IsMultiUnit reports whether the property is managed as independent units.
func (p *Property) IsMultiUnit() bool { return p.Mode == ManagementMultiUnit }
