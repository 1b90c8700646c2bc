package models

import (
	"time"

	"github.com/google/uuid"
)

// ResourceStatus is the occupancy status of a unit or room. Available and
// occupied are derived by the availability engine; the two maintenance
// states are operator-owned and never touched by recomputation.
type ResourceStatus string

const (
	StatusAvailable    ResourceStatus = "available"
	StatusOccupied     ResourceStatus = "occupied"
	StatusRenovation   ResourceStatus = "in_renovation"
	StatusOutOfService ResourceStatus = "out_of_service"
)

// Derived reports whether the status is one the engine owns.
func (s ResourceStatus) Derived() bool {
	return s == StatusAvailable || s == StatusOccupied
}

// Unit is a tenant-addressable space inside a multi-unit property.
type Unit struct {
	ID          uuid.UUID      `json:"id"`
	PropertyID  uuid.UUID      `json:"property_id"`
	Name        string         `json:"name"`
	UnitNumber  string         `json:"unit_number"`
	MonthlyRent float64        `json:"monthly_rent"`
	Status      ResourceStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`

	Versioned
}

func (u *Unit) GetID() string { return u.ID.String() }
