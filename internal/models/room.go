package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is the finest-grained leasable space of a property. A room may
// belong to a unit, in which case it is let with the unit, or stand on
// its own and be leased individually (its ID then appears in the
// room-set of a lease).
type Room struct {
	ID          uuid.UUID      `json:"id"`
	PropertyID  uuid.UUID      `json:"property_id"`
	UnitID      *uuid.UUID     `json:"unit_id,omitempty"`
	Name        string         `json:"name"`
	RoomNumber  string         `json:"room_number"`
	SurfaceSqm  float64        `json:"surface_sqm"`
	MonthlyRent float64        `json:"monthly_rent"`
	Status      ResourceStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`

	Versioned
}

func (r *Room) GetID() string { return r.ID.String() }

// IndividuallyLeasable reports whether the room can appear in a lease's
// room-set on its own: it must not be bound to a unit.
func (r *Room) IndividuallyLeasable() bool { return r.UnitID == nil }
