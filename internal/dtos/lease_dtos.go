package dtos

import (
	"time"

	"github.com/google/uuid"
)

// CreateLeaseRequest is the lease write payload. Exactly one target
// shape: no unit and no rooms means the whole property.
type CreateLeaseRequest struct {
	PropertyID        uuid.UUID   `json:"property_id" validate:"required"`
	UnitID            *uuid.UUID  `json:"unit_id,omitempty"`
	RoomIDs           []uuid.UUID `json:"room_ids,omitempty" validate:"omitempty,min=1"`
	TenantID          uuid.UUID   `json:"tenant_id" validate:"required"`
	StartDate         time.Time   `json:"start_date" validate:"required"`
	EndDate           *time.Time  `json:"end_date,omitempty"`
	MonthlyRent       float64     `json:"monthly_rent" validate:"required,gt=0"`
	DeductibleCharges float64     `json:"deductible_charges" validate:"gte=0"`
}

type UpdateLeaseRequest struct {
	StartDate         time.Time  `json:"start_date" validate:"required"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	MonthlyRent       float64    `json:"monthly_rent" validate:"required,gt=0"`
	DeductibleCharges float64    `json:"deductible_charges" validate:"gte=0"`
}

type TerminateLeaseRequest struct {
	EndDate time.Time `json:"end_date" validate:"required"`
}

// AvailabilityQuery is the read-only pre-check input.
type AvailabilityQuery struct {
	PropertyID     uuid.UUID  `json:"property_id" validate:"required"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	ExcludeLeaseID *uuid.UUID `json:"exclude_lease_id,omitempty"`
}
