package models

import (
	"time"

	"github.com/google/uuid"
)

// LeaseTargetKind identifies which resource a lease occupies.
type LeaseTargetKind string

const (
	TargetWholeProperty LeaseTargetKind = "whole_property"
	TargetUnit          LeaseTargetKind = "unit"
	TargetRooms         LeaseTargetKind = "rooms"
	TargetNone          LeaseTargetKind = "none"
)

// farFuture is the sentinel an open-ended lease extends to for overlap
// comparisons.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Lease is a rental contract. Its target is exactly one of: the whole
// property, a single unit, or a set of individually leased rooms.
//
// DeletedAt is a logical deletion marker only: soft-deleted leases remain
// visible to availability recomputation so a stale "available" flag is
// never resurrected by an administrative delete.
type Lease struct {
	ID                uuid.UUID   `json:"id"`
	Number            string      `json:"number"` // allocator-issued, CTR-YYYY-NNNN
	PropertyID        uuid.UUID   `json:"property_id"`
	UnitID            *uuid.UUID  `json:"unit_id,omitempty"`
	RoomIDs           []uuid.UUID `json:"room_ids,omitempty"`
	TenantID          uuid.UUID   `json:"tenant_id"`
	StartDate         time.Time   `json:"start_date"`
	EndDate           *time.Time  `json:"end_date,omitempty"` // nil = open-ended
	MonthlyRent       float64     `json:"monthly_rent"`
	DeductibleCharges float64     `json:"deductible_charges"`
	Active            bool        `json:"active"`
	Terminated        bool        `json:"terminated"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	DeletedAt         *time.Time  `json:"deleted_at,omitempty"`

	Versioned
}

func (l *Lease) GetID() string { return l.ID.String() }

// TargetKind resolves which resource the lease occupies.
func (l *Lease) TargetKind() LeaseTargetKind {
	switch {
	case l.PropertyID == uuid.Nil:
		return TargetNone
	case l.UnitID != nil:
		return TargetUnit
	case len(l.RoomIDs) > 0:
		return TargetRooms
	default:
		return TargetWholeProperty
	}
}

// Occupies reports whether the lease counts against its target's
// availability. Soft deletion is deliberately ignored here: an active,
// non-terminated lease keeps its target occupied even after an
// administrative delete.
func (l *Lease) Occupies() bool {
	return l.Active && !l.Terminated
}

// CoversDate reports whether the lease's date range contains the given
// day. An open end extends to the far-future sentinel.
func (l *Lease) CoversDate(day time.Time) bool {
	if day.Before(l.StartDate) {
		return false
	}
	return l.EffectiveEnd().After(day) || sameDay(l.EffectiveEnd(), day)
}

// EffectiveEnd returns the end date, substituting the far-future
// sentinel for open-ended leases.
func (l *Lease) EffectiveEnd() time.Time {
	if l.EndDate == nil {
		return farFuture
	}
	return *l.EndDate
}

// Overlaps applies the half-open interval test against a proposed range:
// existing.start < new.end AND new.start < existing.end. A nil proposed
// end is treated as far-future, mirroring open-ended leases.
func (l *Lease) Overlaps(start time.Time, end *time.Time) bool {
	proposedEnd := farFuture
	if end != nil {
		proposedEnd = *end
	}
	return l.StartDate.Before(proposedEnd) && start.Before(l.EffectiveEnd())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
