package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks the validation lifecycle of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentValidated PaymentStatus = "validated"
	PaymentRefused   PaymentStatus = "refused"
)

// Payment records money received against a lease for a given month.
type Payment struct {
	ID        uuid.UUID     `json:"id"`
	Number    string        `json:"number"` // allocator-issued, PAY-YYYYMM-NNNN
	LeaseID   uuid.UUID     `json:"lease_id"`
	Amount    float64       `json:"amount"`
	PaidOn    time.Time     `json:"paid_on"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`

	Versioned
}

func (p *Payment) GetID() string { return p.ID.String() }
