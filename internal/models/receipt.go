package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is the acknowledgement issued for a validated payment.
// Rendering it to a document is out of scope here; the record only
// carries the persisted identifier contract.
type Receipt struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"` // allocator-issued, REC-YYYYMMDD-NNNN
	PaymentID uuid.UUID `json:"payment_id"`
	IssuedOn  time.Time `json:"issued_on"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Receipt) GetID() string { return r.ID.String() }
