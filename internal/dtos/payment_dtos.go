package dtos

import (
	"time"

	"github.com/google/uuid"
)

type RecordPaymentRequest struct {
	LeaseID uuid.UUID `json:"lease_id" validate:"required"`
	Amount  float64   `json:"amount" validate:"required,gt=0"`
	PaidOn  time.Time `json:"paid_on" validate:"required"`
	Method  string    `json:"method" validate:"required,oneof=cash transfer check card"`
}
