package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrLeaseNotFound          = errors.New("lease_not_found")
	ErrPropertyNotFound       = errors.New("property_not_found")
	ErrUnitNotFound           = errors.New("unit_not_found")
	ErrLandlordNotFound       = errors.New("landlord_not_found")
	ErrTenantNotFound         = errors.New("tenant_not_found")
	ErrPropertyUnavailable    = errors.New("property_unavailable")
	ErrPropertyHasLeases      = errors.New("property_has_active_leases")
	ErrInvalidDateRange       = errors.New("invalid_date_range")
	ErrLeaseAlreadyTerminated = errors.New("lease_already_terminated")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError carries a structured failure from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
