package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gestimmob/rental-service/internal/idgen"
	"github.com/gestimmob/rental-service/internal/utils"
)

var validate = validator.New()

// decodeAndValidate unmarshals the request body into dst and runs the
// struct validation tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// respondServiceError maps service-layer failures onto the HTTP error
// contract. AppErrors carry their own status; sentinels map here.
func respondServiceError(w http.ResponseWriter, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		utils.HandleAppError(w, err)
		return
	}

	var exhausted *idgen.ExhaustedError
	if errors.As(err, &exhausted) {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError,
			utils.ErrCodeAllocationFailed, "Could not allocate a unique identifier", nil, err)
		return
	}

	switch {
	case errors.Is(err, utils.ErrLeaseNotFound),
		errors.Is(err, utils.ErrPropertyNotFound),
		errors.Is(err, utils.ErrUnitNotFound),
		errors.Is(err, utils.ErrLandlordNotFound),
		errors.Is(err, utils.ErrTenantNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil)
	case errors.Is(err, utils.ErrPropertyUnavailable),
		errors.Is(err, utils.ErrPropertyHasLeases),
		errors.Is(err, utils.ErrLeaseAlreadyTerminated):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict,
			"The record was modified concurrently, please retry", nil, err)
	case errors.Is(err, utils.ErrInvalidDateRange):
		utils.RespondErrorWithCode(w, http.StatusUnprocessableEntity, utils.ErrCodeValidation, err.Error(), nil)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal,
			"An unexpected error occurred", nil, err)
	}
}
