package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gestimmob/rental-service/internal/dtos"
	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/services"
	"github.com/gestimmob/rental-service/internal/utils"
)

type LeaseController struct {
	leaseService        *services.LeaseService
	availabilityService *services.AvailabilityService
}

func NewLeaseController(ls *services.LeaseService, as *services.AvailabilityService) *LeaseController {
	return &LeaseController{leaseService: ls, availabilityService: as}
}

// ----------------------------------------------------------------
// POST /api/v1/leases
// ----------------------------------------------------------------
func (c *LeaseController) CreateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateLeaseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	if req.UnitID != nil && len(req.RoomIDs) > 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"a lease targets either a unit or a room set, not both", nil)
		return
	}

	draft := &models.Lease{
		PropertyID:        req.PropertyID,
		UnitID:            req.UnitID,
		RoomIDs:           req.RoomIDs,
		TenantID:          req.TenantID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		MonthlyRent:       req.MonthlyRent,
		DeductibleCharges: req.DeductibleCharges,
	}
	lease, err := c.leaseService.Create(r.Context(), draft)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// ----------------------------------------------------------------
// GET /api/v1/leases/{id}
// ----------------------------------------------------------------
func (c *LeaseController) GetLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid lease id", nil)
		return
	}
	lease, err := c.leaseService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// ----------------------------------------------------------------
// PUT /api/v1/leases/{id}
// ----------------------------------------------------------------
func (c *LeaseController) UpdateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid lease id", nil)
		return
	}
	var req dtos.UpdateLeaseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	lease, err := c.leaseService.Update(r.Context(), id, req.StartDate, req.EndDate, req.MonthlyRent, req.DeductibleCharges)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// ----------------------------------------------------------------
// POST /api/v1/leases/{id}/terminate
// ----------------------------------------------------------------
func (c *LeaseController) TerminateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid lease id", nil)
		return
	}
	var req dtos.TerminateLeaseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	lease, err := c.leaseService.Terminate(r.Context(), id, req.EndDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// ----------------------------------------------------------------
// DELETE /api/v1/leases/{id}            (?hard=true for a hard delete)
// ----------------------------------------------------------------
func (c *LeaseController) DeleteLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid lease id", nil)
		return
	}
	if r.URL.Query().Get("hard") == "true" {
		err = c.leaseService.Delete(r.Context(), id)
	} else {
		err = c.leaseService.SoftDelete(r.Context(), id)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/availability/check
// ----------------------------------------------------------------
func (c *LeaseController) CheckAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AvailabilityQuery
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	exclude := uuid.Nil
	if req.ExcludeLeaseID != nil {
		exclude = *req.ExcludeLeaseID
	}
	result, err := c.availabilityService.CheckAvailability(r.Context(), req.PropertyID, req.StartDate, req.EndDate, exclude)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}
