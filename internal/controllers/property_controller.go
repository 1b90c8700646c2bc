package controllers

import (
	"net/http"

	"github.com/gestimmob/rental-service/internal/dtos"
	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/services"
	"github.com/gestimmob/rental-service/internal/utils"
)

type PropertyController struct {
	propertyService *services.PropertyService
	leaseService    *services.LeaseService
}

func NewPropertyController(ps *services.PropertyService, ls *services.LeaseService) *PropertyController {
	return &PropertyController{propertyService: ps, leaseService: ls}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	draft := &models.Property{
		LandlordID: req.LandlordID,
		Title:      req.Title,
		Address:    req.Address,
		City:       req.City,
		Mode:       models.ManagementMode(req.Mode),
	}
	prop, err := c.propertyService.Create(r.Context(), draft)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid property id", nil)
		return
	}
	prop, err := c.propertyService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{id}        (?hard=true for a hard delete)
// ----------------------------------------------------------------
func (c *PropertyController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid property id", nil)
		return
	}
	if r.URL.Query().Get("hard") == "true" {
		err = c.propertyService.Delete(r.Context(), id)
	} else {
		err = c.propertyService.SoftDelete(r.Context(), id)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/properties/{id}/units
// ----------------------------------------------------------------
func (c *PropertyController) AddUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid property id", nil)
		return
	}
	var req dtos.CreateUnitRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	unit := &models.Unit{
		Name:        req.Name,
		UnitNumber:  req.UnitNumber,
		MonthlyRent: req.MonthlyRent,
	}
	created, err := c.propertyService.AddUnit(r.Context(), id, unit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// ----------------------------------------------------------------
// POST /api/v1/properties/{id}/rooms
// ----------------------------------------------------------------
func (c *PropertyController) AddRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid property id", nil)
		return
	}
	var req dtos.CreateRoomRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	room := &models.Room{
		UnitID:      req.UnitID,
		Name:        req.Name,
		RoomNumber:  req.RoomNumber,
		SurfaceSqm:  req.SurfaceSqm,
		MonthlyRent: req.MonthlyRent,
	}
	created, err := c.propertyService.AddRoom(r.Context(), id, room)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{id}/leases
// ----------------------------------------------------------------
func (c *PropertyController) ListPropertyLeasesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid property id", nil)
		return
	}
	leases, err := c.leaseService.ListByProperty(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// ----------------------------------------------------------------
// PUT /api/v1/units/{id}/status
// ----------------------------------------------------------------
func (c *PropertyController) SetUnitStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid unit id", nil)
		return
	}
	var req dtos.SetUnitStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	if err := c.propertyService.SetUnitStatus(r.Context(), id, models.ResourceStatus(req.Status)); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/units/{id}/status/clear
// ----------------------------------------------------------------
func (c *PropertyController) ClearUnitStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid unit id", nil)
		return
	}
	if err := c.propertyService.ClearUnitMaintenance(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
