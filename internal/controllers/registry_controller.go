package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gestimmob/rental-service/internal/dtos"
	"github.com/gestimmob/rental-service/internal/models"
	"github.com/gestimmob/rental-service/internal/services"
	"github.com/gestimmob/rental-service/internal/utils"
)

type RegistryController struct {
	registryService  *services.RegistryService
	statementService *services.StatementService
}

func NewRegistryController(rs *services.RegistryService, ss *services.StatementService) *RegistryController {
	return &RegistryController{registryService: rs, statementService: ss}
}

// ----------------------------------------------------------------
// POST /api/v1/landlords
// ----------------------------------------------------------------
func (c *RegistryController) CreateLandlordHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateLandlordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	landlord, err := c.registryService.CreateLandlord(r.Context(), &models.Landlord{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, landlord)
}

// ----------------------------------------------------------------
// POST /api/v1/tenants
// ----------------------------------------------------------------
func (c *RegistryController) CreateTenantHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTenantRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	tenant, err := c.registryService.CreateTenant(r.Context(), &models.Tenant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// ----------------------------------------------------------------
// GET /api/v1/landlords/{id}
// ----------------------------------------------------------------
func (c *RegistryController) GetLandlordHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid landlord id", nil)
		return
	}
	landlord, err := c.registryService.GetLandlord(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, landlord)
}

// ----------------------------------------------------------------
// GET /api/v1/tenants/{id}
// ----------------------------------------------------------------
func (c *RegistryController) GetTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid tenant id", nil)
		return
	}
	tenant, err := c.registryService.GetTenant(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// ----------------------------------------------------------------
// GET /api/v1/landlords/{id}/statement?year=2026&month=8
// ----------------------------------------------------------------
func (c *RegistryController) LandlordStatementHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid landlord id", nil)
		return
	}
	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid year", nil)
			return
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid month", nil)
			return
		}
	}

	statement, err := c.statementService.MonthlyStatement(r.Context(), id, year, time.Month(month))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, statement)
}
