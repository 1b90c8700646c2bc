package controllers

import (
	"net/http"

	"github.com/gestimmob/rental-service/internal/services"
	"github.com/gestimmob/rental-service/internal/utils"
)

type AdminController struct {
	availabilityService *services.AvailabilityService
}

func NewAdminController(as *services.AvailabilityService) *AdminController {
	return &AdminController{availabilityService: as}
}

// POST /api/v1/admin/reconcile
//
// Runs the full availability reconciliation pass and returns its
// report. The same pass runs nightly on the scheduler.
func (c *AdminController) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	report, err := c.availabilityService.ReconcileAllProperties(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}
