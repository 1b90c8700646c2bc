package controllers

import (
	"net/http"

	"github.com/gestimmob/rental-service/internal/dtos"
	"github.com/gestimmob/rental-service/internal/services"
	"github.com/gestimmob/rental-service/internal/utils"
)

type PaymentController struct {
	paymentService *services.PaymentService
}

func NewPaymentController(ps *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: ps}
}

// ----------------------------------------------------------------
// POST /api/v1/payments
// ----------------------------------------------------------------
func (c *PaymentController) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RecordPaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}
	payment, err := c.paymentService.Record(r.Context(), req.LeaseID, req.Amount, req.PaidOn, req.Method)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// ----------------------------------------------------------------
// POST /api/v1/payments/{id}/validate
// ----------------------------------------------------------------
func (c *PaymentController) ValidatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid payment id", nil)
		return
	}
	receipt, err := c.paymentService.Validate(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, receipt)
}

// ----------------------------------------------------------------
// POST /api/v1/payments/{id}/refuse
// ----------------------------------------------------------------
func (c *PaymentController) RefusePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid payment id", nil)
		return
	}
	if err := c.paymentService.Refuse(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// GET /api/v1/leases/{id}/payments
// ----------------------------------------------------------------
func (c *PaymentController) ListLeasePaymentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid lease id", nil)
		return
	}
	payments, err := c.paymentService.ListByLease(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}
