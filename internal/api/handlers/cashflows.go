package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/request"
	"github.com/tradescope/Trading-Journal-Backend/internal/api/response"
	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
	"github.com/tradescope/Trading-Journal-Backend/internal/validation"
)

// CashflowHandler handles HTTP requests for deposit and withdrawal endpoints.
type CashflowHandler struct {
	cashflowService     *service.CashflowService
	materializedService *service.MaterializedService
}

// NewCashflowHandler creates a new CashflowHandler with the provided service dependencies.
func NewCashflowHandler(
	cashflowService *service.CashflowService,
	materializedService *service.MaterializedService,
) *CashflowHandler {
	return &CashflowHandler{
		cashflowService:     cashflowService,
		materializedService: materializedService,
	}
}

// CashflowsPerAccount handles GET requests to retrieve cashflows for an account.
// Supports optional start_date and end_date query parameters (YYYY-MM-DD).
//
// Endpoint: GET /api/account/{uuid}/cashflow
// Response: 200 OK with array of Cashflow
// Error: 400 Bad Request if the account ID or date range is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *CashflowHandler) CashflowsPerAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	startDate, endDate, err := request.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return
	}

	cashflows, err := h.cashflowService.GetCashflows(accountID, startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCashflows.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cashflows)
}

// CreateCashflow handles POST requests to record a deposit or withdrawal.
// A successful write triggers an equity snapshot rebuild for the account.
//
// Endpoint: POST /api/account/{uuid}/cashflow
// Request Body: CreateCashflowRequest (date, amount, note)
// Response: 201 Created with Cashflow
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *CashflowHandler) CreateCashflow(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateCashflowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCashflow(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	cashflow, err := h.cashflowService.CreateCashflow(model.Cashflow{
		AccountID: accountID,
		Date:      date,
		Amount:    req.Amount,
		Note:      req.Note,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrZeroAmount) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrZeroAmount.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create cashflow", err.Error())
		return
	}

	if err := h.materializedService.RebuildEquityMaterialized(accountID); err != nil {
		log.Printf("equity snapshot rebuild failed for account %s: %v", accountID, err)
	}

	respondJSON(w, http.StatusCreated, cashflow)
}

// DeleteCashflow handles DELETE requests to remove a cashflow record.
// A successful delete triggers an equity snapshot rebuild for the account.
//
// Endpoint: DELETE /api/account/{uuid}/cashflow/{cashflowId}
// Response: 204 No Content
// Error: 404 Not Found if cashflow not found
// Error: 500 Internal Server Error if deletion fails
func (h *CashflowHandler) DeleteCashflow(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")
	cashflowID := chi.URLParam(r, "cashflowId")

	if err := validation.ValidateUUID(cashflowID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	if err := h.cashflowService.DeleteCashflow(cashflowID); err != nil {
		if errors.Is(err, apperrors.ErrCashflowNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCashflowNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete cashflow", err.Error())
		return
	}

	if err := h.materializedService.RebuildEquityMaterialized(accountID); err != nil {
		log.Printf("equity snapshot rebuild failed for account %s: %v", accountID, err)
	}

	respondJSON(w, http.StatusNoContent, nil)
}
