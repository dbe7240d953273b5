package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/request"
	"github.com/tradescope/Trading-Journal-Backend/internal/api/response"
	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
	"github.com/tradescope/Trading-Journal-Backend/internal/validation"
)

// PlanHandler handles HTTP requests for growth plan endpoints.
type PlanHandler struct {
	planService         *service.PlanService
	materializedService *service.MaterializedService
}

// NewPlanHandler creates a new PlanHandler with the provided service dependencies.
func NewPlanHandler(
	planService *service.PlanService,
	materializedService *service.MaterializedService,
) *PlanHandler {
	return &PlanHandler{
		planService:         planService,
		materializedService: materializedService,
	}
}

// GetPlan handles GET requests to retrieve an account's growth plan.
//
// Endpoint: GET /api/account/{uuid}/plan
// Response: 200 OK with GrowthPlan
// Error: 404 Not Found if the account has no plan
// Error: 500 Internal Server Error if retrieval fails
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	plan, err := h.planService.GetPlan(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrGrowthPlanNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrGrowthPlanNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePlan.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// SavePlan handles PUT requests to create or replace an account's growth plan.
// Replacing the plan moves the projected series' start date to the update
// time, so a rebuild of the equity snapshots always follows a successful save.
//
// Endpoint: PUT /api/account/{uuid}/plan
// Request Body: SavePlanRequest
// Response: 200 OK with the stored GrowthPlan
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the save fails
func (h *PlanHandler) SavePlan(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SavePlanRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSavePlan(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	plan, err := h.planService.SavePlan(model.GrowthPlan{
		AccountID:       accountID,
		StartingBalance: req.StartingBalance,
		TargetBalance:   req.TargetBalance,
		DailyTargetPct:  req.DailyTargetPct,
		LossDaysPerWeek: req.LossDaysPerWeek,
		TradingDays:     req.TradingDays,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save growth plan", err.Error())
		return
	}

	if err := h.materializedService.RebuildEquityMaterialized(accountID); err != nil {
		log.Printf("equity snapshot rebuild failed for account %s: %v", accountID, err)
	}

	respondJSON(w, http.StatusOK, plan)
}
