package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/request"
	"github.com/tradescope/Trading-Journal-Backend/internal/api/response"
	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

// AnalyticsHandler handles HTTP requests for analytics endpoints.
// Every endpoint recomputes from the account's current data; the equity
// endpoint alone is backed by materialized snapshots with an on-demand
// fallback, because it is the one queried on every dashboard load.
type AnalyticsHandler struct {
	analyticsService    *service.AnalyticsService
	materializedService *service.MaterializedService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependencies.
func NewAnalyticsHandler(
	analyticsService *service.AnalyticsService,
	materializedService *service.MaterializedService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService:    analyticsService,
		materializedService: materializedService,
	}
}

// Summary handles GET requests for the full analytics payload: matched
// trades, equity curve, aggregate statistics, period comparisons, and KPIs.
//
// Endpoint: GET /api/account/{uuid}/analytics/summary
// Response: 200 OK with AnalyticsSummary
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the computation fails
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	summary, err := h.analyticsService.ComputeSummary(accountID)
	if err != nil {
		h.respondAnalyticsError(w, err, apperrors.ErrFailedToComputeStats)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Equity handles GET requests for the account's equity curve.
// Supports optional start_date and end_date query parameters (YYYY-MM-DD);
// without them the full curve is returned.
//
// Endpoint: GET /api/account/{uuid}/analytics/equity
// Response: 200 OK with array of EquityPoint
// Error: 400 Bad Request if the date range is invalid
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the computation fails
func (h *AnalyticsHandler) Equity(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	startDate, endDate, err := request.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return
	}

	equity, err := h.materializedService.GetEquityHistoryWithFallback(accountID, startDate, endDate)
	if err != nil {
		h.respondAnalyticsError(w, err, apperrors.ErrFailedToBuildEquityCurve)
		return
	}

	respondJSON(w, http.StatusOK, equity)
}

// Trades handles GET requests for the matched round-trip trades.
//
// Endpoint: GET /api/account/{uuid}/analytics/trades
// Response: 200 OK with MatchResult
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the computation fails
func (h *AnalyticsHandler) Trades(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	trades, err := h.analyticsService.GetMatchedTrades(accountID)
	if err != nil {
		h.respondAnalyticsError(w, err, apperrors.ErrFailedToMatchTrades)
		return
	}

	respondJSON(w, http.StatusOK, trades)
}

// Stats handles GET requests for the aggregate performance statistics block.
//
// Endpoint: GET /api/account/{uuid}/analytics/stats
// Response: 200 OK with PerformanceStats
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the computation fails
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	stats, err := h.analyticsService.GetPerformanceStats(accountID)
	if err != nil {
		h.respondAnalyticsError(w, err, apperrors.ErrFailedToComputeStats)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Comparisons handles GET requests for the rolling and month-to-date period
// comparisons.
//
// Endpoint: GET /api/account/{uuid}/analytics/comparisons
// Response: 200 OK with array of PeriodComparison
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the computation fails
func (h *AnalyticsHandler) Comparisons(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	comparisons, err := h.analyticsService.GetPeriodComparisons(accountID)
	if err != nil {
		h.respondAnalyticsError(w, err, apperrors.ErrFailedToComputeComparisons)
		return
	}

	respondJSON(w, http.StatusOK, comparisons)
}

// KPIs handles GET requests for the full KPI catalog.
//
// Endpoint: GET /api/account/{uuid}/analytics/kpis
// Response: 200 OK with array of KPIResult
// Error: 404 Not Found if the account does not exist
// Error: 500 Internal Server Error if the computation fails
func (h *AnalyticsHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	kpis, err := h.analyticsService.GetKPIs(accountID)
	if err != nil {
		h.respondAnalyticsError(w, err, apperrors.ErrFailedToComputeKPIs)
		return
	}

	respondJSON(w, http.StatusOK, kpis)
}

// RebuildSnapshots handles POST requests to rebuild the materialized equity
// snapshots of every active account. The route sits behind the internal API
// key; it exists for operational recovery, the nightly scheduler runs the
// same rebuild on its own.
//
// Endpoint: POST /api/internal/snapshots/rebuild
// Response: 204 No Content
// Error: 500 Internal Server Error if any account's rebuild fails
func (h *AnalyticsHandler) RebuildSnapshots(w http.ResponseWriter, _ *http.Request) {
	if err := h.materializedService.RebuildAll(); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRebuildEquityCache.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// respondAnalyticsError maps a pipeline error to the right HTTP status:
// a missing account is the caller's mistake, everything else is a 500 with
// the operation-specific message.
func (h *AnalyticsHandler) respondAnalyticsError(w http.ResponseWriter, err error, operationErr error) {
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		return
	}
	response.RespondError(w, http.StatusInternalServerError, operationErr.Error(), err.Error())
}
