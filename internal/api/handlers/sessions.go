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

// SessionHandler handles HTTP requests for journal session endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the sessionService.
type SessionHandler struct {
	sessionService      *service.SessionService
	materializedService *service.MaterializedService
}

// NewSessionHandler creates a new SessionHandler with the provided service dependencies.
func NewSessionHandler(
	sessionService *service.SessionService,
	materializedService *service.MaterializedService,
) *SessionHandler {
	return &SessionHandler{
		sessionService:      sessionService,
		materializedService: materializedService,
	}
}

// SessionsPerAccount handles GET requests to retrieve sessions for an account.
// Supports optional start_date and end_date query parameters (YYYY-MM-DD).
//
// Endpoint: GET /api/account/{uuid}/session
// Response: 200 OK with array of Session
// Error: 400 Bad Request if the account ID or date range is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *SessionHandler) SessionsPerAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	startDate, endDate, err := request.ParseDateRange(
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		return
	}

	sessions, err := h.sessionService.GetSessions(accountID, startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSessions.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetSession handles GET requests to retrieve a single session with its trade legs.
//
// Endpoint: GET /api/session/{uuid}
// Response: 200 OK with SessionWithLegs
// Error: 400 Bad Request if session ID is invalid (validated by middleware)
// Error: 404 Not Found if session not found
// Error: 500 Internal Server Error if retrieval fails
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	detail, err := h.sessionService.GetSessionWithLegs(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSession.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// CreateSession handles POST requests to create a new session with its trade legs.
// A successful write triggers an equity snapshot rebuild for the account.
//
// Endpoint: POST /api/account/{uuid}/session
// Request Body: CreateSessionRequest (date, optional P&L fields, legs)
// Response: 201 Created with SessionWithLegs
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if a session already exists for the date
// Error: 500 Internal Server Error if creation fails
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateSessionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSession(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	session, legs, err := buildSession(accountID, req)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	detail, err := h.sessionService.CreateSession(session, legs)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSession) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateSession.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}

	h.rebuildSnapshots(accountID)

	respondJSON(w, http.StatusCreated, detail)
}

// DeleteSession handles DELETE requests to remove a session and its trade legs.
// A successful delete triggers an equity snapshot rebuild for the account.
//
// Endpoint: DELETE /api/session/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if session ID is invalid (validated by middleware)
// Error: 404 Not Found if session not found
// Error: 500 Internal Server Error if deletion fails
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "uuid")

	detail, err := h.sessionService.GetSessionWithLegs(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSession.Error(), err.Error())
		return
	}

	if err := h.sessionService.DeleteSession(sessionID); err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSessionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete session", err.Error())
		return
	}

	h.rebuildSnapshots(detail.Session.AccountID)

	respondJSON(w, http.StatusNoContent, nil)
}

// rebuildSnapshots refreshes the account's materialized equity after a write.
// A failed rebuild is logged but never fails the request: the fallback path
// keeps serving correct balances until the next rebuild succeeds.
func (h *SessionHandler) rebuildSnapshots(accountID string) {
	if err := h.materializedService.RebuildEquityMaterialized(accountID); err != nil {
		log.Printf("equity snapshot rebuild failed for account %s: %v", accountID, err)
	}
}

// buildSession converts a validated request into the session and leg models.
func buildSession(accountID string, req request.CreateSessionRequest) (model.Session, []model.TradeLeg, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Session{}, nil, err
	}

	session := model.Session{
		AccountID:     accountID,
		Date:          date,
		NetPnl:        req.NetPnl,
		GrossPnl:      req.GrossPnl,
		Fees:          req.Fees,
		Instrument:    req.Instrument,
		RespectedPlan: req.RespectedPlan,
		Notes:         req.Notes,
		Payload:       req.Payload,
	}

	legs := make([]model.TradeLeg, 0, len(req.Legs))
	for _, legReq := range req.Legs {
		leg := model.TradeLeg{
			Role:           legReq.Role,
			Symbol:         legReq.Symbol,
			InstrumentKind: legReq.InstrumentKind,
			Side:           legReq.Side,
			Price:          legReq.Price,
			Quantity:       legReq.Quantity,
			TimeOfDay:      legReq.TimeOfDay,
			DaysToExpiry:   legReq.DaysToExpiry,
		}

		if legReq.ExpiryDate != nil {
			expiry, err := time.Parse("2006-01-02", *legReq.ExpiryDate)
			if err != nil {
				return model.Session{}, nil, err
			}
			leg.ExpiryDate = &expiry
		}

		legs = append(legs, leg)
	}

	return session, legs, nil
}
