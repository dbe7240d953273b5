package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
)

// SessionService handles journal-session business logic operations.
// It coordinates the session and trade leg repositories so a session and its
// legs are always created and read together.
type SessionService struct {
	sessionRepo  *repository.SessionRepository
	tradeLegRepo *repository.TradeLegRepository
}

// NewSessionService creates a new SessionService with the provided repositories.
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	tradeLegRepo *repository.TradeLegRepository,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		tradeLegRepo: tradeLegRepo,
	}
}

// SessionWithLegs pairs a session with its trade legs for detail responses.
type SessionWithLegs struct {
	Session model.Session    `json:"session"`
	Legs    []model.TradeLeg `json:"legs"`
}

// GetSessions retrieves all sessions for the account within the date range,
// sorted by date ascending. A zero startDate means "from the beginning".
func (s *SessionService) GetSessions(accountID string, startDate, endDate time.Time) ([]model.Session, error) {
	return s.sessionRepo.GetSessions(accountID, startDate, endDate)
}

// GetSessionWithLegs retrieves a single session and its trade legs.
func (s *SessionService) GetSessionWithLegs(sessionID string) (SessionWithLegs, error) {
	session, err := s.sessionRepo.GetSessionOnID(sessionID)
	if err != nil {
		return SessionWithLegs{}, err
	}

	legsBySession, err := s.tradeLegRepo.GetLegsBySessionIDs([]string{session.ID})
	if err != nil {
		return SessionWithLegs{}, err
	}

	legs := legsBySession[session.ID]
	if legs == nil {
		legs = []model.TradeLeg{}
	}

	return SessionWithLegs{Session: session, Legs: legs}, nil
}

// CreateSession creates a session and its trade legs with generated IDs.
// Sessions are unique per account and date; a second session on the same
// date is rejected with apperrors.ErrDuplicateSession.
func (s *SessionService) CreateSession(session model.Session, legs []model.TradeLeg) (SessionWithLegs, error) {
	existing, err := s.sessionRepo.GetSessions(session.AccountID, session.Date, session.Date)
	if err != nil {
		return SessionWithLegs{}, err
	}
	if len(existing) > 0 {
		return SessionWithLegs{}, apperrors.ErrDuplicateSession
	}

	session.ID = uuid.New().String()
	session.CreatedAt = time.Now().UTC()

	if err := s.sessionRepo.CreateSession(session); err != nil {
		return SessionWithLegs{}, err
	}

	created := make([]model.TradeLeg, 0, len(legs))
	for _, leg := range legs {
		leg.ID = uuid.New().String()
		leg.SessionID = session.ID

		if err := s.tradeLegRepo.CreateTradeLeg(leg); err != nil {
			return SessionWithLegs{}, err
		}
		created = append(created, leg)
	}

	return SessionWithLegs{Session: session, Legs: created}, nil
}

// DeleteSession removes a session and, via cascade, its trade legs.
func (s *SessionService) DeleteSession(sessionID string) error {
	return s.sessionRepo.DeleteSession(sessionID)
}
