package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// SessionRepository provides data access methods for the session table.
// It handles retrieving daily journal records within specified date ranges.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the provided database connection.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetSessions retrieves all sessions for the given account within the specified date range.
// Sessions are sorted by date in ascending order.
//
// The payload column stores the raw legacy record as JSON. A payload that
// fails to parse is left nil rather than failing the query; the session
// normalizer treats a nil payload as "no legacy fields available".
func (s *SessionRepository) GetSessions(accountID string, startDate, endDate time.Time) ([]model.Session, error) {
	query := `
		SELECT id, account_id, date, net_pnl, gross_pnl, fees,
		       instrument, respected_plan, notes, payload, created_at
		FROM session
		WHERE account_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := s.db.Query(query, accountID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query session table: %w", err)
	}
	defer rows.Close()

	sessions := []model.Session{}

	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session table: %w", err)
	}

	return sessions, nil
}

// GetSessionOnID retrieves a single session by its ID.
// Returns apperrors.ErrSessionNotFound when no row matches.
func (s *SessionRepository) GetSessionOnID(sessionID string) (model.Session, error) {
	query := `
		SELECT id, account_id, date, net_pnl, gross_pnl, fees,
		       instrument, respected_plan, notes, payload, created_at
		FROM session
		WHERE id = ?
	`

	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Session{}, fmt.Errorf("failed to query session: %w", err)
		}
		return model.Session{}, apperrors.ErrSessionNotFound
	}

	return scanSession(rows)
}

// GetOldestSessionDate finds the date of the earliest session for the account.
//
// Returns time.Time{} (zero value) if:
//   - no sessions are found
//   - database query fails
//   - date parsing fails
func (s *SessionRepository) GetOldestSessionDate(accountID string) time.Time {
	var oldestDateStr sql.NullString

	query := `
		SELECT MIN(date)
		FROM session
		WHERE account_id = ?
	`

	err := s.db.QueryRow(query, accountID).Scan(&oldestDateStr)
	if err != nil || !oldestDateStr.Valid {
		return time.Time{}
	}
	oldestDate, err := time.Parse("2006-01-02", oldestDateStr.String)
	if err != nil {
		return time.Time{}
	}

	return oldestDate
}

// CreateSession inserts a new session row. The raw payload, when present,
// is serialized to JSON for the payload column.
func (s *SessionRepository) CreateSession(session model.Session) error {
	var payloadStr sql.NullString
	if session.Payload != nil {
		data, err := json.Marshal(session.Payload)
		if err != nil {
			return fmt.Errorf("failed to serialize session payload: %w", err)
		}
		payloadStr = sql.NullString{String: string(data), Valid: true}
	}

	query := `
        INSERT INTO session (id, account_id, date, net_pnl, gross_pnl, fees,
                             instrument, respected_plan, notes, payload)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		session.ID,
		session.AccountID,
		session.Date.Format("2006-01-02"),
		session.NetPnl,
		session.GrossPnl,
		session.Fees,
		session.Instrument,
		session.RespectedPlan,
		session.Notes,
		payloadStr,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// DeleteSession removes a session and, via cascade, its trade legs.
// Returns apperrors.ErrSessionNotFound when no row was deleted.
func (s *SessionRepository) DeleteSession(sessionID string) error {
	result, err := s.db.Exec(`DELETE FROM session WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}

// scanSession scans one session row, tolerating nil numeric columns and a
// malformed payload.
func scanSession(rows *sql.Rows) (model.Session, error) {
	var session model.Session
	var dateStr, createdAtStr string
	var netPnl, grossPnl, fees sql.NullFloat64
	var instrument, notes, payloadStr sql.NullString

	err := rows.Scan(
		&session.ID,
		&session.AccountID,
		&dateStr,
		&netPnl,
		&grossPnl,
		&fees,
		&instrument,
		&session.RespectedPlan,
		&notes,
		&payloadStr,
		&createdAtStr,
	)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to scan session table results: %w", err)
	}

	session.Date, err = ParseTime(dateStr)
	if err != nil || session.Date.IsZero() {
		return model.Session{}, fmt.Errorf("failed to parse date: %w", err)
	}
	session.CreatedAt, _ = ParseTime(createdAtStr)

	if netPnl.Valid {
		session.NetPnl = &netPnl.Float64
	}
	if grossPnl.Valid {
		session.GrossPnl = &grossPnl.Float64
	}
	if fees.Valid {
		session.Fees = &fees.Float64
	}
	session.Instrument = instrument.String
	session.Notes = notes.String

	// Malformed payloads are skipped, not fatal: the record came from an
	// older journal version and still supports every column-backed aggregate.
	if payloadStr.Valid && payloadStr.String != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(payloadStr.String), &payload); err == nil {
			session.Payload = payload
		}
	}

	return session, nil
}
