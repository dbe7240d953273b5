package repository

import (
	"database/sql"
	"fmt"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// TradeLegRepository provides data access methods for the trade_leg table.
// It handles retrieving fill lines grouped by their parent session.
type TradeLegRepository struct {
	db *sql.DB
}

// NewTradeLegRepository creates a new TradeLegRepository with the provided database connection.
func NewTradeLegRepository(db *sql.DB) *TradeLegRepository {
	return &TradeLegRepository{db: db}
}

// GetLegsBySessionIDs retrieves all trade legs for the given session IDs.
// Legs are sorted by creation order and grouped by session ID.
//
// Returns a map of sessionID -> []TradeLeg. If sessionIDs is empty, returns an empty map.
// This grouping lets the trade matcher process each session independently.
func (s *TradeLegRepository) GetLegsBySessionIDs(sessionIDs []string) (map[string][]model.TradeLeg, error) {
	if len(sessionIDs) == 0 {
		return make(map[string][]model.TradeLeg), nil
	}

	query := `
		SELECT id, session_id, role, symbol, instrument_kind, side,
		       price, quantity, time_of_day, days_to_expiry, expiry_date
		FROM trade_leg
		WHERE session_id IN (` + placeholders(len(sessionIDs)) + `)
		ORDER BY created_at ASC, id ASC
	`

	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_leg table: %w", err)
	}
	defer rows.Close()

	legsBySession := make(map[string][]model.TradeLeg)

	for rows.Next() {
		var leg model.TradeLeg
		var timeOfDay sql.NullString
		var daysToExpiry sql.NullInt64
		var expiryDateStr sql.NullString

		err := rows.Scan(
			&leg.ID,
			&leg.SessionID,
			&leg.Role,
			&leg.Symbol,
			&leg.InstrumentKind,
			&leg.Side,
			&leg.Price,
			&leg.Quantity,
			&timeOfDay,
			&daysToExpiry,
			&expiryDateStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_leg table results: %w", err)
		}

		leg.TimeOfDay = timeOfDay.String
		if daysToExpiry.Valid {
			dte := int(daysToExpiry.Int64)
			leg.DaysToExpiry = &dte
		}
		if expiryDateStr.Valid && expiryDateStr.String != "" {
			expiry, err := ParseTime(expiryDateStr.String)
			if err == nil {
				leg.ExpiryDate = &expiry
			}
		}

		legsBySession[leg.SessionID] = append(legsBySession[leg.SessionID], leg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_leg table: %w", err)
	}

	return legsBySession, nil
}

// CreateTradeLeg inserts a new trade leg row.
func (s *TradeLegRepository) CreateTradeLeg(leg model.TradeLeg) error {
	var expiryDate any
	if leg.ExpiryDate != nil {
		expiryDate = leg.ExpiryDate.Format("2006-01-02")
	}

	query := `
        INSERT INTO trade_leg (id, session_id, role, symbol, instrument_kind, side,
                               price, quantity, time_of_day, days_to_expiry, expiry_date)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		leg.ID,
		leg.SessionID,
		leg.Role,
		leg.Symbol,
		leg.InstrumentKind,
		leg.Side,
		leg.Price,
		leg.Quantity,
		leg.TimeOfDay,
		leg.DaysToExpiry,
		expiryDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade_leg: %w", err)
	}
	return nil
}
