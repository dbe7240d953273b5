package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// CashflowRepository provides data access methods for the cashflow table.
type CashflowRepository struct {
	db *sql.DB
}

// NewCashflowRepository creates a new CashflowRepository with the provided database connection.
func NewCashflowRepository(db *sql.DB) *CashflowRepository {
	return &CashflowRepository{db: db}
}

// GetCashflows retrieves all cashflows for the given account within the specified date range.
// Cashflows are sorted by date in ascending order.
func (s *CashflowRepository) GetCashflows(accountID string, startDate, endDate time.Time) ([]model.Cashflow, error) {
	query := `
		SELECT id, account_id, date, amount, note
		FROM cashflow
		WHERE account_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := s.db.Query(query, accountID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query cashflow table: %w", err)
	}
	defer rows.Close()

	cashflows := []model.Cashflow{}

	for rows.Next() {
		var c model.Cashflow
		var dateStr string
		var note sql.NullString

		err := rows.Scan(
			&c.ID,
			&c.AccountID,
			&dateStr,
			&c.Amount,
			&note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cashflow table results: %w", err)
		}

		c.Date, err = ParseTime(dateStr)
		if err != nil || c.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		c.Note = note.String

		cashflows = append(cashflows, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflow table: %w", err)
	}

	return cashflows, nil
}

// CreateCashflow inserts a new cashflow row.
func (s *CashflowRepository) CreateCashflow(cashflow model.Cashflow) error {
	query := `
        INSERT INTO cashflow (id, account_id, date, amount, note)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		cashflow.ID,
		cashflow.AccountID,
		cashflow.Date.Format("2006-01-02"),
		cashflow.Amount,
		cashflow.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cashflow: %w", err)
	}
	return nil
}

// DeleteCashflow removes a cashflow record.
// Returns apperrors.ErrCashflowNotFound when no row was deleted.
func (s *CashflowRepository) DeleteCashflow(cashflowID string) error {
	result, err := s.db.Exec(`DELETE FROM cashflow WHERE id = ?`, cashflowID)
	if err != nil {
		return fmt.Errorf("failed to delete cashflow: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCashflowNotFound
	}

	return nil
}
