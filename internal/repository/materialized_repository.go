package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// MaterializedRepository provides data access methods for the equity_materialized table.
type MaterializedRepository struct {
	db *sql.DB
}

// NewMaterializedRepository creates a new repository instance.
func NewMaterializedRepository(db *sql.DB) *MaterializedRepository {
	return &MaterializedRepository{db: db}
}

// GetMaterializedEquity retrieves pre-calculated equity snapshots from the materialized table.
// This method streams results using a callback pattern to minimize memory usage.
//
// The table contains daily equity values that have been pre-calculated and stored,
// eliminating the need to rebuild the curve from sessions and cashflows on each request.
//
// Parameters:
//   - accountID: Account to retrieve snapshots for
//   - startDate: First date to include in results (inclusive)
//   - endDate: Last date to include in results (inclusive)
//   - callback: Function called for each record found, receives the record and should return error if processing fails
//
// Returns an error if the query fails or if the callback returns an error during processing.
func (r *MaterializedRepository) GetMaterializedEquity(
	accountID string,
	startDate, endDate time.Time,
	callback func(record model.EquityPointMaterialized) error,
) error {
	query := `
		SELECT id, account_id, date, actual_value, projected_value, as_of, calculated_at
		FROM equity_materialized
		WHERE account_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, accountID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to query equity_materialized: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.EquityPointMaterialized
		var dateStr, calculatedAtStr string
		var projected sql.NullFloat64

		err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&dateStr,
			&record.ActualValue,
			&projected,
			&record.AsOf,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		record.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if projected.Valid {
			record.ProjectedValue = &projected.Float64
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// ReplaceEquityForAccount atomically replaces all materialized equity rows for
// one account with a freshly computed curve. Runs in a single transaction so a
// failed rebuild never leaves the table half-written.
func (r *MaterializedRepository) ReplaceEquityForAccount(accountID string, points []model.EquityPoint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM equity_materialized WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to clear equity_materialized: %w", err)
	}

	insert := `
        INSERT INTO equity_materialized (id, account_id, date, actual_value, projected_value, as_of)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, point := range points {
		var projected any
		if point.Projected != nil {
			projected = *point.Projected
		}

		_, err := stmt.Exec(
			uuid.NewString(),
			accountID,
			point.Date.Format("2006-01-02"),
			point.Actual,
			projected,
			point.AsOf,
		)
		if err != nil {
			return fmt.Errorf("failed to insert equity_materialized row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit equity_materialized rebuild: %w", err)
	}

	return nil
}
