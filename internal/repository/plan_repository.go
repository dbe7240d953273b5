package repository

import (
	"database/sql"
	"fmt"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// PlanRepository provides data access methods for the growth_plan table.
// Each account holds at most one plan.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository with the provided database connection.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// GetPlanOnAccountID retrieves the growth plan for the given account.
// Returns apperrors.ErrGrowthPlanNotFound when the account has no plan.
func (s *PlanRepository) GetPlanOnAccountID(accountID string) (model.GrowthPlan, error) {
	query := `
		SELECT id, account_id, starting_balance, target_balance,
		       daily_target_pct, loss_days_per_week, trading_days,
		       created_at, updated_at
		FROM growth_plan
		WHERE account_id = ?
	`

	var plan model.GrowthPlan
	var createdAtStr, updatedAtStr string

	err := s.db.QueryRow(query, accountID).Scan(
		&plan.ID,
		&plan.AccountID,
		&plan.StartingBalance,
		&plan.TargetBalance,
		&plan.DailyTargetPct,
		&plan.LossDaysPerWeek,
		&plan.TradingDays,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.GrowthPlan{}, apperrors.ErrGrowthPlanNotFound
	}
	if err != nil {
		return model.GrowthPlan{}, fmt.Errorf("failed to query growth_plan: %w", err)
	}

	plan.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.GrowthPlan{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	plan.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.GrowthPlan{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return plan, nil
}

// UpsertPlan inserts the account's growth plan or replaces the existing one.
// The updated_at column is bumped on every write; it feeds the plan start date.
func (s *PlanRepository) UpsertPlan(plan model.GrowthPlan) error {
	query := `
        INSERT INTO growth_plan (id, account_id, starting_balance, target_balance,
                                 daily_target_pct, loss_days_per_week, trading_days)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(account_id) DO UPDATE SET
            starting_balance = excluded.starting_balance,
            target_balance = excluded.target_balance,
            daily_target_pct = excluded.daily_target_pct,
            loss_days_per_week = excluded.loss_days_per_week,
            trading_days = excluded.trading_days,
            updated_at = CURRENT_TIMESTAMP
    `
	_, err := s.db.Exec(query,
		plan.ID,
		plan.AccountID,
		plan.StartingBalance,
		plan.TargetBalance,
		plan.DailyTargetPct,
		plan.LossDaysPerWeek,
		plan.TradingDays,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert growth_plan: %w", err)
	}
	return nil
}
