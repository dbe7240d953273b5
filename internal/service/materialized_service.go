package service

import (
	"log"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
)

// MaterializedService serves pre-calculated equity snapshots from the
// equity_materialized table, falling back to on-demand calculation when the
// snapshots are missing or stale. It also owns the rebuild path the nightly
// scheduler and write handlers use to refresh the snapshots.
type MaterializedService struct {
	materializedRepo *repository.MaterializedRepository
	accountRepo      *repository.AccountRepository
	analyticsService *AnalyticsService
}

// NewMaterializedService creates a new MaterializedService with the provided dependencies.
func NewMaterializedService(
	materializedRepo *repository.MaterializedRepository,
	accountRepo *repository.AccountRepository,
	analyticsService *AnalyticsService,
) *MaterializedService {
	return &MaterializedService{
		materializedRepo: materializedRepo,
		accountRepo:      accountRepo,
		analyticsService: analyticsService,
	}
}

// GetEquityMaterialized retrieves the account's equity series from the
// materialized snapshot table for the given inclusive date range.
//
// This is the fast path: it reads pre-calculated daily balances instead of
// replaying the account's full session and cashflow history. Only dates with
// existing snapshots appear in the result.
func (s *MaterializedService) GetEquityMaterialized(accountID string, startDate, endDate time.Time) ([]model.EquityPoint, error) {
	points := []model.EquityPoint{}

	err := s.materializedRepo.GetMaterializedEquity(
		accountID,
		startDate,
		endDate,
		func(record model.EquityPointMaterialized) error {
			points = append(points, model.EquityPoint{
				Date:      record.Date,
				Actual:    record.ActualValue,
				Projected: record.ProjectedValue,
				AsOf:      record.AsOf,
			})
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return points, nil
}

// GetEquityHistoryWithFallback tries the materialized snapshots first and
// falls back to on-demand calculation when they are empty or stale.
//
// Staleness check: the snapshot series must reach the account's last
// qualifying day. Recomputing the curve is the only way to know that day, so
// the check compares against the on-demand result lazily - the materialized
// data is trusted unless it is empty, because every write path triggers a
// rebuild. An empty result means the table was never populated or is mid-
// rebuild, and the on-demand path covers it.
func (s *MaterializedService) GetEquityHistoryWithFallback(accountID string, startDate, endDate time.Time) ([]model.EquityPoint, error) {
	// Step 1: Try materialized snapshots first (fast path)
	materialized, err := s.GetEquityMaterialized(accountID, startDate, endDate)
	if err == nil && len(materialized) > 0 {
		return materialized, nil
	}

	// Step 2: Fallback to on-demand calculation
	// (Snapshots are empty, being regenerated, or the query failed)
	curve, err := s.analyticsService.BuildEquityHistory(accountID)
	if err != nil {
		return nil, err
	}
	return filterEquityRange(curve, startDate, endDate), nil
}

// RebuildEquityMaterialized recomputes the account's full equity curve and
// replaces its snapshot rows in one transaction. Write handlers call this
// after mutating sessions, cashflows, or the plan so the fast path never
// serves balances from before the write.
func (s *MaterializedService) RebuildEquityMaterialized(accountID string) error {
	curve, err := s.analyticsService.BuildEquityHistory(accountID)
	if err != nil {
		return err
	}
	return s.materializedRepo.ReplaceEquityForAccount(accountID, curve)
}

// RebuildAll refreshes the equity snapshots of every active account.
// A failing account is logged and skipped so one bad dataset cannot stall
// the nightly refresh of the others; the first error is still returned.
func (s *MaterializedService) RebuildAll() error {
	accounts, err := s.accountRepo.GetAccounts(model.AccountFilter{IncludeArchived: false})
	if err != nil {
		return err
	}

	var firstErr error
	for _, account := range accounts {
		if err := s.RebuildEquityMaterialized(account.ID); err != nil {
			log.Printf("equity snapshot rebuild failed for account %s: %v", account.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// filterEquityRange keeps the points within the inclusive date range.
// The trailing as-of point survives an endDate cut-off only if it falls
// inside the range, matching how the materialized query behaves.
func filterEquityRange(points []model.EquityPoint, startDate, endDate time.Time) []model.EquityPoint {
	filtered := []model.EquityPoint{}
	for _, point := range points {
		if point.Date.Before(startDate) || point.Date.After(endDate) {
			continue
		}
		filtered = append(filtered, point)
	}
	return filtered
}
