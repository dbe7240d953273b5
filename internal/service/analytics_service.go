package service

import (
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// AnalyticsService orchestrates the full analytics pipeline for an account:
// load, normalize, match, build equity, aggregate, compare, compute KPIs.
// Every step past loading is a pure calculation over the loaded snapshot, so
// one ComputeSummary call always reflects a single consistent view of the
// data.
type AnalyticsService struct {
	dataLoaderService *DataLoaderService
	kpiConfig         KPIConfig
}

// NewAnalyticsService creates a new AnalyticsService with the provided loader
// and KPI configuration.
func NewAnalyticsService(dataLoaderService *DataLoaderService, kpiConfig KPIConfig) *AnalyticsService {
	return &AnalyticsService{
		dataLoaderService: dataLoaderService,
		kpiConfig:         kpiConfig,
	}
}

// ComputeSummary recomputes the complete analytics payload for the account
// as of now.
func (s *AnalyticsService) ComputeSummary(accountID string) (model.AnalyticsSummary, error) {
	data, err := s.dataLoaderService.LoadForAccount(accountID)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}
	return s.summarize(data, time.Now().UTC()), nil
}

// summarize runs the pure pipeline over an already-loaded dataset.
// The reference date anchors the period comparison windows.
func (s *AnalyticsService) summarize(data AccountData, reference time.Time) model.AnalyticsSummary {
	sessions := NormalizeSessions(data.Sessions)

	matched := MatchAllSessions(sessions, data.LegsBySession)

	equity := BuildEquityCurve(EquityCurveInput{
		Sessions:        sessions,
		Cashflows:       data.Cashflows,
		StartingBalance: data.Account.StartingBalance,
		Plan:            data.Plan,
	})

	return model.AnalyticsSummary{
		AccountID:         data.Account.ID,
		MatchedTrades:     matched.Trades,
		TimedTrades:       matched.TimedCount,
		UntimedTrades:     matched.UntimedCount,
		EquityPoints:      equity,
		Stats:             ComputePerformanceStats(sessions, equity),
		PeriodComparisons: ComparePeriods(sessions, matched.Trades, equity, reference, s.kpiConfig),
		KPIResults:        ComputeKPIs(matched.Trades, equity, data.Cashflows, s.kpiConfig),
	}
}

// BuildEquityHistory computes the account's equity curve on demand from raw
// sessions, cashflows, and the growth plan. This is the slow path; the
// materialized service serves the same series from pre-calculated snapshots
// when they are available.
func (s *AnalyticsService) BuildEquityHistory(accountID string) ([]model.EquityPoint, error) {
	data, err := s.dataLoaderService.LoadForAccount(accountID)
	if err != nil {
		return nil, err
	}

	return BuildEquityCurve(EquityCurveInput{
		Sessions:        NormalizeSessions(data.Sessions),
		Cashflows:       data.Cashflows,
		StartingBalance: data.Account.StartingBalance,
		Plan:            data.Plan,
	}), nil
}

// GetMatchedTrades computes the matched round-trip trades with their timing
// counters on their own.
func (s *AnalyticsService) GetMatchedTrades(accountID string) (model.MatchResult, error) {
	summary, err := s.ComputeSummary(accountID)
	if err != nil {
		return model.MatchResult{}, err
	}
	return model.MatchResult{
		Trades:       summary.MatchedTrades,
		TimedCount:   summary.TimedTrades,
		UntimedCount: summary.UntimedTrades,
	}, nil
}

// GetPerformanceStats computes the aggregate statistics block on its own,
// for callers that do not need the full summary payload.
func (s *AnalyticsService) GetPerformanceStats(accountID string) (model.PerformanceStats, error) {
	summary, err := s.ComputeSummary(accountID)
	if err != nil {
		return model.PerformanceStats{}, err
	}
	return summary.Stats, nil
}

// GetPeriodComparisons computes the rolling and month-to-date window
// comparisons on their own.
func (s *AnalyticsService) GetPeriodComparisons(accountID string) ([]model.PeriodComparison, error) {
	summary, err := s.ComputeSummary(accountID)
	if err != nil {
		return nil, err
	}
	return summary.PeriodComparisons, nil
}

// GetKPIs computes the full KPI catalog on its own.
func (s *AnalyticsService) GetKPIs(accountID string) ([]model.KPIResult, error) {
	summary, err := s.ComputeSummary(accountID)
	if err != nil {
		return nil, err
	}
	return summary.KPIResults, nil
}
