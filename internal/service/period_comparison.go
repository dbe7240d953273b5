package service

import (
	"math"
	"sort"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// comparisonKPIIDs is the fixed set of KPI ids eligible for per-window KPI
// deltas. Restricting the set bounds the comparison payload size.
var comparisonKPIIDs = []string{KPIProfitFactor, KPIExpectancy, KPIPayoffRatio}

// maxKPIDeltas caps how many KPI deltas a window surfaces.
const maxKPIDeltas = 3

// dateWindow is an inclusive date range.
type dateWindow struct {
	start time.Time
	end   time.Time
}

// ComparePeriods computes performance statistics over a fixed set of rolling
// and anchored windows and their deltas against the equivalent prior window:
//
//   - last 7 days vs. the 7 days before that
//   - last 30 days vs. the 30 days before that
//   - month-to-date vs. the same number of days into the previous month
//
// The month-to-date comparison truncates the previous month's window to
// min(currentDayOfMonth, daysInPreviousMonth), so months of unequal length
// stay comparable.
//
// Delta fields are computed as current − previous. Each window also carries
// up to three KPI-level deltas, ranked by absolute magnitude and restricted
// to a fixed id set.
//
// The reference date is an explicit parameter so the computation stays
// deterministic; callers pass "today" (or any anchor) in UTC.
func ComparePeriods(
	sessions []model.NormalizedSession,
	trades []model.MatchedTrade,
	equity []model.EquityPoint,
	reference time.Time,
	cfg KPIConfig,
) []model.PeriodComparison {
	ref := truncateToDay(reference)

	comparisons := []model.PeriodComparison{
		compareWindow(model.WindowLast7Days, "Last 7 days", rollingWindows(ref, 7), sessions, trades, equity, cfg),
		compareWindow(model.WindowLast30Days, "Last 30 days", rollingWindows(ref, 30), sessions, trades, equity, cfg),
		compareWindow(model.WindowMonthToDate, "Month to date", monthToDateWindows(ref), sessions, trades, equity, cfg),
	}

	return comparisons
}

// rollingWindows returns the current and prior inclusive windows of the given
// length ending at the reference date.
func rollingWindows(ref time.Time, days int) [2]dateWindow {
	current := dateWindow{start: ref.AddDate(0, 0, -(days - 1)), end: ref}
	previous := dateWindow{start: ref.AddDate(0, 0, -(2*days - 1)), end: ref.AddDate(0, 0, -days)}
	return [2]dateWindow{current, previous}
}

// monthToDateWindows returns the month-to-date window and the equivalent
// truncated window in the previous month.
func monthToDateWindows(ref time.Time) [2]dateWindow {
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	current := dateWindow{start: monthStart, end: ref}

	prevMonthStart := monthStart.AddDate(0, -1, 0)
	daysInPrevMonth := monthStart.AddDate(0, 0, -1).Day()

	span := ref.Day()
	if daysInPrevMonth < span {
		span = daysInPrevMonth
	}
	previous := dateWindow{start: prevMonthStart, end: prevMonthStart.AddDate(0, 0, span-1)}

	return [2]dateWindow{current, previous}
}

func compareWindow(
	id, label string,
	windows [2]dateWindow,
	sessions []model.NormalizedSession,
	trades []model.MatchedTrade,
	equity []model.EquityPoint,
	cfg KPIConfig,
) model.PeriodComparison {
	current := periodStatsFor(windows[0], sessions)
	previous := periodStatsFor(windows[1], sessions)

	return model.PeriodComparison{
		Window:   id,
		Label:    label,
		Current:  current,
		Previous: previous,
		Delta: model.PeriodDelta{
			Sessions:      current.Sessions - previous.Sessions,
			WinRate:       round(current.WinRate - previous.WinRate),
			NetPnl:        round(current.NetPnl - previous.NetPnl),
			AverageNetPnl: round(current.AverageNetPnl - previous.AverageNetPnl),
		},
		TopKPIDeltas: topKPIDeltas(windows, trades, equity, cfg),
	}
}

// periodStatsFor computes window-level session statistics under the same
// breakeven-excluded win-rate policy as the full aggregate.
func periodStatsFor(window dateWindow, sessions []model.NormalizedSession) model.PeriodStats {
	stats := model.PeriodStats{
		StartDate: window.start,
		EndDate:   window.end,
	}

	for _, session := range sessions {
		if !window.contains(session.Date) {
			continue
		}
		stats.Sessions++
		stats.NetPnl += session.NetPnl
		if session.NetPnl > 0 {
			stats.Wins++
		} else if session.NetPnl < 0 {
			stats.Losses++
		}
	}

	decisive := stats.Wins + stats.Losses
	if decisive > 0 {
		stats.WinRate = round(float64(stats.Wins) / float64(decisive) * 100)
	}
	if stats.Sessions > 0 {
		stats.AverageNetPnl = round(stats.NetPnl / float64(stats.Sessions))
	}
	stats.NetPnl = round(stats.NetPnl)

	return stats
}

// topKPIDeltas evaluates the fixed comparison KPI set over both windows and
// returns the largest shifts. A KPI missing a value on either side (nil in
// that window's population) produces no delta.
func topKPIDeltas(
	windows [2]dateWindow,
	trades []model.MatchedTrade,
	equity []model.EquityPoint,
	cfg KPIConfig,
) []model.KPIDelta {
	// The comparison KPI set is trade-based, so no cashflows are needed here.
	currentValues := ComputeKPIValues(comparisonKPIIDs, tradesInWindow(windows[0], trades), equityInWindow(windows[0], equity), nil, cfg)
	previousValues := ComputeKPIValues(comparisonKPIIDs, tradesInWindow(windows[1], trades), equityInWindow(windows[1], equity), nil, cfg)

	deltas := []model.KPIDelta{}
	for _, id := range comparisonKPIIDs {
		current, previous := currentValues[id], previousValues[id]
		if current == nil || previous == nil {
			continue
		}
		deltas = append(deltas, model.KPIDelta{
			ID:       id,
			Name:     KPIName(id),
			Current:  current,
			Previous: previous,
			Delta:    round(*current - *previous),
		})
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		return math.Abs(deltas[i].Delta) > math.Abs(deltas[j].Delta)
	})

	if len(deltas) > maxKPIDeltas {
		deltas = deltas[:maxKPIDeltas]
	}
	return deltas
}

func tradesInWindow(window dateWindow, trades []model.MatchedTrade) []model.MatchedTrade {
	filtered := []model.MatchedTrade{}
	for _, trade := range trades {
		if window.contains(trade.SessionDate) {
			filtered = append(filtered, trade)
		}
	}
	return filtered
}

func equityInWindow(window dateWindow, equity []model.EquityPoint) []model.EquityPoint {
	filtered := []model.EquityPoint{}
	for _, point := range equity {
		if window.contains(point.Date) {
			filtered = append(filtered, point)
		}
	}
	return filtered
}

func (w dateWindow) contains(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(w.start) && !day.After(w.end)
}
