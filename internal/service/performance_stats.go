package service

import (
	"sort"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// ComputePerformanceStats aggregates win/loss statistics, drawdown, streaks,
// and breakdowns over the given sessions and equity curve.
//
// Classification policy: a session is a win when net P&L > 0, a loss when
// net P&L < 0, and breakeven at exactly 0. Breakeven sessions are excluded
// from the win-rate denominator; this is a deliberate, named policy, not a
// side effect of the formula. ProfitFactor is nil when there are no losing
// sessions (never +Inf).
func ComputePerformanceStats(sessions []model.NormalizedSession, equity []model.EquityPoint) model.PerformanceStats {
	stats := model.PerformanceStats{
		Sessions:     len(sessions),
		ByWeekday:    []model.BreakdownStats{},
		ByInstrument: []model.BreakdownStats{},
	}

	var grossWins, grossLosses float64
	var winStreak, lossStreak int

	for _, session := range sessions {
		stats.TotalNetPnl += session.NetPnl

		switch {
		case session.NetPnl > 0:
			stats.Wins++
			grossWins += session.NetPnl
			winStreak++
			lossStreak = 0
		case session.NetPnl < 0:
			stats.Losses++
			grossLosses += -session.NetPnl
			lossStreak++
			winStreak = 0
		default:
			// Breakeven resets both streaks.
			stats.Breakevens++
			winStreak = 0
			lossStreak = 0
		}

		if winStreak > stats.LongestWinStreak {
			stats.LongestWinStreak = winStreak
		}
		if lossStreak > stats.LongestLossStreak {
			stats.LongestLossStreak = lossStreak
		}
	}

	decisive := stats.Wins + stats.Losses
	if decisive > 0 {
		stats.WinRate = round(float64(stats.Wins) / float64(decisive) * 100)
	}
	if stats.Wins > 0 {
		stats.AvgWin = round(grossWins / float64(stats.Wins))
	}
	if stats.Losses > 0 {
		stats.AvgLoss = round(grossLosses / float64(stats.Losses))
		stats.ProfitFactor = floatPtr(round(grossWins / grossLosses))
	}
	if decisive > 0 {
		pWin := float64(stats.Wins) / float64(decisive)
		pLoss := float64(stats.Losses) / float64(decisive)
		stats.Expectancy = round(pWin*(grossWins/nonZero(stats.Wins)) - pLoss*(grossLosses/nonZero(stats.Losses)))
	}
	if stats.Sessions > 0 {
		stats.AverageNetPnl = round(stats.TotalNetPnl / float64(stats.Sessions))
	}
	stats.TotalNetPnl = round(stats.TotalNetPnl)

	stats.MaxDrawdown, stats.MaxDrawdownPct = maxDrawdownFromEquity(equity)

	stats.ByWeekday = weekdayBreakdown(sessions)
	stats.ByInstrument = instrumentBreakdown(sessions)

	return stats
}

// maxDrawdownFromEquity computes the largest peak-to-trough decline over the
// actual equity series. Returns both the absolute drawdown and the decline as
// a percent of the peak. Both are 0 for an empty or monotonically
// non-decreasing curve; the drawdown is never negative.
func maxDrawdownFromEquity(equity []model.EquityPoint) (drawdown float64, drawdownPct float64) {
	if len(equity) == 0 {
		return 0, 0
	}

	peak := equity[0].Actual
	for _, point := range equity {
		if point.Actual > peak {
			peak = point.Actual
		}
		decline := peak - point.Actual
		if decline > drawdown {
			drawdown = decline
		}
		if peak > 0 {
			declinePct := decline / peak * 100
			if declinePct > drawdownPct {
				drawdownPct = declinePct
			}
		}
	}

	return round(drawdown), round(drawdownPct)
}

// weekdayBreakdown groups sessions by the weekday of their date, ordered
// Monday through Sunday. Days without sessions are omitted.
func weekdayBreakdown(sessions []model.NormalizedSession) []model.BreakdownStats {
	groups := make(map[string][]model.NormalizedSession)
	for _, session := range sessions {
		label := session.Date.Weekday().String()
		groups[label] = append(groups[label], session)
	}

	ordered := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	breakdown := []model.BreakdownStats{}
	for _, weekday := range ordered {
		label := weekday.String()
		if group, exists := groups[label]; exists {
			breakdown = append(breakdown, breakdownStatsFor(label, group))
		}
	}
	return breakdown
}

// instrumentBreakdown groups sessions by instrument tag, alphabetically.
// Untagged sessions are grouped under "untagged".
func instrumentBreakdown(sessions []model.NormalizedSession) []model.BreakdownStats {
	groups := make(map[string][]model.NormalizedSession)
	for _, session := range sessions {
		label := session.Instrument
		if label == "" {
			label = "untagged"
		}
		groups[label] = append(groups[label], session)
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	breakdown := []model.BreakdownStats{}
	for _, label := range labels {
		breakdown = append(breakdown, breakdownStatsFor(label, groups[label]))
	}
	return breakdown
}

// breakdownStatsFor computes per-group statistics under the same win-rate
// policy as the top-level aggregate.
func breakdownStatsFor(label string, sessions []model.NormalizedSession) model.BreakdownStats {
	group := model.BreakdownStats{
		Label:    label,
		Sessions: len(sessions),
	}

	for _, session := range sessions {
		group.NetPnl += session.NetPnl
		if session.NetPnl > 0 {
			group.Wins++
		} else if session.NetPnl < 0 {
			group.Losses++
		}
	}

	decisive := group.Wins + group.Losses
	if decisive > 0 {
		group.WinRate = round(float64(group.Wins) / float64(decisive) * 100)
	}
	if group.Sessions > 0 {
		group.AverageNetPnl = round(group.NetPnl / float64(group.Sessions))
	}
	group.NetPnl = round(group.NetPnl)

	return group
}

// nonZero converts a count to a float64 divisor, substituting 1 for 0 so a
// zero count contributes a zero term instead of NaN.
func nonZero(count int) float64 {
	if count == 0 {
		return 1
	}
	return float64(count)
}
