package service_test

import (
	"testing"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

// TestComputePerformanceStats tests the aggregate win/loss statistics.
//
// WHY: These numbers are how traders judge themselves. The breakeven
// exclusion and the nil profit factor are explicit policies that silent
// formula changes must not regress.
func TestComputePerformanceStats(t *testing.T) {
	mon := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	sessionsOn := func(pnls ...float64) []model.NormalizedSession {
		sessions := make([]model.NormalizedSession, len(pnls))
		for i, pnl := range pnls {
			sessions[i] = model.NormalizedSession{
				ID:     "s",
				Date:   mon.AddDate(0, 0, i),
				NetPnl: pnl,
			}
		}
		return sessions
	}

	t.Run("breakevens are excluded from the win rate", func(t *testing.T) {
		stats := service.ComputePerformanceStats(sessionsOn(100, -50, 0, 0, 200), nil)

		if stats.Sessions != 5 {
			t.Errorf("Expected 5 sessions, got %d", stats.Sessions)
		}
		if stats.Wins != 2 || stats.Losses != 1 || stats.Breakevens != 2 {
			t.Errorf("Expected 2/1/2 wins/losses/breakevens, got %d/%d/%d",
				stats.Wins, stats.Losses, stats.Breakevens)
		}
		// 2 wins out of 3 decisive sessions, not out of 5.
		if stats.WinRate != 66.67 {
			t.Errorf("Expected win rate 66.67, got %v", stats.WinRate)
		}
	})

	t.Run("profit factor is nil without losses", func(t *testing.T) {
		stats := service.ComputePerformanceStats(sessionsOn(100, 50, 0), nil)

		if stats.ProfitFactor != nil {
			t.Errorf("Expected nil profit factor, got %v", *stats.ProfitFactor)
		}
	})

	t.Run("averages and profit factor", func(t *testing.T) {
		stats := service.ComputePerformanceStats(sessionsOn(100, 200, -50, -100), nil)

		if stats.AvgWin != 150 {
			t.Errorf("Expected avg win 150, got %v", stats.AvgWin)
		}
		if stats.AvgLoss != 75 {
			t.Errorf("Expected avg loss 75 (magnitude), got %v", stats.AvgLoss)
		}
		if stats.ProfitFactor == nil || *stats.ProfitFactor != 2 {
			t.Errorf("Expected profit factor 2, got %v", stats.ProfitFactor)
		}
		if stats.TotalNetPnl != 150 {
			t.Errorf("Expected total net P&L 150, got %v", stats.TotalNetPnl)
		}
		if stats.AverageNetPnl != 37.5 {
			t.Errorf("Expected average net P&L 37.5, got %v", stats.AverageNetPnl)
		}
		// Expectancy: 0.5*150 - 0.5*75 = 37.50.
		if stats.Expectancy != 37.5 {
			t.Errorf("Expected expectancy 37.5, got %v", stats.Expectancy)
		}
	})

	t.Run("streaks reset on breakeven", func(t *testing.T) {
		stats := service.ComputePerformanceStats(
			sessionsOn(100, 100, 100, 0, 100, -50, -50, 100), nil)

		if stats.LongestWinStreak != 3 {
			t.Errorf("Expected longest win streak 3, got %d", stats.LongestWinStreak)
		}
		if stats.LongestLossStreak != 2 {
			t.Errorf("Expected longest loss streak 2, got %d", stats.LongestLossStreak)
		}
	})

	t.Run("empty input yields zeroed stats", func(t *testing.T) {
		stats := service.ComputePerformanceStats(nil, nil)

		if stats.Sessions != 0 || stats.WinRate != 0 || stats.ProfitFactor != nil {
			t.Errorf("Expected zeroed stats, got %+v", stats)
		}
		if stats.ByWeekday == nil || stats.ByInstrument == nil {
			t.Error("Expected empty (non-nil) breakdown slices")
		}
	})

	t.Run("max drawdown from equity curve", func(t *testing.T) {
		equity := []model.EquityPoint{
			{Date: mon, Actual: 10000},
			{Date: mon.AddDate(0, 0, 1), Actual: 10500},
			{Date: mon.AddDate(0, 0, 2), Actual: 9800},
			{Date: mon.AddDate(0, 0, 3), Actual: 10200},
			{Date: mon.AddDate(0, 0, 4), Actual: 9700},
		}

		stats := service.ComputePerformanceStats(nil, equity)

		// Peak 10500, trough 9700.
		if stats.MaxDrawdown != 800 {
			t.Errorf("Expected max drawdown 800, got %v", stats.MaxDrawdown)
		}
		if stats.MaxDrawdownPct != 7.62 {
			t.Errorf("Expected max drawdown 7.62%%, got %v", stats.MaxDrawdownPct)
		}
	})

	t.Run("monotonic curve has zero drawdown", func(t *testing.T) {
		equity := []model.EquityPoint{
			{Date: mon, Actual: 10000},
			{Date: mon.AddDate(0, 0, 1), Actual: 10100},
		}

		stats := service.ComputePerformanceStats(nil, equity)

		if stats.MaxDrawdown != 0 || stats.MaxDrawdownPct != 0 {
			t.Errorf("Expected zero drawdown, got %v / %v%%",
				stats.MaxDrawdown, stats.MaxDrawdownPct)
		}
	})
}

// TestComputePerformanceStats_Breakdowns tests weekday and instrument slices.
//
// WHY: Breakdowns tell a trader where the edge lives. Grouping, ordering, and
// the shared win-rate policy must match the top-level aggregate.
func TestComputePerformanceStats_Breakdowns(t *testing.T) {
	mon := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tue := mon.AddDate(0, 0, 1)

	sessions := []model.NormalizedSession{
		{ID: "s1", Date: mon, NetPnl: 100, Instrument: "ES"},
		{ID: "s2", Date: tue, NetPnl: -50, Instrument: "NQ"},
		{ID: "s3", Date: mon.AddDate(0, 0, 7), NetPnl: 200, Instrument: "ES"},
		{ID: "s4", Date: tue.AddDate(0, 0, 7), NetPnl: 75},
	}

	stats := service.ComputePerformanceStats(sessions, nil)

	t.Run("weekday breakdown ordered Monday first", func(t *testing.T) {
		if len(stats.ByWeekday) != 2 {
			t.Fatalf("Expected 2 weekday groups, got %d", len(stats.ByWeekday))
		}
		if stats.ByWeekday[0].Label != "Monday" || stats.ByWeekday[1].Label != "Tuesday" {
			t.Errorf("Expected Monday then Tuesday, got %q then %q",
				stats.ByWeekday[0].Label, stats.ByWeekday[1].Label)
		}

		monday := stats.ByWeekday[0]
		if monday.Sessions != 2 || monday.Wins != 2 || monday.NetPnl != 300 {
			t.Errorf("Unexpected Monday stats: %+v", monday)
		}
		if monday.WinRate != 100 {
			t.Errorf("Expected Monday win rate 100, got %v", monday.WinRate)
		}
	})

	t.Run("instrument breakdown alphabetical with untagged bucket", func(t *testing.T) {
		if len(stats.ByInstrument) != 3 {
			t.Fatalf("Expected 3 instrument groups, got %d", len(stats.ByInstrument))
		}
		labels := []string{
			stats.ByInstrument[0].Label,
			stats.ByInstrument[1].Label,
			stats.ByInstrument[2].Label,
		}
		if labels[0] != "ES" || labels[1] != "NQ" || labels[2] != "untagged" {
			t.Errorf("Expected ES, NQ, untagged; got %v", labels)
		}

		es := stats.ByInstrument[0]
		if es.Sessions != 2 || es.NetPnl != 300 || es.AverageNetPnl != 150 {
			t.Errorf("Unexpected ES stats: %+v", es)
		}
	})
}
