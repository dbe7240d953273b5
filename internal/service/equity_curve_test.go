package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normSession(date time.Time, netPnl float64) model.NormalizedSession {
	return model.NormalizedSession{ID: "s-" + date.Format("2006-01-02"), Date: date, NetPnl: netPnl}
}

// TestBuildEquityCurve tests the actual balance series.
//
// WHY: The equity curve is the primary chart of the journal and feeds
// drawdown, Sharpe, and period comparisons downstream. Anchor selection,
// cumulative arithmetic, and cashflow handling must all be exact.
func TestBuildEquityCurve(t *testing.T) {
	// 2025-03-03 is a Monday.
	mon, tue, wed := day(2025, 3, 3), day(2025, 3, 4), day(2025, 3, 5)

	t.Run("cumulative actual balances", func(t *testing.T) {
		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions: []model.NormalizedSession{
				normSession(mon, 200),
				normSession(tue, -100),
				normSession(wed, 50),
			},
			StartingBalance: 10000,
		})

		if len(points) != 3 {
			t.Fatalf("Expected 3 points, got %d", len(points))
		}
		want := []float64{10200, 10100, 10150}
		for i, expected := range want {
			if points[i].Actual != expected {
				t.Errorf("Point %d: expected actual %v, got %v", i, expected, points[i].Actual)
			}
		}
		if points[0].Projected != nil {
			t.Error("Expected no projected series without a plan")
		}
	})

	t.Run("gap days carry the balance forward", func(t *testing.T) {
		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions: []model.NormalizedSession{
				normSession(mon, 200),
				normSession(wed, 50),
			},
			StartingBalance: 10000,
		})

		if len(points) != 3 {
			t.Fatalf("Expected 3 points including the idle Tuesday, got %d", len(points))
		}
		if points[1].Actual != 10200 {
			t.Errorf("Expected idle day to hold 10200, got %v", points[1].Actual)
		}
		if points[2].Actual != 10250 {
			t.Errorf("Expected Wednesday at 10250, got %v", points[2].Actual)
		}
	})

	t.Run("deposit shifts both series on its day", func(t *testing.T) {
		plan := &model.GrowthPlan{
			StartingBalance: 10000,
			TargetBalance:   20000,
			DailyTargetPct:  1,
			CreatedAt:       mon,
			UpdatedAt:       mon,
		}

		base := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions:        []model.NormalizedSession{normSession(mon, 200), normSession(tue, -100)},
			StartingBalance: 10000,
			Plan:            plan,
		})
		withDeposit := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions:        []model.NormalizedSession{normSession(mon, 200), normSession(tue, -100)},
			Cashflows:       []model.Cashflow{{Date: tue, Amount: 500}},
			StartingBalance: 10000,
			Plan:            plan,
		})

		if withDeposit[0].Actual != base[0].Actual {
			t.Errorf("Monday should be unaffected: %v vs %v", withDeposit[0].Actual, base[0].Actual)
		}
		if withDeposit[1].Actual != base[1].Actual+500 {
			t.Errorf("Expected Tuesday actual shifted by 500: %v vs %v",
				withDeposit[1].Actual, base[1].Actual)
		}
		// Cashflow neutralization: the projected series moves by the same
		// amount, so the actual-vs-plan gap is unchanged by the deposit.
		if *withDeposit[1].Projected != *base[1].Projected+500 {
			t.Errorf("Expected Tuesday projected shifted by 500: %v vs %v",
				*withDeposit[1].Projected, *base[1].Projected)
		}
	})

	t.Run("weekend cashflow becomes an as-of point", func(t *testing.T) {
		fri := day(2025, 3, 7)
		sat := day(2025, 3, 8)

		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions:        []model.NormalizedSession{normSession(fri, 100)},
			Cashflows:       []model.Cashflow{{Date: sat, Amount: -300}},
			StartingBalance: 10000,
		})

		if len(points) != 2 {
			t.Fatalf("Expected trading point plus as-of point, got %d", len(points))
		}
		last := points[len(points)-1]
		if !last.AsOf {
			t.Error("Expected trailing point to be flagged as-of")
		}
		if !last.Date.Equal(sat) {
			t.Errorf("Expected as-of point dated %v, got %v", sat, last.Date)
		}
		if last.Actual != 9800 {
			t.Errorf("Expected as-of actual 9800, got %v", last.Actual)
		}
	})

	t.Run("no sessions and no plan yields empty curve", func(t *testing.T) {
		points := service.BuildEquityCurve(service.EquityCurveInput{
			Cashflows:       []model.Cashflow{{Date: day(2025, 3, 8), Amount: 500}},
			StartingBalance: 10000,
		})

		if len(points) != 0 {
			t.Errorf("Expected empty curve without an anchor date, got %d points", len(points))
		}
	})

	t.Run("compounded projection with a loss day", func(t *testing.T) {
		plan := &model.GrowthPlan{
			StartingBalance: 10000,
			TargetBalance:   20000,
			DailyTargetPct:  1,
			LossDaysPerWeek: 1,
			TradingDays:     5,
			CreatedAt:       mon,
			UpdatedAt:       mon,
		}

		// Sessions through the following Monday; the 5-day cap stops the
		// curve on Friday.
		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions: []model.NormalizedSession{
				normSession(mon, 0),
				normSession(day(2025, 3, 10), 0),
			},
			StartingBalance: 10000,
			Plan:            plan,
		})

		if len(points) != 5 {
			t.Fatalf("Expected curve capped at 5 trading days, got %d points", len(points))
		}

		// Days 1-4 compound up 1%, day 5 is the designated loss day.
		expected := 10000.0
		for i := 0; i < 4; i++ {
			expected *= 1.01
		}
		if got := *points[3].Projected; math.Abs(got-math.Round(expected*100)/100) > 0.01 {
			t.Errorf("Expected day 4 projection near %v, got %v", expected, got)
		}
		expected *= 0.99
		if got := *points[4].Projected; math.Abs(got-math.Round(expected*100)/100) > 0.01 {
			t.Errorf("Expected loss-day projection near %v, got %v", expected, got)
		}
	})

	t.Run("linear projection without a daily target", func(t *testing.T) {
		plan := &model.GrowthPlan{
			StartingBalance: 10000,
			TargetBalance:   20000,
			DailyTargetPct:  0,
			TradingDays:     4,
			CreatedAt:       mon,
			UpdatedAt:       mon,
		}

		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions: []model.NormalizedSession{
				normSession(mon, 0),
				normSession(day(2025, 3, 6), 0),
			},
			StartingBalance: 10000,
			Plan:            plan,
		})

		if len(points) != 4 {
			t.Fatalf("Expected 4 points, got %d", len(points))
		}
		want := []float64{12500, 15000, 17500, 20000}
		for i, expected := range want {
			if *points[i].Projected != expected {
				t.Errorf("Point %d: expected projected %v, got %v", i, expected, *points[i].Projected)
			}
		}
	})

	t.Run("history before the plan start folds into the opening balance", func(t *testing.T) {
		// Plan created a week into trading: the curve starts on 2025-03-10,
		// but Monday's profit and deposit must both carry into the first
		// point, not just the deposit.
		nextMon := day(2025, 3, 10)
		plan := &model.GrowthPlan{
			StartingBalance: 10000,
			TargetBalance:   20000,
			DailyTargetPct:  1,
			CreatedAt:       nextMon,
			UpdatedAt:       nextMon,
		}

		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions: []model.NormalizedSession{
				normSession(mon, 1000),
				normSession(nextMon, 100),
			},
			Cashflows:       []model.Cashflow{{Date: mon, Amount: 500}},
			StartingBalance: 10000,
			Plan:            plan,
		})

		if len(points) != 1 {
			t.Fatalf("Expected 1 point from plan start, got %d", len(points))
		}
		if !points[0].Date.Equal(nextMon) {
			t.Errorf("Expected curve to start on %v, got %v", nextMon, points[0].Date)
		}
		if points[0].Actual != 11600 {
			t.Errorf("Expected opening balance 11600 (10000 + 1000 + 500 + 100), got %v", points[0].Actual)
		}
	})

	t.Run("plan start anchors the curve before the first session", func(t *testing.T) {
		plan := &model.GrowthPlan{
			StartingBalance: 10000,
			TargetBalance:   20000,
			DailyTargetPct:  1,
			CreatedAt:       mon,
			UpdatedAt:       mon,
		}

		points := service.BuildEquityCurve(service.EquityCurveInput{
			Sessions:        []model.NormalizedSession{normSession(wed, 150)},
			StartingBalance: 10000,
			Plan:            plan,
		})

		if len(points) != 3 {
			t.Fatalf("Expected curve from plan start, got %d points", len(points))
		}
		if !points[0].Date.Equal(mon) {
			t.Errorf("Expected first point on plan start %v, got %v", mon, points[0].Date)
		}
		if points[0].Actual != 10000 {
			t.Errorf("Expected flat balance before first session, got %v", points[0].Actual)
		}
	})
}
