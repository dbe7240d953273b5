package service

import (
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// EquityCurveInput bundles the immutable inputs for one equity curve build.
type EquityCurveInput struct {
	Sessions        []model.NormalizedSession // Date-ordered normalized sessions
	Cashflows       []model.Cashflow          // Date-ordered; deposits positive, withdrawals negative
	StartingBalance float64                   // Account balance before the first covered day
	Plan            *model.GrowthPlan         // nil means no projected series
}

// BuildEquityCurve builds the date-ordered actual balance series and, when a
// growth plan exists, the cashflow-neutral plan-projected series.
//
// The series covers weekday trading dates from the plan's start date (or the
// first session date without a plan) through the latest session or cashflow
// date, capped at the plan's trading-day count when set.
//
// Per date, in order:
//  1. Cashflows dated on or before the date and not yet applied are added to
//     the shared cumulative cash total. The same total feeds both series, so
//     a deposit or withdrawal shifts actual and projected values by exactly
//     the same amount on the same day (cashflow neutralization).
//  2. actual = startingBalance + cumulative realized P&L + cumulative cash.
//  3. projected = plan trajectory + cumulative cash. The trajectory compounds
//     by ±dailyTargetPct/100 per trading day (designated loss days fall at
//     the end of each repeating 5-day cycle, lossDaysPerWeek per cycle), or
//     interpolates linearly from starting to target balance when
//     dailyTargetPct is 0.
//
// Cashflows dated after the last qualifying trading day are still applied to
// both cumulative totals and surfaced as one additional as-of point, so the
// current balance is never understated without inventing a trading day.
// Symmetrically, sessions and cashflows dated before the first covered date
// fold into the opening balance rather than disappearing.
//
// The function is pure: identical inputs produce identical output and the
// inputs are never mutated.
func BuildEquityCurve(in EquityCurveInput) []model.EquityPoint {
	dates := tradingDates(in)
	if len(dates) == 0 {
		return []model.EquityPoint{}
	}

	var cumPnl, cumCash float64

	// Sessions predating the first covered date still shape the opening
	// balance, mirroring the cashflow catch-up inside the walk. This matters
	// when a plan is created or replaced after trading began: its start date
	// moves forward but realized history must not vanish.
	pnlByDate := make(map[time.Time]float64, len(in.Sessions))
	for _, session := range in.Sessions {
		date := truncateToDay(session.Date)
		if date.Before(dates[0]) {
			cumPnl += session.NetPnl
			continue
		}
		pnlByDate[date] += session.NetPnl
	}

	points := make([]model.EquityPoint, 0, len(dates)+1)

	cashflowIdx := 0

	trajectory := newPlanTrajectory(in.Plan, len(dates))

	for i, date := range dates {
		// Cashflow neutralization: apply before computing the day's values.
		for cashflowIdx < len(in.Cashflows) && !truncateToDay(in.Cashflows[cashflowIdx].Date).After(date) {
			cumCash += in.Cashflows[cashflowIdx].Amount
			cashflowIdx++
		}

		cumPnl += pnlByDate[date]

		point := model.EquityPoint{
			Date:   date,
			Actual: round(in.StartingBalance + cumPnl + cumCash),
		}

		if trajectory != nil {
			point.Projected = floatPtr(round(trajectory.value(i) + cumCash))
		}

		points = append(points, point)
	}

	// Trailing cashflows (e.g. a weekend deposit) still move both balances.
	if cashflowIdx < len(in.Cashflows) {
		var lastDate time.Time
		for ; cashflowIdx < len(in.Cashflows); cashflowIdx++ {
			cumCash += in.Cashflows[cashflowIdx].Amount
			lastDate = truncateToDay(in.Cashflows[cashflowIdx].Date)
		}

		point := model.EquityPoint{
			Date:   lastDate,
			Actual: round(in.StartingBalance + cumPnl + cumCash),
			AsOf:   true,
		}
		if trajectory != nil {
			point.Projected = floatPtr(round(trajectory.value(len(dates)-1) + cumCash))
		}
		points = append(points, point)
	}

	return points
}

// tradingDates lists the weekday dates the curve covers, capped at the plan's
// trading-day count when set.
func tradingDates(in EquityCurveInput) []time.Time {
	var start time.Time
	if in.Plan != nil {
		start = in.Plan.Start()
	} else if len(in.Sessions) > 0 {
		start = truncateToDay(in.Sessions[0].Date)
	} else {
		// No anchor date: nothing to build.
		return nil
	}

	end := start
	if len(in.Sessions) > 0 {
		last := truncateToDay(in.Sessions[len(in.Sessions)-1].Date)
		if last.After(end) {
			end = last
		}
	}
	for _, cashflow := range in.Cashflows {
		date := truncateToDay(cashflow.Date)
		if isWeekday(date) && date.After(end) {
			end = date
		}
	}

	maxDays := 0
	if in.Plan != nil {
		maxDays = in.Plan.TradingDays
	}

	dates := []time.Time{}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if !isWeekday(date) {
			continue
		}
		dates = append(dates, date)
		if maxDays > 0 && len(dates) == maxDays {
			break
		}
	}

	return dates
}

// planTrajectory precomputes the plan-projected core values (before cash) for
// each trading-day index.
type planTrajectory struct {
	values []float64
}

// newPlanTrajectory returns nil when there is no plan, which suppresses the
// projected series entirely.
func newPlanTrajectory(plan *model.GrowthPlan, days int) *planTrajectory {
	if plan == nil || days == 0 {
		return nil
	}

	values := make([]float64, days)

	if plan.DailyTargetPct > 0 {
		rate := plan.DailyTargetPct / 100
		previous := plan.StartingBalance
		for i := 0; i < days; i++ {
			if isPlannedLossDay(i, plan.LossDaysPerWeek) {
				previous *= 1 - rate
			} else {
				previous *= 1 + rate
			}
			values[i] = previous
		}
		return &planTrajectory{values: values}
	}

	// No compounding target: interpolate linearly from starting to target
	// balance across the known day count.
	total := plan.TradingDays
	if total <= 0 {
		total = days
	}
	span := plan.TargetBalance - plan.StartingBalance
	for i := 0; i < days; i++ {
		values[i] = plan.StartingBalance + span*float64(i+1)/float64(total)
	}
	return &planTrajectory{values: values}
}

func (t *planTrajectory) value(index int) float64 {
	if index < 0 {
		return 0
	}
	if index >= len(t.values) {
		index = len(t.values) - 1
	}
	return t.values[index]
}

// isPlannedLossDay reports whether the i-th trading day (0-based) is a
// designated loss day. Loss days occupy the tail of each repeating 5-day
// cycle: with lossDaysPerWeek=1 every 5th day compounds negatively.
func isPlannedLossDay(index, lossDaysPerWeek int) bool {
	if lossDaysPerWeek <= 0 {
		return false
	}
	if lossDaysPerWeek >= 5 {
		return true
	}
	return index%5 >= 5-lossDaysPerWeek
}
