package service

import (
	"math"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// KPIConfig carries the tunables KPI computations depend on. Passing the
// config explicitly keeps every KPI a pure function of its inputs.
type KPIConfig struct {
	TradingDaysPerYear int // Annualization factor for Sharpe/Sortino, typically 252
}

// DefaultKPIConfig returns the standard configuration.
func DefaultKPIConfig() KPIConfig {
	return KPIConfig{TradingDaysPerYear: 252}
}

// KPIInput is the immutable snapshot a KPI computes over. Cashflows let the
// return-based ratios strip funding events out of the equity series.
type KPIInput struct {
	Trades    []model.MatchedTrade
	Equity    []model.EquityPoint
	Cashflows []model.Cashflow
}

// KPIFunc computes one KPI value. It returns nil, never NaN or an error,
// when the KPI's defining population is empty.
type KPIFunc func(in KPIInput, cfg KPIConfig) *float64

// KPIDefinition describes one registered KPI.
type KPIDefinition struct {
	ID       string
	Name     string
	Unit     string
	DataType string
	Compute  KPIFunc
}

// ComputeKPIs evaluates every registered KPI over the given trades, equity
// curve, and cashflows. Each KPI is independent; callers subset the result
// by id.
func ComputeKPIs(trades []model.MatchedTrade, equity []model.EquityPoint, cashflows []model.Cashflow, cfg KPIConfig) []model.KPIResult {
	in := KPIInput{Trades: trades, Equity: equity, Cashflows: cashflows}

	results := make([]model.KPIResult, 0, len(kpiRegistry))
	for _, definition := range kpiRegistry {
		results = append(results, model.KPIResult{
			ID:       definition.ID,
			Name:     definition.Name,
			Unit:     definition.Unit,
			DataType: definition.DataType,
			Value:    definition.Compute(in, cfg),
		})
	}
	return results
}

// ComputeKPIValues evaluates the named KPIs and returns their values keyed by
// id. Unknown ids are skipped. Used by the period comparator, which only
// needs a small fixed subset.
func ComputeKPIValues(ids []string, trades []model.MatchedTrade, equity []model.EquityPoint, cashflows []model.Cashflow, cfg KPIConfig) map[string]*float64 {
	in := KPIInput{Trades: trades, Equity: equity, Cashflows: cashflows}

	values := make(map[string]*float64, len(ids))
	for _, id := range ids {
		definition, exists := kpiByID[id]
		if !exists {
			continue
		}
		values[id] = definition.Compute(in, cfg)
	}
	return values
}

// KPIName returns the display name for a KPI id, or the id itself when the
// KPI is not registered.
func KPIName(id string) string {
	if definition, exists := kpiByID[id]; exists {
		return definition.Name
	}
	return id
}

//
// STATISTICAL HELPERS
//
// Shared by the ratio KPIs. All treat short or degenerate inputs as
// undefined and let the caller map that to nil.
//

// dailyReturns derives simple day-over-day returns from the actual equity
// series, net of external cashflows: a deposit landing on a point is
// subtracted from that day's gain so funding events never read as trading
// performance. Points with a non-positive previous balance are skipped.
func dailyReturns(equity []model.EquityPoint, cashflows []model.Cashflow) []float64 {
	if len(equity) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		previous := equity[i-1].Actual
		if previous <= 0 {
			continue
		}
		cash := cashApplied(cashflows, equity[i-1].Date, equity[i].Date)
		returns = append(returns, (equity[i].Actual-previous-cash)/previous)
	}
	return returns
}

// cashApplied sums the cashflows the curve folded into the point dated end:
// those dated after start and on or before end, matching the catch-up rule
// in BuildEquityCurve.
func cashApplied(cashflows []model.Cashflow, start, end time.Time) float64 {
	var total float64
	for _, cashflow := range cashflows {
		date := truncateToDay(cashflow.Date)
		if date.After(start) && !date.After(end) {
			total += cashflow.Amount
		}
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// downsideDeviation measures dispersion of negative returns only, for the
// Sortino ratio. Positive returns contribute zero.
func downsideDeviation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		if v < 0 {
			sum += v * v
		}
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
