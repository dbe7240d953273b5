package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

func trade(pnl float64, holdMinutes *int) model.MatchedTrade {
	return model.MatchedTrade{
		SessionDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Symbol:      "AAPL",
		Side:        model.SideLong,
		RealizedPnl: pnl,
		HoldMinutes: holdMinutes,
	}
}

func intPtr(v int) *int { return &v }

func kpiValue(t *testing.T, results []model.KPIResult, id string) *float64 {
	t.Helper()
	for _, result := range results {
		if result.ID == id {
			return result.Value
		}
	}
	t.Fatalf("KPI %q not found in results", id)
	return nil
}

// TestComputeKPIs_EmptyInputs tests the nil-value contract.
//
// WHY: Dashboards render every registered KPI; a KPI whose defining
// population is empty must be a typed null, never NaN, Inf, or a panic.
func TestComputeKPIs_EmptyInputs(t *testing.T) {
	results := service.ComputeKPIs(nil, nil, nil, service.DefaultKPIConfig())

	if len(results) != 15 {
		t.Fatalf("Expected 15 registered KPIs, got %d", len(results))
	}
	for _, result := range results {
		if result.Value != nil {
			t.Errorf("KPI %q: expected nil value on empty input, got %v", result.ID, *result.Value)
		}
		if result.Name == "" || result.DataType == "" {
			t.Errorf("KPI %q: missing display metadata: %+v", result.ID, result)
		}
	}
}

// TestComputeKPIs_TradeKPIs tests the per-trade family over a mixed book.
//
// WHY: Each ratio has its own undefined-population rule (no losses, no wins,
// no timed trades) and they must not bleed into each other.
func TestComputeKPIs_TradeKPIs(t *testing.T) {
	cfg := service.DefaultKPIConfig()

	trades := []model.MatchedTrade{
		trade(120, intPtr(30)),
		trade(80, nil),
		trade(-40, intPtr(90)),
		trade(-60, nil),
		trade(0, nil),
	}

	results := service.ComputeKPIs(trades, nil, nil, cfg)

	assert := func(id string, want float64) {
		t.Helper()
		value := kpiValue(t, results, id)
		if value == nil {
			t.Errorf("KPI %q: expected %v, got nil", id, want)
			return
		}
		if *value != want {
			t.Errorf("KPI %q: expected %v, got %v", id, want, *value)
		}
	}

	assert(service.KPINetPnl, 100)
	assert(service.KPIWinRate, 50) // Breakeven trade excluded from the denominator
	assert(service.KPIAvgWin, 100)
	assert(service.KPIAvgLoss, 50)
	assert(service.KPIProfitFactor, 2)
	assert(service.KPIPayoffRatio, 2)
	assert(service.KPIProfitPerTrade, 20)
	assert(service.KPIExpectancy, 25) // 0.5*100 - 0.5*50
	assert(service.KPIMaxConsecLosses, 2)
	assert(service.KPIAvgTradeDuration, 60) // Only the two timed trades count
	assert(service.KPIBestTrade, 120)
	assert(service.KPIWorstTrade, -60)

	t.Run("profit factor nil without losses", func(t *testing.T) {
		winners := []model.MatchedTrade{trade(100, nil), trade(50, nil)}
		results := service.ComputeKPIs(winners, nil, nil, cfg)

		if value := kpiValue(t, results, service.KPIProfitFactor); value != nil {
			t.Errorf("Expected nil profit factor, got %v", *value)
		}
		if value := kpiValue(t, results, service.KPIPayoffRatio); value != nil {
			t.Errorf("Expected nil payoff ratio, got %v", *value)
		}
		if value := kpiValue(t, results, service.KPIAvgLoss); value != nil {
			t.Errorf("Expected nil average loss, got %v", *value)
		}
	})

	t.Run("duration nil without timed trades", func(t *testing.T) {
		untimed := []model.MatchedTrade{trade(100, nil)}
		results := service.ComputeKPIs(untimed, nil, nil, cfg)

		if value := kpiValue(t, results, service.KPIAvgTradeDuration); value != nil {
			t.Errorf("Expected nil average duration, got %v", *value)
		}
	})
}

// TestComputeKPIs_EquityKPIs tests the equity-derived family.
//
// WHY: Sharpe and Sortino annualize by the configured trading-day count, and
// both go nil when the return series is too short or dispersion-free.
func TestComputeKPIs_EquityKPIs(t *testing.T) {
	mon := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	equity := []model.EquityPoint{
		{Date: mon, Actual: 10000},
		{Date: mon.AddDate(0, 0, 1), Actual: 10100},
		{Date: mon.AddDate(0, 0, 2), Actual: 10050},
	}

	t.Run("sharpe and sortino annualize by config", func(t *testing.T) {
		results := service.ComputeKPIs(nil, equity, nil, service.KPIConfig{TradingDaysPerYear: 252})

		sharpe := kpiValue(t, results, service.KPISharpeRatio)
		if sharpe == nil {
			t.Fatal("Expected a Sharpe value")
		}
		// Returns +1.0% then -0.495%; mean/stddev * sqrt(252).
		if math.Abs(*sharpe-3.79) > 0.01 {
			t.Errorf("Expected Sharpe near 3.79, got %v", *sharpe)
		}

		sortino := kpiValue(t, results, service.KPISortinoRatio)
		if sortino == nil {
			t.Fatal("Expected a Sortino value")
		}
		if math.Abs(*sortino-8.10) > 0.01 {
			t.Errorf("Expected Sortino near 8.10, got %v", *sortino)
		}

		// A different annualization factor scales the ratio.
		weekly := service.ComputeKPIs(nil, equity, nil, service.KPIConfig{TradingDaysPerYear: 52})
		weeklySharpe := kpiValue(t, weekly, service.KPISharpeRatio)
		if weeklySharpe == nil || *weeklySharpe >= *sharpe {
			t.Errorf("Expected smaller Sharpe with 52-day annualization, got %v", weeklySharpe)
		}
	})

	t.Run("deposits do not inflate the ratios", func(t *testing.T) {
		// Wednesday holds a 500 deposit on top of 50 of trading profit. The
		// deposit is a funding event, not performance: Sharpe must match a
		// series that earned the same 50 without the deposit.
		funded := []model.EquityPoint{
			{Date: mon, Actual: 10000},
			{Date: mon.AddDate(0, 0, 1), Actual: 10100},
			{Date: mon.AddDate(0, 0, 2), Actual: 10650},
		}
		deposit := []model.Cashflow{{Date: mon.AddDate(0, 0, 2), Amount: 500}}

		unfunded := []model.EquityPoint{
			{Date: mon, Actual: 10000},
			{Date: mon.AddDate(0, 0, 1), Actual: 10100},
			{Date: mon.AddDate(0, 0, 2), Actual: 10150},
		}

		withDeposit := service.ComputeKPIs(nil, funded, deposit, service.DefaultKPIConfig())
		withoutDeposit := service.ComputeKPIs(nil, unfunded, nil, service.DefaultKPIConfig())

		got := kpiValue(t, withDeposit, service.KPISharpeRatio)
		want := kpiValue(t, withoutDeposit, service.KPISharpeRatio)
		if got == nil || want == nil {
			t.Fatal("Expected Sharpe values for both series")
		}
		if *got != *want {
			t.Errorf("Expected deposit-neutral Sharpe %v, got %v", *want, *got)
		}
	})

	t.Run("max drawdown percent from the curve", func(t *testing.T) {
		results := service.ComputeKPIs(nil, equity, nil, service.DefaultKPIConfig())

		dd := kpiValue(t, results, service.KPIMaxDrawdownPct)
		if dd == nil {
			t.Fatal("Expected a drawdown value")
		}
		// 50 off a 10100 peak.
		if *dd != 0.5 {
			t.Errorf("Expected drawdown 0.5%%, got %v", *dd)
		}
	})

	t.Run("nil on flat or short series", func(t *testing.T) {
		flat := []model.EquityPoint{
			{Date: mon, Actual: 10000},
			{Date: mon.AddDate(0, 0, 1), Actual: 10000},
			{Date: mon.AddDate(0, 0, 2), Actual: 10000},
		}
		results := service.ComputeKPIs(nil, flat, nil, service.DefaultKPIConfig())

		if value := kpiValue(t, results, service.KPISharpeRatio); value != nil {
			t.Errorf("Expected nil Sharpe on zero-dispersion series, got %v", *value)
		}

		short := flat[:1]
		results = service.ComputeKPIs(nil, short, nil, service.DefaultKPIConfig())
		if value := kpiValue(t, results, service.KPISortinoRatio); value != nil {
			t.Errorf("Expected nil Sortino on a single point, got %v", *value)
		}
	})

	t.Run("sortino nil without negative returns", func(t *testing.T) {
		rising := []model.EquityPoint{
			{Date: mon, Actual: 10000},
			{Date: mon.AddDate(0, 0, 1), Actual: 10100},
			{Date: mon.AddDate(0, 0, 2), Actual: 10300},
		}
		results := service.ComputeKPIs(nil, rising, nil, service.DefaultKPIConfig())

		if value := kpiValue(t, results, service.KPISortinoRatio); value != nil {
			t.Errorf("Expected nil Sortino without downside returns, got %v", *value)
		}
	})
}

// TestComputeKPIValues tests subset computation for the period comparator.
func TestComputeKPIValues(t *testing.T) {
	trades := []model.MatchedTrade{trade(100, nil), trade(-50, nil)}

	values := service.ComputeKPIValues(
		[]string{service.KPIProfitFactor, "no_such_kpi"},
		trades, nil, nil, service.DefaultKPIConfig(),
	)

	if len(values) != 1 {
		t.Fatalf("Expected 1 value, unknown ids skipped; got %d", len(values))
	}
	if pf := values[service.KPIProfitFactor]; pf == nil || *pf != 2 {
		t.Errorf("Expected profit factor 2, got %v", pf)
	}
}

// TestKPIName tests display-name lookup.
func TestKPIName(t *testing.T) {
	if name := service.KPIName(service.KPISharpeRatio); name != "Sharpe Ratio" {
		t.Errorf("Expected %q, got %q", "Sharpe Ratio", name)
	}
	if name := service.KPIName("mystery"); name != "mystery" {
		t.Errorf("Expected unknown ids to echo back, got %q", name)
	}
}
