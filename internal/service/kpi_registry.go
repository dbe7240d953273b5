package service

import (
	"math"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// KPI identifiers.
const (
	KPINetPnl             = "net_pnl"
	KPIWinRate            = "win_rate"
	KPIAvgWin             = "avg_win"
	KPIAvgLoss            = "avg_loss"
	KPIProfitFactor       = "profit_factor"
	KPIExpectancy         = "expectancy"
	KPIPayoffRatio        = "payoff_ratio"
	KPIProfitPerTrade     = "profit_per_trade"
	KPIMaxDrawdownPct     = "max_drawdown_pct"
	KPIMaxConsecLosses    = "max_consecutive_losses"
	KPIAvgTradeDuration   = "avg_trade_duration"
	KPIBestTrade          = "best_trade"
	KPIWorstTrade         = "worst_trade"
	KPISharpeRatio        = "sharpe_ratio"
	KPISortinoRatio       = "sortino_ratio"
)

// kpiRegistry is the ordered set of registered KPIs. Every compute function
// is pure over (trades, equity, config) and returns nil when its defining
// population is empty: no trades means nil, zero losing trades means a nil
// profit factor, and so on. None of them return NaN, Inf, or panic.
var kpiRegistry = []KPIDefinition{
	{
		ID: KPINetPnl, Name: "Net P&L", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			if len(in.Trades) == 0 {
				return nil
			}
			var total float64
			for _, trade := range in.Trades {
				total += trade.RealizedPnl
			}
			return floatPtr(round(total))
		},
	},
	{
		ID: KPIWinRate, Name: "Win Rate", Unit: "%", DataType: model.KPITypePercent,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			wins, losses := countTradeOutcomes(in.Trades)
			if wins+losses == 0 {
				return nil
			}
			return floatPtr(round(float64(wins) / float64(wins+losses) * 100))
		},
	},
	{
		ID: KPIAvgWin, Name: "Average Win", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			grossWins, _, wins, _ := grossTradeTotals(in.Trades)
			if wins == 0 {
				return nil
			}
			return floatPtr(round(grossWins / float64(wins)))
		},
	},
	{
		ID: KPIAvgLoss, Name: "Average Loss", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			_, grossLosses, _, losses := grossTradeTotals(in.Trades)
			if losses == 0 {
				return nil
			}
			return floatPtr(round(grossLosses / float64(losses)))
		},
	},
	{
		ID: KPIProfitFactor, Name: "Profit Factor", Unit: "", DataType: model.KPITypeRatio,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			grossWins, grossLosses, _, losses := grossTradeTotals(in.Trades)
			// Nil, not +Inf, when the population holds no losing trades.
			if losses == 0 {
				return nil
			}
			return floatPtr(round(grossWins / grossLosses))
		},
	},
	{
		ID: KPIExpectancy, Name: "Expectancy", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			grossWins, grossLosses, wins, losses := grossTradeTotals(in.Trades)
			decisive := wins + losses
			if decisive == 0 {
				return nil
			}
			pWin := float64(wins) / float64(decisive)
			pLoss := float64(losses) / float64(decisive)
			avgWin := grossWins / nonZero(wins)
			avgLoss := grossLosses / nonZero(losses)
			return floatPtr(round(pWin*avgWin - pLoss*avgLoss))
		},
	},
	{
		ID: KPIPayoffRatio, Name: "Payoff Ratio", Unit: "", DataType: model.KPITypeRatio,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			grossWins, grossLosses, wins, losses := grossTradeTotals(in.Trades)
			if wins == 0 || losses == 0 {
				return nil
			}
			avgWin := grossWins / float64(wins)
			avgLoss := grossLosses / float64(losses)
			return floatPtr(round(avgWin / avgLoss))
		},
	},
	{
		ID: KPIProfitPerTrade, Name: "Profit per Trade", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			if len(in.Trades) == 0 {
				return nil
			}
			var total float64
			for _, trade := range in.Trades {
				total += trade.RealizedPnl
			}
			return floatPtr(round(total / float64(len(in.Trades))))
		},
	},
	{
		ID: KPIMaxDrawdownPct, Name: "Max Drawdown", Unit: "%", DataType: model.KPITypePercent,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			if len(in.Equity) == 0 {
				return nil
			}
			_, pct := maxDrawdownFromEquity(in.Equity)
			return floatPtr(pct)
		},
	},
	{
		ID: KPIMaxConsecLosses, Name: "Max Consecutive Losses", Unit: "", DataType: model.KPITypeCount,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			if len(in.Trades) == 0 {
				return nil
			}
			var current, longest int
			for _, trade := range in.Trades {
				if trade.RealizedPnl < 0 {
					current++
					if current > longest {
						longest = current
					}
				} else {
					current = 0
				}
			}
			return floatPtr(float64(longest))
		},
	},
	{
		ID: KPIAvgTradeDuration, Name: "Average Trade Duration", Unit: "min", DataType: model.KPITypeMinutes,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			var total, count float64
			for _, trade := range in.Trades {
				if trade.HoldMinutes != nil {
					total += float64(*trade.HoldMinutes)
					count++
				}
			}
			// Nil when zero trades carry resolvable hold time.
			if count == 0 {
				return nil
			}
			return floatPtr(round(total / count))
		},
	},
	{
		ID: KPIBestTrade, Name: "Best Trade", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			if len(in.Trades) == 0 {
				return nil
			}
			best := in.Trades[0].RealizedPnl
			for _, trade := range in.Trades[1:] {
				if trade.RealizedPnl > best {
					best = trade.RealizedPnl
				}
			}
			return floatPtr(best)
		},
	},
	{
		ID: KPIWorstTrade, Name: "Worst Trade", Unit: "$", DataType: model.KPITypeCurrency,
		Compute: func(in KPIInput, _ KPIConfig) *float64 {
			if len(in.Trades) == 0 {
				return nil
			}
			worst := in.Trades[0].RealizedPnl
			for _, trade := range in.Trades[1:] {
				if trade.RealizedPnl < worst {
					worst = trade.RealizedPnl
				}
			}
			return floatPtr(worst)
		},
	},
	{
		ID: KPISharpeRatio, Name: "Sharpe Ratio", Unit: "", DataType: model.KPITypeRatio,
		Compute: func(in KPIInput, cfg KPIConfig) *float64 {
			returns := dailyReturns(in.Equity, in.Cashflows)
			if len(returns) < 2 {
				return nil
			}
			m := mean(returns)
			sd := stddev(returns, m)
			if sd == 0 {
				return nil
			}
			annualized := m / sd * math.Sqrt(float64(cfg.TradingDaysPerYear))
			return floatPtr(round(annualized))
		},
	},
	{
		ID: KPISortinoRatio, Name: "Sortino Ratio", Unit: "", DataType: model.KPITypeRatio,
		Compute: func(in KPIInput, cfg KPIConfig) *float64 {
			returns := dailyReturns(in.Equity, in.Cashflows)
			if len(returns) < 2 {
				return nil
			}
			downside := downsideDeviation(returns)
			if downside == 0 {
				return nil
			}
			annualized := mean(returns) / downside * math.Sqrt(float64(cfg.TradingDaysPerYear))
			return floatPtr(round(annualized))
		},
	},
}

// kpiByID indexes the registry for subset computation.
var kpiByID = func() map[string]KPIDefinition {
	index := make(map[string]KPIDefinition, len(kpiRegistry))
	for _, definition := range kpiRegistry {
		index[definition.ID] = definition
	}
	return index
}()

// countTradeOutcomes tallies winning and losing trades; breakeven trades
// (realized P&L exactly 0) count toward neither, matching the session-level
// win-rate policy.
func countTradeOutcomes(trades []model.MatchedTrade) (wins, losses int) {
	for _, trade := range trades {
		if trade.RealizedPnl > 0 {
			wins++
		} else if trade.RealizedPnl < 0 {
			losses++
		}
	}
	return wins, losses
}

// grossTradeTotals sums winning and losing realized P&L. Losses are returned
// as a positive magnitude.
func grossTradeTotals(trades []model.MatchedTrade) (grossWins, grossLosses float64, wins, losses int) {
	for _, trade := range trades {
		if trade.RealizedPnl > 0 {
			grossWins += trade.RealizedPnl
			wins++
		} else if trade.RealizedPnl < 0 {
			grossLosses += -trade.RealizedPnl
			losses++
		}
	}
	return grossWins, grossLosses, wins, losses
}
