package model

// PerformanceStats aggregates win/loss statistics, drawdown, streaks, and
// breakdowns over a population of sessions and the matching equity curve.
//
// Win-rate policy: sessions are classified strictly by the sign of net P&L
// (0 is breakeven) and breakeven sessions are excluded from the win-rate
// denominator. ProfitFactor is nil when the population holds no losing
// sessions, never +Inf.
type PerformanceStats struct {
	Sessions          int      `json:"sessions"`
	Wins              int      `json:"wins"`
	Losses            int      `json:"losses"`
	Breakevens        int      `json:"breakevens"`
	WinRate           float64  `json:"winRate"`        // Percent, wins / (wins + losses) * 100
	AvgWin            float64  `json:"avgWin"`         // Mean net P&L of winning sessions
	AvgLoss           float64  `json:"avgLoss"`        // Mean |net P&L| of losing sessions
	ProfitFactor      *float64 `json:"profitFactor"`   // Gross wins / gross |losses|, nil without losses
	Expectancy        float64  `json:"expectancy"`     // p(win)*avgWin - p(loss)*avgLoss
	TotalNetPnl       float64  `json:"totalNetPnl"`
	AverageNetPnl     float64  `json:"averageNetPnl"`
	MaxDrawdown       float64  `json:"maxDrawdown"`    // Largest peak-to-trough decline, >= 0
	MaxDrawdownPct    float64  `json:"maxDrawdownPct"` // Drawdown as percent of the peak
	LongestWinStreak  int      `json:"longestWinStreak"`
	LongestLossStreak int      `json:"longestLossStreak"`

	ByWeekday    []BreakdownStats `json:"byWeekday"`    // Monday..Sunday, only days with sessions
	ByInstrument []BreakdownStats `json:"byInstrument"` // Grouped by instrument tag
}

// BreakdownStats carries per-group statistics for the weekday and instrument
// breakdowns. The same win-rate policy as PerformanceStats applies.
type BreakdownStats struct {
	Label         string  `json:"label"`
	Sessions      int     `json:"sessions"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"winRate"`
	NetPnl        float64 `json:"netPnl"`
	AverageNetPnl float64 `json:"averageNetPnl"`
}
