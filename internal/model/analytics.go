package model

// AnalyticsSummary is the full analytics payload consumed by dashboard
// widgets and the AI-coach context builder. Everything in it is a plain
// serializable structure; the engine recomputes it from the current snapshot
// of sessions, trade legs, cashflows, and the growth plan on every request.
type AnalyticsSummary struct {
	AccountID         string             `json:"accountId"`
	MatchedTrades     []MatchedTrade     `json:"matchedTrades"`
	TimedTrades       int                `json:"timedTrades"`
	UntimedTrades     int                `json:"untimedTrades"` // Trades without resolvable time-of-day data
	EquityPoints      []EquityPoint      `json:"equityPoints"`
	Stats             PerformanceStats   `json:"stats"`
	PeriodComparisons []PeriodComparison `json:"periodComparisons"`
	KPIResults        []KPIResult        `json:"kpiResults"`
}
