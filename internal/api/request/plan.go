package request

// SavePlanRequest is the payload for creating or replacing an account's
// growth plan.
type SavePlanRequest struct {
	StartingBalance float64 `json:"startingBalance"`
	TargetBalance   float64 `json:"targetBalance"`
	DailyTargetPct  float64 `json:"dailyTargetPct"`
	LossDaysPerWeek int     `json:"lossDaysPerWeek"`
	TradingDays     int     `json:"tradingDays"`
}
