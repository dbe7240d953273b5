package model

import "time"

// GrowthPlan defines the target trajectory an account's projected balance
// series is measured against. A plan is optional; without one no projected
// series is produced.
type GrowthPlan struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"accountId"`
	StartingBalance float64   `json:"startingBalance"`
	TargetBalance   float64   `json:"targetBalance"`
	DailyTargetPct  float64   `json:"dailyTargetPct"`  // Compounding daily growth target; 0 means linear interpolation
	LossDaysPerWeek int       `json:"lossDaysPerWeek"` // Designated loss days within a repeating 5-day cycle
	TradingDays     int       `json:"tradingDays"`     // Cap on the number of projected trading days; 0 means uncapped
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Start returns the plan's effective start date: the later of creation and
// last update, truncated to UTC midnight.
func (p GrowthPlan) Start() time.Time {
	start := p.CreatedAt
	if p.UpdatedAt.After(start) {
		start = p.UpdatedAt
	}
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}
