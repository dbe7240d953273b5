package model

import "time"

// Comparison window identifiers.
const (
	WindowLast7Days   = "last_7_days"
	WindowLast30Days  = "last_30_days"
	WindowMonthToDate = "month_to_date"
)

// PeriodStats carries the per-window statistics used by period comparisons.
type PeriodStats struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Sessions      int       `json:"sessions"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	WinRate       float64   `json:"winRate"`
	NetPnl        float64   `json:"netPnl"`
	AverageNetPnl float64   `json:"averageNetPnl"`
}

// PeriodDelta holds current-minus-previous differences for a comparison window.
type PeriodDelta struct {
	Sessions      int     `json:"sessions"`
	WinRate       float64 `json:"winRate"`
	NetPnl        float64 `json:"netPnl"`
	AverageNetPnl float64 `json:"averageNetPnl"`
}

// KPIDelta is a single KPI-level difference between the current and previous
// window, used to surface the most significant shifts.
type KPIDelta struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Current  *float64 `json:"current"`
	Previous *float64 `json:"previous"`
	Delta    float64  `json:"delta"`
}

// PeriodComparison pairs the statistics of a rolling or anchored window with
// those of the equivalent prior window and their deltas.
type PeriodComparison struct {
	Window       string      `json:"window"` // Window identifier, e.g. last_7_days
	Label        string      `json:"label"`  // Human-readable window name
	Current      PeriodStats `json:"current"`
	Previous     PeriodStats `json:"previous"`
	Delta        PeriodDelta `json:"delta"`
	TopKPIDeltas []KPIDelta  `json:"topKpiDeltas"` // At most three, ranked by |delta|
}
