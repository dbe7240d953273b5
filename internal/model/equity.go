package model

import "time"

// EquityPoint represents the account balance on one qualifying trading day.
// Projected is nil when the account has no growth plan. AsOf marks the single
// trailing point emitted when cashflows land after the last trading day, so
// the current balance is never understated.
type EquityPoint struct {
	Date      time.Time `json:"date"`
	Actual    float64   `json:"actual"`
	Projected *float64  `json:"projected,omitempty"`
	AsOf      bool      `json:"asOf,omitempty"`
}

// EquityPointMaterialized represents a pre-calculated equity snapshot for a
// specific account and date, stored in the equity_materialized table.
type EquityPointMaterialized struct {
	ID             string    // Primary key
	AccountID      string    // Account identifier
	Date           time.Time // Date of this snapshot
	ActualValue    float64   // Actual balance on this date
	ProjectedValue *float64  // Plan-projected balance, nil without a plan
	AsOf           bool      // Trailing as-of point flag
	CalculatedAt   time.Time // When this record was calculated
}
