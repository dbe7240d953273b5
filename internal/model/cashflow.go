package model

import "time"

// Cashflow represents an external capital movement on an account.
// Amount is signed: deposits are positive, withdrawals negative.
// Cashflows are external to trading results and must shift the actual and
// projected balance series identically.
type Cashflow struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Date      time.Time `json:"date"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
