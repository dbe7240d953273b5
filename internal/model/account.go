package model

import "time"

// Account represents a trading account from the database.
// Sessions, trade legs, cashflows, and the growth plan all belong to an account.
type Account struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	StartingBalance float64   `json:"startingBalance"` // Balance before the first recorded session
	IsArchived      bool      `json:"isArchived"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// AccountFilter for querying accounts
type AccountFilter struct {
	IncludeArchived bool
}
