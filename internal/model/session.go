package model

import "time"

// Session represents one calendar trading day's journal record for an account.
// The explicit numeric columns may be absent on rows imported from older
// journal versions; in that case the figures live somewhere in Payload and
// are resolved by the session normalizer.
type Session struct {
	ID            string         `json:"id"`
	AccountID     string         `json:"accountId"`
	Date          time.Time      `json:"date"`
	NetPnl        *float64       `json:"netPnl,omitempty"`   // Explicit net P&L column, nil on legacy rows
	GrossPnl      *float64       `json:"grossPnl,omitempty"` // Explicit gross P&L column, nil on legacy rows
	Fees          *float64       `json:"fees,omitempty"`     // Explicit fees column, nil on legacy rows
	Instrument    string         `json:"instrument"`         // Dominant instrument tag for the day
	RespectedPlan bool           `json:"respectedPlan"`      // Whether the trader followed their plan
	Notes         string         `json:"notes"`
	Payload       map[string]any `json:"-"` // Raw legacy record, source for the normalization cascade
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
}

// NormalizedSession is the canonical per-day figure set resolved from a Session.
// All numeric fields are defined (malformed or missing inputs degrade to 0).
type NormalizedSession struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"accountId"`
	Date          time.Time `json:"date"`
	NetPnl        float64   `json:"netPnl"`
	GrossPnl      float64   `json:"grossPnl"`
	Fees          float64   `json:"fees"`
	Instrument    string    `json:"instrument"`
	RespectedPlan bool      `json:"respectedPlan"`
}
