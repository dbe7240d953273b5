package model

import "time"

// MatchedTrade represents a closed round-trip position derived by netting a
// symbol's entry legs against its exit legs within one session. Matching uses
// quantity-weighted average prices per role, not FIFO/LIFO lot accounting.
//
// Timing fields are nil when no leg in the group carries a parsable
// time-of-day; such trades still count toward every non-timing statistic.
type MatchedTrade struct {
	SessionDate    time.Time `json:"sessionDate"`
	Symbol         string    `json:"symbol"`
	InstrumentKind string    `json:"instrumentKind"`
	Side           string    `json:"side"`
	AvgEntryPrice  float64   `json:"avgEntryPrice"`  // Quantity-weighted average entry price
	AvgExitPrice   float64   `json:"avgExitPrice"`   // Quantity-weighted average exit price
	ClosedQuantity float64   `json:"closedQuantity"` // min(total entry qty, total exit qty)
	RealizedPnl    float64   `json:"realizedPnl"`
	EntryMinutes   *int      `json:"entryMinutes,omitempty"` // Earliest parsable entry clock, minutes since midnight
	ExitMinutes    *int      `json:"exitMinutes,omitempty"`  // Latest parsable exit clock, minutes since midnight
	HoldMinutes    *int      `json:"holdMinutes,omitempty"`  // ExitMinutes - EntryMinutes
}

// MatchResult bundles the matched trades for a session with counters that
// surface how many trades did (and did not) carry resolvable timing data.
type MatchResult struct {
	Trades       []MatchedTrade `json:"trades"`
	TimedCount   int            `json:"timedCount"`   // Trades with resolvable hold time
	UntimedCount int            `json:"untimedCount"` // Trades without resolvable hold time
}
