package model

import "time"

// Trade leg roles.
const (
	LegRoleEntry = "entry"
	LegRoleExit  = "exit"
)

// Trade leg sides.
const (
	SideLong  = "long"
	SideShort = "short"
)

// Instrument kinds for trade legs.
const (
	InstrumentEquity = "equity"
	InstrumentOption = "option"
	InstrumentFuture = "future"
	InstrumentOther  = "other"
)

// TradeLeg represents a single entry or exit fill line within a session.
type TradeLeg struct {
	ID             string     `json:"id"`
	SessionID      string     `json:"sessionId"`
	Role           string     `json:"role"`           // entry or exit
	Symbol         string     `json:"symbol"`
	InstrumentKind string     `json:"instrumentKind"` // equity, option, future, other
	Side           string     `json:"side"`           // long or short
	Price          float64    `json:"price"`
	Quantity       float64    `json:"quantity"`
	TimeOfDay      string     `json:"timeOfDay"`      // Free-text clock, e.g. "9:45 AM"; may be unparsable
	DaysToExpiry   *int       `json:"daysToExpiry,omitempty"` // Options only
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`   // Options only
	CreatedAt      time.Time  `json:"createdAt,omitempty"`
}
