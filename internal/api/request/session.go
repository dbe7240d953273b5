package request

// CreateTradeLegRequest is one entry or exit fill line within a session
// creation payload.
type CreateTradeLegRequest struct {
	Role           string   `json:"role"`
	Symbol         string   `json:"symbol"`
	InstrumentKind string   `json:"instrumentKind"`
	Side           string   `json:"side"`
	Price          float64  `json:"price"`
	Quantity       float64  `json:"quantity"`
	TimeOfDay      string   `json:"timeOfDay,omitempty"`
	DaysToExpiry   *int     `json:"daysToExpiry,omitempty"`
	ExpiryDate     *string  `json:"expiryDate,omitempty"`
}

// CreateSessionRequest is the payload for creating a journal session with its
// trade legs. The numeric P&L fields are optional; rows imported from legacy
// journals may carry their figures in Payload instead.
type CreateSessionRequest struct {
	Date          string                  `json:"date"`
	NetPnl        *float64                `json:"netPnl,omitempty"`
	GrossPnl      *float64                `json:"grossPnl,omitempty"`
	Fees          *float64                `json:"fees,omitempty"`
	Instrument    string                  `json:"instrument,omitempty"`
	RespectedPlan bool                    `json:"respectedPlan"`
	Notes         string                  `json:"notes,omitempty"`
	Payload       map[string]any          `json:"payload,omitempty"`
	Legs          []CreateTradeLegRequest `json:"legs,omitempty"`
}
