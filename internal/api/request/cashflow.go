package request

// CreateCashflowRequest is the payload for recording a deposit or withdrawal.
// Amount is signed: deposits positive, withdrawals negative.
type CreateCashflowRequest struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}
