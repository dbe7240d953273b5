package request

// CreateAccountRequest is the payload for creating a trading account.
type CreateAccountRequest struct {
	Name            string  `json:"name"`
	StartingBalance float64 `json:"startingBalance"`
}
