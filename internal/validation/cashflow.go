package validation

import (
	"strings"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/request"
)

// ValidateCreateCashflow validates a cashflow creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - amount: Must be non-zero (positive deposit or negative withdrawal)
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateCashflow(req request.CreateCashflowRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.Amount == 0 {
		errors["amount"] = "amount must be non-zero"
	}

	if len(req.Note) > 500 {
		errors["note"] = "note must be 500 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
