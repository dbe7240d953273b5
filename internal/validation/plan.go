package validation

import (
	"github.com/tradescope/Trading-Journal-Backend/internal/api/request"
)

// ValidateSavePlan validates a growth plan save request.
//
// Constraints:
//   - startingBalance: Must be positive (the projected series compounds from it)
//   - targetBalance: Must be positive, and above startingBalance for linear plans
//   - dailyTargetPct: Must be non-negative; 0 selects linear interpolation
//   - lossDaysPerWeek: Must fit within the 5-day trading cycle (0-4)
//   - tradingDays: Must be non-negative; 0 means uncapped
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateSavePlan(req request.SavePlanRequest) error {
	errors := make(map[string]string)

	if req.StartingBalance <= 0 {
		errors["startingBalance"] = "startingBalance must be positive"
	}

	if req.TargetBalance <= 0 {
		errors["targetBalance"] = "targetBalance must be positive"
	} else if req.DailyTargetPct == 0 && req.TargetBalance <= req.StartingBalance {
		errors["targetBalance"] = "targetBalance must exceed startingBalance for a linear plan"
	}

	if req.DailyTargetPct < 0 {
		errors["dailyTargetPct"] = "dailyTargetPct cannot be negative"
	}

	if req.LossDaysPerWeek < 0 || req.LossDaysPerWeek > 4 {
		errors["lossDaysPerWeek"] = "lossDaysPerWeek must be between 0 and 4"
	}

	if req.TradingDays < 0 {
		errors["tradingDays"] = "tradingDays cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
