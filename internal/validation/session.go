package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/request"
)

// ValidLegRole contains the allowed trade leg role values.
var ValidLegRole = map[string]bool{
	"entry": true, "exit": true,
}

// ValidLegSide contains the allowed trade leg side values.
var ValidLegSide = map[string]bool{
	"long": true, "short": true,
}

// ValidInstrumentKind contains the allowed instrument kind values.
var ValidInstrumentKind = map[string]bool{
	"equity": true, "option": true, "future": true, "other": true,
}

// ValidateCreateSession validates a session creation request and its legs.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//
// The numeric P&L fields are optional (legacy imports resolve them from the
// payload), but any provided leg must carry a complete, valid fill line.
// A free-text timeOfDay is never rejected here: unparsable clocks degrade to
// untimed trades instead of failing the write.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateSession(req request.CreateSessionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if len(req.Notes) > 10000 {
		errors["notes"] = "notes must be 10000 characters or less"
	}

	for i, leg := range req.Legs {
		validateLeg(i, leg, errors)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateLeg(index int, leg request.CreateTradeLegRequest, errors map[string]string) {
	field := func(name string) string {
		return fmt.Sprintf("legs[%d].%s", index, name)
	}

	if !ValidLegRole[leg.Role] {
		errors[field("role")] = fmt.Sprintf("invalid role: %s", leg.Role)
	}

	if strings.TrimSpace(leg.Symbol) == "" {
		errors[field("symbol")] = "symbol is required"
	}

	if leg.InstrumentKind != "" && !ValidInstrumentKind[leg.InstrumentKind] {
		errors[field("instrumentKind")] = fmt.Sprintf("invalid instrumentKind: %s", leg.InstrumentKind)
	}

	if !ValidLegSide[leg.Side] {
		errors[field("side")] = fmt.Sprintf("invalid side: %s", leg.Side)
	}

	if leg.Price < 0 {
		errors[field("price")] = "price cannot be negative"
	}

	if leg.Quantity <= 0 {
		errors[field("quantity")] = "quantity must be positive"
	}

	if leg.ExpiryDate != nil {
		if _, err := time.Parse("2006-01-02", *leg.ExpiryDate); err != nil {
			errors[field("expiryDate")] = err.Error()
		}
	}

	if leg.DaysToExpiry != nil && *leg.DaysToExpiry < 0 {
		errors[field("daysToExpiry")] = "daysToExpiry cannot be negative"
	}
}
