package service

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// RoundingPrecision is the factor used to round monetary values and rates to
// two decimal places throughout the service layer.
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values and percentages in API responses.
//
// The rounding uses the standard "round half up" approach via math.Round.
//
// Parameters:
//   - value: The floating-point value to round
//
// Returns the value rounded to two decimal places (0.01 precision).
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(0.005)       // returns 0.01
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// toFloat coerces a loosely typed value into a float64.
// Accepts numbers and numeric strings; currency symbols, percent signs,
// thousands separators, and surrounding whitespace are stripped from strings.
//
// Returns (0, false) for nil, empty, or non-numeric input. Callers follow the
// defensive-default policy: an unresolvable value degrades to 0 rather than
// raising an error.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		s = strings.ReplaceAll(s, ",", "")
		// The symbol may sit inside the sign, e.g. "-$50.00".
		s = strings.ReplaceAll(s, "$", "")
		s = strings.TrimSuffix(s, "%")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// clockLayouts are the accepted time-of-day formats for trade leg timing,
// most common first.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3 PM",
}

// parseClockMinutes parses a free-text time-of-day into minutes since
// midnight. Returns (0, false) when the text matches none of the accepted
// layouts; such legs are excluded from hold-time statistics but still count
// toward trade totals.
func parseClockMinutes(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	normalized := strings.ToUpper(trimmed)

	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err == nil {
			return parsed.Hour()*60 + parsed.Minute(), true
		}
	}

	return 0, false
}

// truncateToDay truncates a timestamp to UTC midnight. All engine date
// arithmetic happens on day granularity in UTC.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isWeekday reports whether the date falls on Monday through Friday.
func isWeekday(t time.Time) bool {
	weekday := t.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}

// floatPtr returns a pointer to the given value. Used for nullable KPI and
// projection outputs.
func floatPtr(value float64) *float64 {
	return &value
}
