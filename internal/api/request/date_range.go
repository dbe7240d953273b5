package request

import (
	"fmt"
	"time"
)

// ParseDateRange extracts an inclusive date range from query parameters.
// Both parameters are optional: a missing start means "from the beginning"
// (the Unix epoch) and a missing end means "through today".
//
// Dates are accepted as YYYY-MM-DD; RFC3339 datetimes are tolerated so
// clients can pass timestamps without reformatting.
//
// Returns an error if a parameter fails to parse or the start is after
// the end.
func ParseDateRange(startParam, endParam string) (time.Time, time.Time, error) {
	var startDate, endDate time.Time
	var err error

	if startParam == "" {
		startDate = time.Unix(0, 0).UTC()
	} else {
		startDate, err = parseDateParam(startParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
		}
	}

	if endParam == "" {
		endDate = time.Now().UTC()
	} else {
		endDate, err = parseDateParam(endParam)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
		}
	}

	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date %s is after end_date %s",
			startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}

	return startDate, endDate, nil
}

func parseDateParam(param string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", param)
	if err != nil {
		date, err = time.Parse(time.RFC3339, param)
	}
	return date, err
}
