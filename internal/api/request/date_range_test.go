package request

import (
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	t.Run("default values when no parameters provided", func(t *testing.T) {
		start, end, err := ParseDateRange("", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if !start.Equal(time.Unix(0, 0).UTC()) {
			t.Errorf("Expected epoch start, got %v", start)
		}

		if time.Since(end) > time.Minute {
			t.Errorf("Expected end near now, got %v", end)
		}
	})

	t.Run("parses plain dates", func(t *testing.T) {
		start, end, err := ParseDateRange("2025-01-06", "2025-01-10")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if start.Format("2006-01-02") != "2025-01-06" {
			t.Errorf("Expected start 2025-01-06, got %v", start)
		}
		if end.Format("2006-01-02") != "2025-01-10" {
			t.Errorf("Expected end 2025-01-10, got %v", end)
		}
	})

	t.Run("tolerates RFC3339 timestamps", func(t *testing.T) {
		start, _, err := ParseDateRange("2025-01-06T09:30:00Z", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if start.Format("2006-01-02") != "2025-01-06" {
			t.Errorf("Expected start 2025-01-06, got %v", start)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, _, err := ParseDateRange("06/01/2025", "")
		if err == nil {
			t.Fatal("Expected error for malformed start date")
		}

		_, _, err = ParseDateRange("", "not-a-date")
		if err == nil {
			t.Fatal("Expected error for malformed end date")
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, _, err := ParseDateRange("2025-01-10", "2025-01-06")
		if err == nil {
			t.Fatal("Expected error when start is after end")
		}
	})
}
