package service_test

import (
	"testing"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

func floatPtr(v float64) *float64 { return &v }

// TestNormalizeSession_Cascade tests net P&L resolution across storage schemas.
//
// WHY: The journal's session records span several schema generations, and the
// analytics pipeline depends on every one of them resolving to a usable daily
// figure. Each subtest pins one rung of the resolution cascade.
func TestNormalizeSession_Cascade(t *testing.T) {
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("explicit columns win over payload", func(t *testing.T) {
		session := model.Session{
			ID:        "s1",
			AccountID: "a1",
			Date:      date,
			NetPnl:    floatPtr(150.25),
			GrossPnl:  floatPtr(160),
			Fees:      floatPtr(9.75),
			Payload:   map[string]any{"netPnl": -999.0},
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 150.25 {
			t.Errorf("Expected net P&L 150.25, got %v", got.NetPnl)
		}
		if got.GrossPnl != 160 {
			t.Errorf("Expected gross P&L 160, got %v", got.GrossPnl)
		}
		if got.Fees != 9.75 {
			t.Errorf("Expected fees 9.75, got %v", got.Fees)
		}
	})

	t.Run("payload netPnl field", func(t *testing.T) {
		session := model.Session{
			ID:      "s1",
			Date:    date,
			Payload: map[string]any{"netPnl": 120.5, "pnl": -1.0},
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 120.5 {
			t.Errorf("Expected net P&L 120.5, got %v", got.NetPnl)
		}
	})

	t.Run("snake_case payload field", func(t *testing.T) {
		session := model.Session{
			ID:      "s1",
			Date:    date,
			Payload: map[string]any{"net_pnl": -42.0},
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != -42 {
			t.Errorf("Expected net P&L -42, got %v", got.NetPnl)
		}
	})

	t.Run("generic profitLoss currency string", func(t *testing.T) {
		session := model.Session{
			ID:      "s1",
			Date:    date,
			Payload: map[string]any{"profitLoss": "$1,120.50"},
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 1120.5 {
			t.Errorf("Expected net P&L 1120.5, got %v", got.NetPnl)
		}
	})

	t.Run("notes-embedded net", func(t *testing.T) {
		session := model.Session{
			ID:    "s1",
			Date:  date,
			Notes: `{"pnl": {"net": 75.5, "gross": 90}, "fees": 14.5}`,
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 75.5 {
			t.Errorf("Expected net P&L 75.5, got %v", got.NetPnl)
		}
		if got.GrossPnl != 90 {
			t.Errorf("Expected gross P&L 90, got %v", got.GrossPnl)
		}
		if got.Fees != 14.5 {
			t.Errorf("Expected fees 14.5, got %v", got.Fees)
		}
	})

	t.Run("notes-embedded gross minus costs", func(t *testing.T) {
		// Oldest schema: no net anywhere, derive it from gross minus
		// fees and commissions found in the same blob.
		session := model.Session{
			ID:    "s1",
			Date:  date,
			Notes: `{"pnl": {"gross": 200}, "fees": 12.5, "commissions": 7.5}`,
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 180 {
			t.Errorf("Expected net P&L 180, got %v", got.NetPnl)
		}
		if got.Fees != 20 {
			t.Errorf("Expected fees 20, got %v", got.Fees)
		}
	})

	t.Run("notes blob inside payload", func(t *testing.T) {
		session := model.Session{
			ID:   "s1",
			Date: date,
			Payload: map[string]any{
				"notes": `{"pnl": {"net": 33}}`,
			},
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 33 {
			t.Errorf("Expected net P&L 33, got %v", got.NetPnl)
		}
	})

	t.Run("missing figures default to zero", func(t *testing.T) {
		session := model.Session{ID: "s1", Date: date}

		got := service.NormalizeSession(session)

		if got.NetPnl != 0 || got.GrossPnl != 0 || got.Fees != 0 {
			t.Errorf("Expected zero figures, got net=%v gross=%v fees=%v",
				got.NetPnl, got.GrossPnl, got.Fees)
		}
	})

	t.Run("malformed values degrade to zero", func(t *testing.T) {
		session := model.Session{
			ID:    "s1",
			Date:  date,
			Notes: `not json at all {`,
			Payload: map[string]any{
				"netPnl": "n/a",
				"fees":   true,
			},
		}

		got := service.NormalizeSession(session)

		if got.NetPnl != 0 {
			t.Errorf("Expected net P&L 0 for malformed input, got %v", got.NetPnl)
		}
		if got.Fees != 0 {
			t.Errorf("Expected fees 0 for malformed input, got %v", got.Fees)
		}
	})

	t.Run("gross falls back to resolved net", func(t *testing.T) {
		session := model.Session{
			ID:      "s1",
			Date:    date,
			Payload: map[string]any{"pnl": 55.0},
		}

		got := service.NormalizeSession(session)

		if got.GrossPnl != 55 {
			t.Errorf("Expected gross fallback to net 55, got %v", got.GrossPnl)
		}
	})
}

// TestNormalizeSessions tests batch normalization.
//
// WHY: The pipeline feeds date-ordered session slices through normalization;
// order and identity fields must survive the pass.
func TestNormalizeSessions(t *testing.T) {
	sessions := []model.Session{
		{
			ID:         "s1",
			AccountID:  "a1",
			Date:       time.Date(2025, 3, 3, 14, 30, 0, 0, time.UTC),
			NetPnl:     floatPtr(100),
			Instrument: "ES",
		},
		{
			ID:            "s2",
			AccountID:     "a1",
			Date:          time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			NetPnl:        floatPtr(-50),
			RespectedPlan: true,
		},
	}

	got := service.NormalizeSessions(sessions)

	if len(got) != 2 {
		t.Fatalf("Expected 2 normalized sessions, got %d", len(got))
	}
	if got[0].ID != "s1" || got[1].ID != "s2" {
		t.Errorf("Expected order preserved, got %q then %q", got[0].ID, got[1].ID)
	}
	if got[0].Instrument != "ES" {
		t.Errorf("Expected instrument carried through, got %q", got[0].Instrument)
	}
	if !got[1].RespectedPlan {
		t.Error("Expected respectedPlan carried through")
	}

	// Timestamps truncate to UTC midnight.
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !got[0].Date.Equal(want) {
		t.Errorf("Expected date truncated to %v, got %v", want, got[0].Date)
	}
}
