package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/handlers"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
	"github.com/tradescope/Trading-Journal-Backend/internal/testutil"
)

// TestSessionHandler_CreateSession tests the POST /api/account/{uuid}/session
// endpoint.
//
// WHY: Session creation is the journal's main write path. It must reject
// duplicates with 409, reject bad payloads with 400, and refresh the equity
// snapshots on success so the dashboard never shows a pre-write balance.
func TestSessionHandler_CreateSession(t *testing.T) {
	t.Run("creates a session with legs and rebuilds snapshots", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().WithStartingBalance(10000).Build(t, db)

		body := `{
			"date": "2025-03-03",
			"netPnl": 150,
			"instrument": "ES",
			"legs": [
				{"role": "entry", "symbol": "AAPL", "instrumentKind": "equity",
				 "side": "long", "price": 100, "quantity": 10, "timeOfDay": "9:45 AM"},
				{"role": "exit", "symbol": "AAPL", "instrumentKind": "equity",
				 "side": "long", "price": 115, "quantity": 10, "timeOfDay": "2:00 PM"}
			]
		}`
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/account/"+account.ID+"/session",
			map[string]string{"uuid": account.ID},
			body,
		)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateSession(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var detail service.SessionWithLegs
		if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if detail.Session.ID == "" || len(detail.Legs) != 2 {
			t.Errorf("Unexpected session detail: %+v", detail)
		}

		// The write refreshed the materialized equity.
		testutil.AssertRowCount(t, db, "equity_materialized", 1)
	})

	t.Run("returns 409 for a duplicate date", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)
		testutil.NewSession(account.ID).WithDate("2025-03-03").Build(t, db)

		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/account/"+account.ID+"/session",
			map[string]string{"uuid": account.ID},
			`{"date": "2025-03-03", "netPnl": 100}`,
		)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateSession(w, req)

		// Assert
		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "session", 1)
	})

	t.Run("returns 400 for an invalid payload", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)

		// Missing date, and a leg with an unknown role.
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/account/"+account.ID+"/session",
			map[string]string{"uuid": account.ID},
			`{"legs": [{"role": "hold", "symbol": "AAPL", "side": "long", "price": 1, "quantity": 1}]}`,
		)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateSession(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "session", 0)
	})

	t.Run("accepts an unparsable time of day", func(t *testing.T) {
		// Free-text clocks degrade to untimed trades; they never fail the
		// write.
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)

		body := `{
			"date": "2025-03-03",
			"legs": [
				{"role": "entry", "symbol": "AAPL", "instrumentKind": "equity",
				 "side": "long", "price": 100, "quantity": 10, "timeOfDay": "around lunch"}
			]
		}`
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/account/"+account.ID+"/session",
			map[string]string{"uuid": account.ID},
			body,
		)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateSession(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestSessionHandler_SessionsPerAccount tests the session listing endpoint.
func TestSessionHandler_SessionsPerAccount(t *testing.T) {
	t.Run("filters by date range", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)
		testutil.NewSession(account.ID).WithDate("2025-03-03").Build(t, db)
		testutil.NewSession(account.ID).WithDate("2025-03-20").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/account/"+account.ID+"/session?start_date=2025-03-01&end_date=2025-03-10",
			map[string]string{"uuid": account.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SessionsPerAccount(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var sessions []model.Session
		if err := json.NewDecoder(w.Body).Decode(&sessions); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(sessions) != 1 {
			t.Errorf("Expected 1 session in range, got %d", len(sessions))
		}
	})

	t.Run("returns 400 for a reversed date range", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/account/"+account.ID+"/session?start_date=2025-03-10&end_date=2025-03-01",
			map[string]string{"uuid": account.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.SessionsPerAccount(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestSessionHandler_GetSession tests the session detail endpoint.
func TestSessionHandler_GetSession(t *testing.T) {
	t.Run("returns session with legs", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)
		session := testutil.NewSession(account.ID).Build(t, db)
		testutil.NewTradeLeg(session.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/session/"+session.ID,
			map[string]string{"uuid": session.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.GetSession(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var detail service.SessionWithLegs
		if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if detail.Session.ID != session.ID || len(detail.Legs) != 1 {
			t.Errorf("Unexpected detail: %+v", detail)
		}
	})

	t.Run("returns 404 for unknown session", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)

		unknown := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/session/"+unknown,
			map[string]string{"uuid": unknown},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.GetSession(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestSessionHandler_DeleteSession tests the DELETE /api/session/{uuid}
// endpoint.
func TestSessionHandler_DeleteSession(t *testing.T) {
	t.Run("deletes and rebuilds snapshots", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)
		account := testutil.NewAccount().Build(t, db)
		session := testutil.NewSession(account.ID).WithNetPnl(100).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/session/"+session.ID,
			map[string]string{"uuid": session.ID},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteSession(w, req)

		// Assert
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "session", 0)
		// The account has no remaining history, so the rebuild cleared
		// its snapshots too.
		testutil.AssertRowCount(t, db, "equity_materialized", 0)
	})

	t.Run("returns 404 for unknown session", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSessionHandler(
			testutil.NewTestSessionService(t, db),
			testutil.NewTestMaterializedService(t, db),
		)

		unknown := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/session/"+unknown,
			map[string]string{"uuid": unknown},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteSession(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
