package service_test

import (
	"errors"
	"testing"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/testutil"
)

// TestDataLoaderService_LoadForAccount tests the batch dataset load.
//
// WHY: Every analytics operation starts here. The dataset must cover the
// account's full history and a missing growth plan must not abort the load.
func TestDataLoaderService_LoadForAccount(t *testing.T) {
	t.Run("loads the complete dataset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDataLoaderService(t, db)

		account := testutil.NewAccount().WithStartingBalance(10000).Build(t, db)
		s1 := testutil.NewSession(account.ID).WithDate("2025-03-03").WithNetPnl(100).Build(t, db)
		s2 := testutil.NewSession(account.ID).WithDate("2025-03-04").WithNetPnl(-50).Build(t, db)
		testutil.NewTradeLeg(s1.ID).Entry().Build(t, db)
		testutil.NewTradeLeg(s1.ID).Exit().WithPrice(105).Build(t, db)
		testutil.NewCashflow(account.ID).WithDate("2025-03-04").WithAmount(500).Build(t, db)
		testutil.NewGrowthPlan(account.ID).Build(t, db)

		// Execute
		data, err := svc.LoadForAccount(account.ID)

		// Assert
		if err != nil {
			t.Fatalf("LoadForAccount() returned unexpected error: %v", err)
		}
		if data.Account.ID != account.ID {
			t.Errorf("Expected account %s, got %s", account.ID, data.Account.ID)
		}
		if len(data.Sessions) != 2 {
			t.Errorf("Expected 2 sessions, got %d", len(data.Sessions))
		}
		if len(data.LegsBySession[s1.ID]) != 2 {
			t.Errorf("Expected 2 legs for session %s, got %d", s1.ID, len(data.LegsBySession[s1.ID]))
		}
		if len(data.LegsBySession[s2.ID]) != 0 {
			t.Errorf("Expected no legs for session %s", s2.ID)
		}
		if len(data.Cashflows) != 1 {
			t.Errorf("Expected 1 cashflow, got %d", len(data.Cashflows))
		}
		if data.Plan == nil {
			t.Error("Expected the growth plan to be loaded")
		}
	})

	t.Run("missing plan leaves Plan nil", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDataLoaderService(t, db)
		account := testutil.NewAccount().Build(t, db)

		// Execute
		data, err := svc.LoadForAccount(account.ID)

		// Assert
		if err != nil {
			t.Fatalf("LoadForAccount() returned unexpected error: %v", err)
		}
		if data.Plan != nil {
			t.Errorf("Expected nil plan, got %+v", data.Plan)
		}
	})

	t.Run("unknown account fails the load", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDataLoaderService(t, db)

		// Execute
		_, err := svc.LoadForAccount(testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})
}
