package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)

	return service.NewAccountService(accountRepo)
}

func NewTestSessionService(t *testing.T, db *sql.DB) *service.SessionService {
	t.Helper()

	sessionRepo := repository.NewSessionRepository(db)
	tradeLegRepo := repository.NewTradeLegRepository(db)

	return service.NewSessionService(
		sessionRepo,
		tradeLegRepo,
	)
}

func NewTestCashflowService(t *testing.T, db *sql.DB) *service.CashflowService {
	t.Helper()

	cashflowRepo := repository.NewCashflowRepository(db)

	return service.NewCashflowService(cashflowRepo)
}

func NewTestPlanService(t *testing.T, db *sql.DB) *service.PlanService {
	t.Helper()

	planRepo := repository.NewPlanRepository(db)

	return service.NewPlanService(planRepo)
}

func NewTestDataLoaderService(t *testing.T, db *sql.DB) *service.DataLoaderService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tradeLegRepo := repository.NewTradeLegRepository(db)
	cashflowRepo := repository.NewCashflowRepository(db)
	planRepo := repository.NewPlanRepository(db)

	return service.NewDataLoaderService(
		accountRepo,
		sessionRepo,
		tradeLegRepo,
		cashflowRepo,
		planRepo,
	)
}

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	return service.NewAnalyticsService(
		NewTestDataLoaderService(t, db),
		service.DefaultKPIConfig(),
	)
}

func NewTestMaterializedService(t *testing.T, db *sql.DB) *service.MaterializedService {
	t.Helper()

	materializedRepo := repository.NewMaterializedRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	return service.NewMaterializedService(
		materializedRepo,
		accountRepo,
		NewTestAnalyticsService(t, db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a unique UUID string for testing.
//
// Example usage:
//
//	id := testutil.MakeID()
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a unique ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("TST")
//	// Returns: "TSTA1B2"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Swing Account")
//	// Returns: "Swing Account ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
