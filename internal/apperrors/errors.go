package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSessionNotFound indicates that a session with the given ID does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTradeLegNotFound indicates that a trade leg with the given ID does not exist.
	ErrTradeLegNotFound = errors.New("trade leg not found")

	// ErrCashflowNotFound indicates that a cashflow record with the given ID does not exist.
	ErrCashflowNotFound = errors.New("cashflow not found")

	// ErrGrowthPlanNotFound indicates that no growth plan exists for the account.
	ErrGrowthPlanNotFound = errors.New("growth plan not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateSession indicates that a session already exists for the account and date.
	ErrDuplicateSession = errors.New("session already exists for this date")

	// ErrZeroAmount indicates that a cashflow amount of zero was supplied.
	ErrZeroAmount = errors.New("amount cannot be zero")

	// Validation errors for required fields
	ErrInvalidAccountID = errors.New("account ID is required")
	ErrInvalidSessionID = errors.New("session ID is required")
	ErrInvalidDate      = errors.New("date parameter is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Account operation errors
	ErrFailedToRetrieveAccounts = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveAccount  = errors.New("failed to retrieve account")

	// Session operation errors
	ErrFailedToRetrieveSessions = errors.New("failed to retrieve sessions")
	ErrFailedToRetrieveSession  = errors.New("failed to retrieve session")

	// Trade leg operation errors
	ErrFailedToRetrieveTradeLegs = errors.New("failed to retrieve trade legs")

	// Cashflow operation errors
	ErrFailedToRetrieveCashflows = errors.New("failed to retrieve cashflows")

	// Growth plan operation errors
	ErrFailedToRetrievePlan = errors.New("failed to retrieve growth plan")

	// Analytics operation errors
	ErrFailedToBuildEquityCurve    = errors.New("failed to build equity curve")
	ErrFailedToMatchTrades         = errors.New("failed to match trades")
	ErrFailedToComputeStats        = errors.New("failed to compute performance stats")
	ErrFailedToComputeComparisons  = errors.New("failed to compute period comparisons")
	ErrFailedToComputeKPIs         = errors.New("failed to compute KPIs")
	ErrFailedToRebuildEquityCache  = errors.New("failed to rebuild materialized equity history")
	ErrFailedToRetrieveEquityCache = errors.New("failed to retrieve materialized equity history")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a trade leg references a session that does not exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
