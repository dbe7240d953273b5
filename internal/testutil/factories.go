package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Prop Firm Eval").
//	    WithStartingBalance(25000).
//	    Archived().
//	    Build(t, db)
type AccountBuilder struct {
	ID              string
	Name            string
	StartingBalance float64
	IsArchived      bool
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:              MakeID(),
		Name:            MakeAccountName("Test Account"),
		StartingBalance: 10000,
		IsArchived:      false,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithStartingBalance sets a custom starting balance.
func (b *AccountBuilder) WithStartingBalance(balance float64) *AccountBuilder {
	b.StartingBalance = balance
	return b
}

// Archived marks the account as archived.
func (b *AccountBuilder) Archived() *AccountBuilder {
	b.IsArchived = true
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, name, starting_balance, is_archived)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.StartingBalance, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:              b.ID,
		Name:            b.Name,
		StartingBalance: b.StartingBalance,
		IsArchived:      b.IsArchived,
	}
}

// SessionBuilder provides a fluent interface for creating test sessions.
//
// Example usage:
//
//	session := testutil.NewSession(account.ID).
//	    WithDate("2025-03-03").
//	    WithNetPnl(150.25).
//	    Build(t, db)
//
//	// Legacy row carrying its figures in the payload only
//	legacy := testutil.NewSession(account.ID).
//	    WithDate("2025-03-04").
//	    WithPayload(map[string]any{"profitLoss": "$120.50"}).
//	    Build(t, db)
type SessionBuilder struct {
	ID            string
	AccountID     string
	Date          string
	NetPnl        *float64
	GrossPnl      *float64
	Fees          *float64
	Instrument    string
	RespectedPlan bool
	Notes         string
	Payload       map[string]any
}

// NewSession creates a SessionBuilder with sensible defaults.
func NewSession(accountID string) *SessionBuilder {
	return &SessionBuilder{
		ID:        MakeID(),
		AccountID: accountID,
		Date:      "2025-03-03",
	}
}

// WithID sets a custom ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.ID = id
	return b
}

// WithDate sets the session date (YYYY-MM-DD).
func (b *SessionBuilder) WithDate(date string) *SessionBuilder {
	b.Date = date
	return b
}

// WithNetPnl sets the explicit net P&L column.
func (b *SessionBuilder) WithNetPnl(pnl float64) *SessionBuilder {
	b.NetPnl = &pnl
	return b
}

// WithGrossPnl sets the explicit gross P&L column.
func (b *SessionBuilder) WithGrossPnl(pnl float64) *SessionBuilder {
	b.GrossPnl = &pnl
	return b
}

// WithFees sets the explicit fees column.
func (b *SessionBuilder) WithFees(fees float64) *SessionBuilder {
	b.Fees = &fees
	return b
}

// WithInstrument sets the dominant instrument tag.
func (b *SessionBuilder) WithInstrument(instrument string) *SessionBuilder {
	b.Instrument = instrument
	return b
}

// RespectedPlan marks the session as plan-respecting.
func (b *SessionBuilder) WithRespectedPlan() *SessionBuilder {
	b.RespectedPlan = true
	return b
}

// WithNotes sets the free-text notes.
func (b *SessionBuilder) WithNotes(notes string) *SessionBuilder {
	b.Notes = notes
	return b
}

// WithPayload sets the raw legacy record.
func (b *SessionBuilder) WithPayload(payload map[string]any) *SessionBuilder {
	b.Payload = payload
	return b
}

// Build creates the session in the database and returns it.
func (b *SessionBuilder) Build(t *testing.T, db *sql.DB) model.Session {
	t.Helper()

	var payloadStr sql.NullString
	if b.Payload != nil {
		data, err := json.Marshal(b.Payload)
		if err != nil {
			t.Fatalf("Failed to serialize test session payload: %v", err)
		}
		payloadStr = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO session (id, account_id, date, net_pnl, gross_pnl, fees,
		                     instrument, respected_plan, notes, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.AccountID, b.Date, b.NetPnl, b.GrossPnl, b.Fees,
		b.Instrument, b.RespectedPlan, b.Notes, payloadStr,
	)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test session date %q: %v", b.Date, err)
	}

	return model.Session{
		ID:            b.ID,
		AccountID:     b.AccountID,
		Date:          date,
		NetPnl:        b.NetPnl,
		GrossPnl:      b.GrossPnl,
		Fees:          b.Fees,
		Instrument:    b.Instrument,
		RespectedPlan: b.RespectedPlan,
		Notes:         b.Notes,
		Payload:       b.Payload,
	}
}

// TradeLegBuilder provides a fluent interface for creating test trade legs.
//
// Example usage:
//
//	leg := testutil.NewTradeLeg(session.ID).
//	    Entry().
//	    WithSymbol("AAPL").
//	    WithPrice(100).
//	    WithQuantity(10).
//	    WithTimeOfDay("9:45 AM").
//	    Build(t, db)
type TradeLegBuilder struct {
	ID             string
	SessionID      string
	Role           string
	Symbol         string
	InstrumentKind string
	Side           string
	Price          float64
	Quantity       float64
	TimeOfDay      string
	DaysToExpiry   *int
	ExpiryDate     *string
}

// NewTradeLeg creates a TradeLegBuilder with sensible defaults.
func NewTradeLeg(sessionID string) *TradeLegBuilder {
	return &TradeLegBuilder{
		ID:             MakeID(),
		SessionID:      sessionID,
		Role:           model.LegRoleEntry,
		Symbol:         "AAPL",
		InstrumentKind: model.InstrumentEquity,
		Side:           model.SideLong,
		Price:          100,
		Quantity:       10,
	}
}

// Entry marks the leg as an entry fill.
func (b *TradeLegBuilder) Entry() *TradeLegBuilder {
	b.Role = model.LegRoleEntry
	return b
}

// Exit marks the leg as an exit fill.
func (b *TradeLegBuilder) Exit() *TradeLegBuilder {
	b.Role = model.LegRoleExit
	return b
}

// Short marks the leg as part of a short position.
func (b *TradeLegBuilder) Short() *TradeLegBuilder {
	b.Side = model.SideShort
	return b
}

// WithSymbol sets the traded symbol.
func (b *TradeLegBuilder) WithSymbol(symbol string) *TradeLegBuilder {
	b.Symbol = symbol
	return b
}

// WithInstrumentKind sets the instrument kind.
func (b *TradeLegBuilder) WithInstrumentKind(kind string) *TradeLegBuilder {
	b.InstrumentKind = kind
	return b
}

// WithPrice sets the fill price.
func (b *TradeLegBuilder) WithPrice(price float64) *TradeLegBuilder {
	b.Price = price
	return b
}

// WithQuantity sets the fill quantity.
func (b *TradeLegBuilder) WithQuantity(quantity float64) *TradeLegBuilder {
	b.Quantity = quantity
	return b
}

// WithTimeOfDay sets the free-text clock.
func (b *TradeLegBuilder) WithTimeOfDay(clock string) *TradeLegBuilder {
	b.TimeOfDay = clock
	return b
}

// WithDaysToExpiry sets the option expiry countdown.
func (b *TradeLegBuilder) WithDaysToExpiry(days int) *TradeLegBuilder {
	b.DaysToExpiry = &days
	return b
}

// WithExpiryDate sets the option expiry date (YYYY-MM-DD).
func (b *TradeLegBuilder) WithExpiryDate(date string) *TradeLegBuilder {
	b.ExpiryDate = &date
	return b
}

// Build creates the trade leg in the database and returns it.
func (b *TradeLegBuilder) Build(t *testing.T, db *sql.DB) model.TradeLeg {
	t.Helper()

	query := `
		INSERT INTO trade_leg (id, session_id, role, symbol, instrument_kind, side,
		                       price, quantity, time_of_day, days_to_expiry, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.SessionID, b.Role, b.Symbol, b.InstrumentKind, b.Side,
		b.Price, b.Quantity, b.TimeOfDay, b.DaysToExpiry, b.ExpiryDate,
	)
	if err != nil {
		t.Fatalf("Failed to create test trade leg: %v", err)
	}

	leg := model.TradeLeg{
		ID:             b.ID,
		SessionID:      b.SessionID,
		Role:           b.Role,
		Symbol:         b.Symbol,
		InstrumentKind: b.InstrumentKind,
		Side:           b.Side,
		Price:          b.Price,
		Quantity:       b.Quantity,
		TimeOfDay:      b.TimeOfDay,
		DaysToExpiry:   b.DaysToExpiry,
	}

	if b.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *b.ExpiryDate)
		if err != nil {
			t.Fatalf("Invalid test expiry date %q: %v", *b.ExpiryDate, err)
		}
		leg.ExpiryDate = &expiry
	}

	return leg
}

// CashflowBuilder provides a fluent interface for creating test cashflows.
//
// Example usage:
//
//	deposit := testutil.NewCashflow(account.ID).
//	    WithDate("2025-03-04").
//	    WithAmount(500).
//	    Build(t, db)
type CashflowBuilder struct {
	ID        string
	AccountID string
	Date      string
	Amount    float64
	Note      string
}

// NewCashflow creates a CashflowBuilder with sensible defaults.
func NewCashflow(accountID string) *CashflowBuilder {
	return &CashflowBuilder{
		ID:        MakeID(),
		AccountID: accountID,
		Date:      "2025-03-03",
		Amount:    500,
	}
}

// WithDate sets the cashflow date (YYYY-MM-DD).
func (b *CashflowBuilder) WithDate(date string) *CashflowBuilder {
	b.Date = date
	return b
}

// WithAmount sets the signed amount.
func (b *CashflowBuilder) WithAmount(amount float64) *CashflowBuilder {
	b.Amount = amount
	return b
}

// WithNote sets the free-text note.
func (b *CashflowBuilder) WithNote(note string) *CashflowBuilder {
	b.Note = note
	return b
}

// Build creates the cashflow in the database and returns it.
func (b *CashflowBuilder) Build(t *testing.T, db *sql.DB) model.Cashflow {
	t.Helper()

	query := `
		INSERT INTO cashflow (id, account_id, date, amount, note)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.AccountID, b.Date, b.Amount, b.Note)
	if err != nil {
		t.Fatalf("Failed to create test cashflow: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test cashflow date %q: %v", b.Date, err)
	}

	return model.Cashflow{
		ID:        b.ID,
		AccountID: b.AccountID,
		Date:      date,
		Amount:    b.Amount,
		Note:      b.Note,
	}
}

// GrowthPlanBuilder provides a fluent interface for creating test growth plans.
//
// Example usage:
//
//	plan := testutil.NewGrowthPlan(account.ID).
//	    WithDailyTargetPct(1).
//	    WithLossDaysPerWeek(1).
//	    StartingOn("2025-03-03").
//	    Build(t, db)
type GrowthPlanBuilder struct {
	ID              string
	AccountID       string
	StartingBalance float64
	TargetBalance   float64
	DailyTargetPct  float64
	LossDaysPerWeek int
	TradingDays     int
	Start           string
}

// NewGrowthPlan creates a GrowthPlanBuilder with sensible defaults.
func NewGrowthPlan(accountID string) *GrowthPlanBuilder {
	return &GrowthPlanBuilder{
		ID:              MakeID(),
		AccountID:       accountID,
		StartingBalance: 10000,
		TargetBalance:   20000,
		DailyTargetPct:  1,
		Start:           "2025-03-03",
	}
}

// WithStartingBalance sets the plan's starting balance.
func (b *GrowthPlanBuilder) WithStartingBalance(balance float64) *GrowthPlanBuilder {
	b.StartingBalance = balance
	return b
}

// WithTargetBalance sets the plan's target balance.
func (b *GrowthPlanBuilder) WithTargetBalance(balance float64) *GrowthPlanBuilder {
	b.TargetBalance = balance
	return b
}

// WithDailyTargetPct sets the compounding daily growth target.
// Zero selects linear interpolation.
func (b *GrowthPlanBuilder) WithDailyTargetPct(pct float64) *GrowthPlanBuilder {
	b.DailyTargetPct = pct
	return b
}

// WithLossDaysPerWeek sets the designated loss days per 5-day cycle.
func (b *GrowthPlanBuilder) WithLossDaysPerWeek(days int) *GrowthPlanBuilder {
	b.LossDaysPerWeek = days
	return b
}

// WithTradingDays caps the projected trading days.
func (b *GrowthPlanBuilder) WithTradingDays(days int) *GrowthPlanBuilder {
	b.TradingDays = days
	return b
}

// StartingOn pins the plan's created_at and updated_at to the given date,
// which fixes the projected series' start date.
func (b *GrowthPlanBuilder) StartingOn(date string) *GrowthPlanBuilder {
	b.Start = date
	return b
}

// Build creates the growth plan in the database and returns it.
func (b *GrowthPlanBuilder) Build(t *testing.T, db *sql.DB) model.GrowthPlan {
	t.Helper()

	query := `
		INSERT INTO growth_plan (id, account_id, starting_balance, target_balance,
		                         daily_target_pct, loss_days_per_week, trading_days,
		                         created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.AccountID, b.StartingBalance, b.TargetBalance,
		b.DailyTargetPct, b.LossDaysPerWeek, b.TradingDays,
		b.Start, b.Start,
	)
	if err != nil {
		t.Fatalf("Failed to create test growth plan: %v", err)
	}

	start, err := time.Parse("2006-01-02", b.Start)
	if err != nil {
		t.Fatalf("Invalid test plan start date %q: %v", b.Start, err)
	}

	return model.GrowthPlan{
		ID:              b.ID,
		AccountID:       b.AccountID,
		StartingBalance: b.StartingBalance,
		TargetBalance:   b.TargetBalance,
		DailyTargetPct:  b.DailyTargetPct,
		LossDaysPerWeek: b.LossDaysPerWeek,
		TradingDays:     b.TradingDays,
		CreatedAt:       start,
		UpdatedAt:       start,
	}
}
