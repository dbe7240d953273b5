package service

import (
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
)

// DataLoaderService centralizes the loading of everything the analytics
// pipeline needs for one account. The independent datasets (account row,
// sessions, cashflows, growth plan) are fetched concurrently; trade legs
// depend on the session IDs and load afterwards.
type DataLoaderService struct {
	accountRepo  *repository.AccountRepository
	sessionRepo  *repository.SessionRepository
	tradeLegRepo *repository.TradeLegRepository
	cashflowRepo *repository.CashflowRepository
	planRepo     *repository.PlanRepository
}

// NewDataLoaderService creates a new DataLoaderService with the provided repositories.
func NewDataLoaderService(
	accountRepo *repository.AccountRepository,
	sessionRepo *repository.SessionRepository,
	tradeLegRepo *repository.TradeLegRepository,
	cashflowRepo *repository.CashflowRepository,
	planRepo *repository.PlanRepository,
) *DataLoaderService {
	return &DataLoaderService{
		accountRepo:  accountRepo,
		sessionRepo:  sessionRepo,
		tradeLegRepo: tradeLegRepo,
		cashflowRepo: cashflowRepo,
		planRepo:     planRepo,
	}
}

// AccountData contains the complete dataset for one account's analytics run.
// Sessions and cashflows cover the account's full history: equity and
// comparison calculations depend on all prior days, not just a display range.
type AccountData struct {
	Account       model.Account
	Sessions      []model.Session
	LegsBySession map[string][]model.TradeLeg
	Cashflows     []model.Cashflow
	Plan          *model.GrowthPlan // nil when the account has no growth plan
}

// LoadForAccount batch-loads the full analytics dataset for the account.
// A missing growth plan is not an error; Plan is simply left nil.
func (s *DataLoaderService) LoadForAccount(accountID string) (AccountData, error) {
	var data AccountData

	historyStart := time.Time{}
	historyEnd := time.Now().UTC()

	var g errgroup.Group

	g.Go(func() error {
		account, err := s.accountRepo.GetAccountOnID(accountID)
		if err != nil {
			return err
		}
		data.Account = account
		return nil
	})

	g.Go(func() error {
		sessions, err := s.sessionRepo.GetSessions(accountID, historyStart, historyEnd)
		if err != nil {
			return err
		}
		data.Sessions = sessions
		return nil
	})

	g.Go(func() error {
		cashflows, err := s.cashflowRepo.GetCashflows(accountID, historyStart, historyEnd)
		if err != nil {
			return err
		}
		data.Cashflows = cashflows
		return nil
	})

	g.Go(func() error {
		plan, err := s.planRepo.GetPlanOnAccountID(accountID)
		if errors.Is(err, apperrors.ErrGrowthPlanNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		data.Plan = &plan
		return nil
	})

	if err := g.Wait(); err != nil {
		return AccountData{}, err
	}

	// Trade legs need the session IDs, so they load after the group.
	sessionIDs := make([]string, len(data.Sessions))
	for i, session := range data.Sessions {
		sessionIDs[i] = session.ID
	}

	legsBySession, err := s.tradeLegRepo.GetLegsBySessionIDs(sessionIDs)
	if err != nil {
		return AccountData{}, err
	}
	data.LegsBySession = legsBySession

	return data, nil
}
