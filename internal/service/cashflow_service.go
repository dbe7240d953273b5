package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
)

// CashflowService handles deposit and withdrawal business logic operations.
type CashflowService struct {
	cashflowRepo *repository.CashflowRepository
}

// NewCashflowService creates a new CashflowService with the provided repository.
func NewCashflowService(cashflowRepo *repository.CashflowRepository) *CashflowService {
	return &CashflowService{
		cashflowRepo: cashflowRepo,
	}
}

// GetCashflows retrieves all cashflows for the account within the date range,
// sorted by date ascending. A zero startDate means "from the beginning".
func (s *CashflowService) GetCashflows(accountID string, startDate, endDate time.Time) ([]model.Cashflow, error) {
	return s.cashflowRepo.GetCashflows(accountID, startDate, endDate)
}

// CreateCashflow records a deposit (positive amount) or withdrawal (negative
// amount) with a generated ID. A zero amount is rejected: it would create a
// cashflow row that cannot shift either balance series.
func (s *CashflowService) CreateCashflow(cashflow model.Cashflow) (model.Cashflow, error) {
	if cashflow.Amount == 0 {
		return model.Cashflow{}, apperrors.ErrZeroAmount
	}

	cashflow.ID = uuid.New().String()
	cashflow.CreatedAt = time.Now().UTC()

	if err := s.cashflowRepo.CreateCashflow(cashflow); err != nil {
		return model.Cashflow{}, err
	}
	return cashflow, nil
}

// DeleteCashflow removes a cashflow record.
func (s *CashflowService) DeleteCashflow(cashflowID string) error {
	return s.cashflowRepo.DeleteCashflow(cashflowID)
}
