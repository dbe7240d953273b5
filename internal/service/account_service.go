package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradescope/Trading-Journal-Backend/internal/model"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
)

// AccountService handles account-related business logic operations.
type AccountService struct {
	accountRepo *repository.AccountRepository
}

// NewAccountService creates a new AccountService with the provided repository.
func NewAccountService(accountRepo *repository.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// GetAllAccounts retrieves all accounts, including archived ones.
func (s *AccountService) GetAllAccounts() ([]model.Account, error) {
	return s.accountRepo.GetAccounts(model.AccountFilter{
		IncludeArchived: true,
	})
}

// GetActiveAccounts retrieves only non-archived accounts.
func (s *AccountService) GetActiveAccounts() ([]model.Account, error) {
	return s.accountRepo.GetAccounts(model.AccountFilter{
		IncludeArchived: false,
	})
}

// GetAccount retrieves a single account by its ID.
func (s *AccountService) GetAccount(accountID string) (model.Account, error) {
	return s.accountRepo.GetAccountOnID(accountID)
}

// CreateAccount creates a new account with a generated ID.
func (s *AccountService) CreateAccount(name string, startingBalance float64) (model.Account, error) {
	account := model.Account{
		ID:              uuid.New().String(),
		Name:            name,
		StartingBalance: startingBalance,
		IsArchived:      false,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}
