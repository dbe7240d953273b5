package repository

import (
	"database/sql"
	"fmt"

	"github.com/tradescope/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradescope/Trading-Journal-Backend/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetAccounts retrieves accounts from the database based on filter criteria.
// Returns an empty slice if no accounts match the filter criteria.
func (s *AccountRepository) GetAccounts(filter model.AccountFilter) ([]model.Account, error) {
	query := `
          SELECT id, name, starting_balance, is_archived
          FROM account
          WHERE 1=1
      `
	var args []any

	if !filter.IncludeArchived {
		query += " AND is_archived = ?"
		args = append(args, 0)
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		var a model.Account

		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.StartingBalance,
			&a.IsArchived,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccountOnID retrieves a single account by its ID.
// Returns apperrors.ErrAccountNotFound when no row matches.
func (s *AccountRepository) GetAccountOnID(accountID string) (model.Account, error) {
	query := `
          SELECT id, name, starting_balance, is_archived
          FROM account
          WHERE id = ?
      `
	var a model.Account

	err := s.db.QueryRow(query, accountID).Scan(
		&a.ID,
		&a.Name,
		&a.StartingBalance,
		&a.IsArchived,
	)
	if err == sql.ErrNoRows {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to query account: %w", err)
	}

	return a, nil
}

// CreateAccount inserts a new account row.
func (s *AccountRepository) CreateAccount(account model.Account) error {
	query := `
        INSERT INTO account (id, name, starting_balance, is_archived)
        VALUES (?, ?, ?, ?)
    `
	_, err := s.db.Exec(query, account.ID, account.Name, account.StartingBalance, account.IsArchived)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}
