package storage

import (
	"context"

	"github.com/vietbank/transfer-core/pkg/models"
)

// AccountReader defines the interface for reading account documents.
type AccountReader interface {
	// GetAccount retrieves an account by its account number, regardless of owner.
	GetAccount(ctx context.Context, accountNo string) (*models.Account, error)

	// GetOwnedAccount retrieves an account by number and verifies it belongs to
	// the given user. Returns ErrAccountNotFound when either part fails.
	GetOwnedAccount(ctx context.Context, accountNo, userID string) (*models.Account, error)

	// ListAccountsByUserID retrieves every account held by a user.
	ListAccountsByUserID(ctx context.Context, userID string) ([]models.Account, error)
}

// AccountManager defines the interface for mutating account documents.
// Debit and Credit are the only operations allowed to touch a balance; both are
// compare-and-swap updates on the account version.
type AccountManager interface {
	// OpenAccount creates a new account. Fails with ErrAccountExists if the
	// account number is already taken.
	OpenAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// DebitAccount subtracts amount from the account balance. Fails with
	// ErrInsufficientFunds when the balance cannot cover it and with
	// ErrVersionConflict when a concurrent mutation won the race.
	DebitAccount(ctx context.Context, accountNo string, amount int64) error

	// CreditAccount adds amount to the account balance. Fails with
	// ErrVersionConflict when a concurrent mutation won the race.
	CreditAccount(ctx context.Context, accountNo string, amount int64) error
}

// AccountStore combines the reader and manager interfaces.
type AccountStore interface {
	AccountReader
	AccountManager
}
