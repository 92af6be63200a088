package storage

import (
	"context"
	"time"

	"github.com/vietbank/transfer-core/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves all transactions for a specific user,
	// most recent first.
	ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error)

	// SumCompletedTransfers aggregates the amounts of a user's completed
	// transfer transactions created at or after the given instant. The daily
	// limit gate re-runs this aggregation on every check; nothing is cached.
	SumCompletedTransfers(ctx context.Context, userID string, since time.Time) (int64, error)

	// GetStalePendingTransactions retrieves transactions still PENDING after
	// the given age, i.e. initiations whose OTP was never confirmed.
	GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// TransactionManager defines the interface for creating transactions and
// driving their status transitions. Terminal states are enforced with
// conditional writes; there is no way back from them.
type TransactionManager interface {
	// CreatePendingTransaction persists a new transaction in PENDING status.
	CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)

	// CompleteTransaction transitions a PENDING transaction to COMPLETED and
	// attaches the final fee, total and otp_verified flag. Fails with
	// ErrTransactionNotPending if the transaction already left PENDING.
	CompleteTransaction(ctx context.Context, txID string, fee, total int64) error

	// FailTransaction transitions a PENDING transaction to FAILED.
	FailTransaction(ctx context.Context, txID string) error

	// CancelTransaction transitions a PENDING transaction to CANCELLED.
	CancelTransaction(ctx context.Context, txID string) error

	// PayUtility applies a utility/bill payment as a single all-or-nothing
	// batch: the completed transaction record and the source debit. The batch
	// guarantees atomic apply of its own writes only, not isolation from
	// concurrent readers.
	PayUtility(ctx context.Context, tx *models.Transaction) error
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
