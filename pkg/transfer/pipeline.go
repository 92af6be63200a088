// Package transfer orchestrates the life of a money transfer: eligibility
// verification, the OTP challenge, and the balance-mutating commit.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietbank/transfer-core/pkg/eligibility"
	"github.com/vietbank/transfer-core/pkg/fees"
	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

// defaultMethod is the interbank rail external transfers are submitted on.
const defaultMethod = "napas"

// RejectionError is a definitive business rejection. The reason is the
// user-facing text produced by the verification checks; retrying the same
// request yields the same answer.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// Verifier runs the eligibility checks for a proposed transfer.
type Verifier interface {
	Verify(ctx context.Context, req eligibility.Request) (*eligibility.Result, error)
}

// Challenger issues and verifies OTP challenges for pending transactions.
type Challenger interface {
	Generate(ctx context.Context, txID, userID, deliveryAddress string) (*models.OtpChallenge, error)
	Resend(ctx context.Context, txID, userID, deliveryAddress string) (*models.OtpChallenge, error)
	Verify(ctx context.Context, txID, code string) error
}

// Submitter hands a committed external transfer to the payment gateway.
type Submitter interface {
	Submit(ctx context.Context, txID string, amount int64, method, recipientBank string) (*models.PaymentRequest, error)
}

// Pipeline drives a transfer from initiation through commit.
type Pipeline struct {
	store       storage.ApiStore
	eligibility Verifier
	otp         Challenger
	gateway     Submitter
	logger      *slog.Logger
}

// New wires a Pipeline from its collaborators.
func New(store storage.ApiStore, verifier Verifier, challenger Challenger, submitter Submitter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:       store,
		eligibility: verifier,
		otp:         challenger,
		gateway:     submitter,
		logger:      logger,
	}
}

// InitiateRequest carries the parameters of a proposed transfer.
type InitiateRequest struct {
	UserID          string
	SourceAccountNo string
	Destination     string
	Amount          int64
	Kind            models.TransferKind
	Description     string
}

// Initiation is what the caller gets back after a successful initiation. The
// OTP code itself is never returned; it only travels out of band.
type Initiation struct {
	Transaction  *models.Transaction
	OtpExpiresAt time.Time
	OtpDelivery  models.DeliveryStatus
}

// Initiate verifies the transfer, records it as pending and issues the OTP
// challenge. A failed challenge issue leaves the pending record behind for the
// reconciliation worker to cancel.
func (p *Pipeline) Initiate(ctx context.Context, req InitiateRequest) (*Initiation, error) {
	result, err := p.eligibility.Verify(ctx, eligibility.Request{
		SourceAccountNo: req.SourceAccountNo,
		Destination:     req.Destination,
		Amount:          req.Amount,
		UserID:          req.UserID,
		Kind:            req.Kind,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify transfer: %w", err)
	}
	if !result.OK {
		return nil, &RejectionError{Reason: result.Reason}
	}

	tx, err := p.store.CreatePendingTransaction(ctx, &models.Transaction{
		UserID:          req.UserID,
		SourceAccountNo: req.SourceAccountNo,
		Destination:     req.Destination,
		Amount:          req.Amount,
		Fee:             result.Fee,
		TotalAmount:     result.Total,
		Type:            models.TypeTransfer,
		Kind:            req.Kind,
		OtpRequired:     true,
		Description:     req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record pending transfer: %w", err)
	}

	challenge, err := p.otp.Generate(ctx, tx.ID, req.UserID, p.deliveryAddress(ctx, req.UserID))
	if err != nil {
		// The pending record stays behind; the reconciliation worker
		// cancels transactions that never see a verified challenge.
		return nil, fmt.Errorf("failed to issue challenge for transaction %s: %w", tx.ID, err)
	}

	return &Initiation{
		Transaction:  tx,
		OtpExpiresAt: challenge.ExpiresAt,
		OtpDelivery:  challenge.DeliveryStatus,
	}, nil
}

// Confirm verifies the submitted OTP code and commits the transfer: the
// transaction flips to completed, the source is debited amount plus fee, and
// the money is forwarded, internally by crediting the destination account,
// externally by submitting a gateway payment request.
func (p *Pipeline) Confirm(ctx context.Context, txID, code string) (*models.Transaction, error) {
	tx, err := p.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.PENDING {
		return nil, storage.ErrTransactionNotPending
	}

	if tx.OtpRequired {
		if err := p.otp.Verify(ctx, txID, code); err != nil {
			return nil, err
		}
	}

	fee := tx.Fee
	total := tx.TotalAmount
	if total == 0 {
		fee = fees.Calculate(tx.Amount, tx.Kind)
		total = tx.Amount + fee
	}

	// The debit comes first: a transaction only reaches COMPLETED after the
	// money actually left the source. A failed debit leaves the record
	// PENDING, where a retry or the reconciliation sweep can still reach it.
	if err := p.store.DebitAccount(ctx, tx.SourceAccountNo, total); err != nil {
		return nil, fmt.Errorf("failed to debit source account for transaction %s: %w", txID, err)
	}

	if err := p.store.CompleteTransaction(ctx, txID, fee, total); err != nil {
		p.logger.Error("CRITICAL: source debited but transaction not marked completed",
			"transaction_id", txID,
			"source_account", tx.SourceAccountNo,
			"total", total,
			"error", err)
		return nil, err
	}

	switch tx.Kind {
	case models.TransferInternal:
		// The fee never reaches the destination.
		if err := p.store.CreditAccount(ctx, tx.Destination, tx.Amount); err != nil {
			p.logger.Warn("destination credit failed after source debit",
				"transaction_id", txID,
				"destination_account", tx.Destination,
				"amount", tx.Amount,
				"error", err)
		}
	case models.TransferExternal:
		if _, err := p.gateway.Submit(ctx, txID, tx.Amount, defaultMethod, tx.Destination); err != nil {
			p.logger.Warn("gateway submission failed after source debit",
				"transaction_id", txID,
				"amount", tx.Amount,
				"error", err)
		}
	}

	tx.Status = models.COMPLETED
	tx.Fee = fee
	tx.TotalAmount = total
	tx.OtpVerified = true
	return tx, nil
}

// ResendCode issues a fresh challenge for a still-pending transaction,
// invalidating the previous code.
func (p *Pipeline) ResendCode(ctx context.Context, txID string) (*Initiation, error) {
	tx, err := p.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.PENDING {
		return nil, storage.ErrTransactionNotPending
	}

	challenge, err := p.otp.Resend(ctx, txID, tx.UserID, p.deliveryAddress(ctx, tx.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to reissue challenge for transaction %s: %w", txID, err)
	}

	return &Initiation{
		Transaction:  tx,
		OtpExpiresAt: challenge.ExpiresAt,
		OtpDelivery:  challenge.DeliveryStatus,
	}, nil
}

// Deposit credits an owned account and records the movement.
func (p *Pipeline) Deposit(ctx context.Context, userID, accountNo string, amount int64, description string) (*models.Transaction, error) {
	return p.singleLeg(ctx, userID, accountNo, amount, description, models.TypeDeposit, p.store.CreditAccount)
}

// Withdraw debits an owned account and records the movement.
func (p *Pipeline) Withdraw(ctx context.Context, userID, accountNo string, amount int64, description string) (*models.Transaction, error) {
	return p.singleLeg(ctx, userID, accountNo, amount, description, models.TypeWithdraw, p.store.DebitAccount)
}

func (p *Pipeline) singleLeg(ctx context.Context, userID, accountNo string, amount int64, description string, txType models.TransactionType, mutate func(context.Context, string, int64) error) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, &RejectionError{Reason: "amount must be positive"}
	}
	if _, err := p.store.GetOwnedAccount(ctx, accountNo, userID); err != nil {
		return nil, err
	}

	tx, err := p.store.CreatePendingTransaction(ctx, &models.Transaction{
		UserID:          userID,
		SourceAccountNo: accountNo,
		Amount:          amount,
		TotalAmount:     amount,
		Type:            txType,
		Description:     description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record %s: %w", txType, err)
	}

	if err := mutate(ctx, accountNo, amount); err != nil {
		if failErr := p.store.FailTransaction(ctx, tx.ID); failErr != nil {
			p.logger.Warn("could not mark failed transaction",
				"transaction_id", tx.ID,
				"error", failErr)
		}
		return nil, err
	}

	if err := p.store.CompleteTransaction(ctx, tx.ID, 0, amount); err != nil {
		// The balance already moved. The record stays PENDING and may be
		// cancelled by the reconciliation sweep, so flag it for operations.
		p.logger.Error("CRITICAL: balance mutated but transaction not marked completed",
			"transaction_id", tx.ID,
			"account", accountNo,
			"amount", amount,
			"type", txType,
			"error", err)
		return nil, err
	}

	tx.Status = models.COMPLETED
	return tx, nil
}

// BillRequest describes a bill or utility payment against an owned account.
type BillRequest struct {
	UserID          string
	SourceAccountNo string
	Payee           string
	Amount          int64
	Type            models.TransactionType
	Description     string
}

// PayBill applies a bill payment as one all-or-nothing batch of the completed
// transaction record and the account debit.
func (p *Pipeline) PayBill(ctx context.Context, req BillRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, &RejectionError{Reason: "amount must be positive"}
	}
	if req.Payee == "" {
		return nil, &RejectionError{Reason: "payee is required"}
	}
	if _, err := p.store.GetOwnedAccount(ctx, req.SourceAccountNo, req.UserID); err != nil {
		return nil, err
	}

	txType := req.Type
	if txType == "" {
		txType = models.TypeBillPayment
	}

	tx := &models.Transaction{
		UserID:          req.UserID,
		SourceAccountNo: req.SourceAccountNo,
		Destination:     req.Payee,
		Amount:          req.Amount,
		TotalAmount:     req.Amount,
		Type:            txType,
		Description:     req.Description,
	}
	if err := p.store.PayUtility(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// deliveryAddress resolves where the OTP code should be sent. A missing
// customer record degrades to undeliverable rather than blocking initiation.
func (p *Pipeline) deliveryAddress(ctx context.Context, userID string) string {
	customer, err := p.store.GetCustomer(ctx, userID)
	if err != nil {
		p.logger.Warn("could not resolve OTP delivery address",
			"user_id", userID,
			"error", err)
		return ""
	}
	return customer.Email
}
