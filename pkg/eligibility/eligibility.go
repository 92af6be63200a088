// Package eligibility runs the ordered pre-conditions a transfer must pass
// before a pending transaction and its OTP challenge are created. Checks run
// in a fixed order and the first failure short-circuits with a reason specific
// enough for the caller to self-correct. Input validation always runs before
// the first store read.
package eligibility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietbank/transfer-core/pkg/fees"
	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

const (
	// MinTransactionAmount is the smallest transfer accepted, in VND.
	MinTransactionAmount int64 = 10_000
	// SingleTransactionLimit is the largest single transfer accepted, in VND.
	SingleTransactionLimit int64 = 100_000_000
	// HighValueThreshold is the amount at which the eKYC gate applies.
	// A transfer of exactly this amount is gated.
	HighValueThreshold int64 = 10_000_000
	// DailyTransferLimit caps the sum of a user's completed transfers per
	// calendar day, in VND.
	DailyTransferLimit int64 = 50_000_000
)

// Request carries the transfer parameters under verification.
type Request struct {
	SourceAccountNo string
	Destination     string
	Amount          int64
	UserID          string
	Kind            models.TransferKind
}

// Result reports the verdict. When OK is false, Reason holds the user-facing
// explanation. When OK is true, the resolved documents and computed figures are
// attached so the caller does not have to fetch them again.
type Result struct {
	OK     bool
	Reason string

	Source      *models.Account
	Destination *models.Account
	Fee         int64
	Total       int64
	DailyTotal  int64
}

// Service evaluates eligibility against the document store.
type Service struct {
	store storage.VerificationStore
	now   func() time.Time
}

// New creates an eligibility Service.
func New(store storage.VerificationStore) *Service {
	return &Service{store: store, now: time.Now}
}

func fail(reason string) *Result {
	return &Result{OK: false, Reason: reason}
}

// Verify runs the checks in order and stops at the first failure. A non-nil
// error means a store read failed and nothing can be said about eligibility;
// a Result with OK false is a definitive business rejection.
func (s *Service) Verify(ctx context.Context, req Request) (*Result, error) {
	// Checks 1-3 are local validation and must precede any remote read.
	if req.SourceAccountNo == "" || req.Destination == "" {
		return fail("source and destination accounts are required"), nil
	}
	if req.Amount < MinTransactionAmount {
		return fail(fmt.Sprintf("minimum transfer amount is %d VND", MinTransactionAmount)), nil
	}
	if req.Amount > SingleTransactionLimit {
		return fail(fmt.Sprintf("single transaction limit is %d VND", SingleTransactionLimit)), nil
	}
	if req.SourceAccountNo == req.Destination {
		return fail("cannot transfer to the same account"), nil
	}

	// Check 4: the source account must exist and belong to the requesting user.
	source, err := s.store.GetOwnedAccount(ctx, req.SourceAccountNo, req.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return fail(fmt.Sprintf("source account %s not found", req.SourceAccountNo)), nil
		}
		return nil, fmt.Errorf("failed to look up source account: %w", err)
	}

	// Check 5: the balance must cover the raw amount. The fee is deliberately
	// not part of this pre-check; the commit debits amount plus fee.
	if source.Balance < req.Amount {
		return fail(fmt.Sprintf("insufficient balance: current balance is %d VND", source.Balance)), nil
	}

	// Check 6: high-value transfers require a verified eKYC profile.
	if req.Amount >= HighValueThreshold {
		if res, err := s.checkKyc(ctx, req); err != nil {
			return nil, err
		} else if res != nil {
			return res, nil
		}
	}

	// Check 7: today's completed transfers plus this one must stay within the
	// daily limit. "Today" starts at local midnight.
	dailyTotal, err := s.store.SumCompletedTransfers(ctx, req.UserID, startOfDay(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily transfer total: %w", err)
	}
	if dailyTotal+req.Amount > DailyTransferLimit {
		remaining := DailyTransferLimit - dailyTotal
		if remaining < 0 {
			remaining = 0
		}
		return fail(fmt.Sprintf("daily transfer limit of %d VND exceeded; remaining allowance today is %d VND", DailyTransferLimit, remaining)), nil
	}

	// Check 8: internal transfers must name an existing destination account.
	// External transfers carry a free-text recipient and skip this entirely.
	var dest *models.Account
	if req.Kind == models.TransferInternal {
		dest, err = s.store.GetAccount(ctx, req.Destination)
		if err != nil {
			if errors.Is(err, storage.ErrAccountNotFound) {
				return fail(fmt.Sprintf("destination account %s not found", req.Destination)), nil
			}
			return nil, fmt.Errorf("failed to look up destination account: %w", err)
		}
	}

	fee := fees.Calculate(req.Amount, req.Kind)
	return &Result{
		OK:          true,
		Source:      source,
		Destination: dest,
		Fee:         fee,
		Total:       req.Amount + fee,
		DailyTotal:  dailyTotal,
	}, nil
}

// checkKyc returns a rejection Result when the user's eKYC status is anything
// but verified. Each non-verified state gets its own guidance text, with the
// Vietnamese status label echoed so the app can surface it verbatim.
func (s *Service) checkKyc(ctx context.Context, req Request) (*Result, error) {
	customer, err := s.store.GetCustomer(ctx, req.UserID)
	if err != nil && !errors.Is(err, storage.ErrCustomerNotFound) {
		return nil, fmt.Errorf("failed to look up customer profile: %w", err)
	}

	status := models.KycStatus("")
	if customer != nil {
		status = customer.KycStatus
	}

	switch status {
	case models.KycVerified:
		return nil, nil
	case models.KycPending:
		return fail(fmt.Sprintf("transfers of %d VND or more require eKYC verification; your verification is being reviewed (Đang chờ xác thực)", HighValueThreshold)), nil
	case models.KycFailed:
		return fail(fmt.Sprintf("transfers of %d VND or more require eKYC verification; your last verification attempt was rejected (Xác thực thất bại), please resubmit your documents", HighValueThreshold)), nil
	default:
		return fail(fmt.Sprintf("transfers of %d VND or more require eKYC verification; your identity has not been verified (Chưa xác thực)", HighValueThreshold)), nil
	}
}

// startOfDay truncates t to local midnight. The daily limit is a calendar-day
// window in the evaluating host's timezone, not a rolling 24 hours.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
