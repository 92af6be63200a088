// Package otp issues and verifies the one-time codes that authorize pending
// transactions. A challenge stores an absolute expiry instant; any countdown
// shown to the user is cosmetic and carries no authority.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/notify"
	"github.com/vietbank/transfer-core/pkg/storage"
)

// DefaultTTL is the validity window of a freshly generated code.
const DefaultTTL = 120 * time.Second

// ErrChallengeExpired is returned when the code is submitted after the
// challenge's expiry instant, regardless of whether the code matches.
var ErrChallengeExpired = errors.New("otp challenge expired")

// ErrCodeMismatch is returned when the submitted code does not match the
// stored one.
var ErrCodeMismatch = errors.New("otp code does not match")

// codeSpan is the size of the [100000, 999999] code range.
var codeSpan = big.NewInt(900_000)

// Service generates, delivers and verifies OTP challenges.
type Service struct {
	store    storage.ChallengeStore
	notifier notify.Notifier
	logger   *slog.Logger
	ttl      time.Duration
	now      func() time.Time
}

// New creates an OTP Service with the default validity window.
func New(store storage.ChallengeStore, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

// newCode draws a 6-digit code uniformly from [100000, 999999].
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("failed to draw random code: %w", err)
	}
	return fmt.Sprintf("%d", 100_000+n.Int64()), nil
}

// Generate creates and persists a fresh challenge for the transaction,
// replacing any prior one, then dispatches the code out-of-band. Delivery is
// fire-and-forget: its outcome is recorded on the challenge but never fails
// the generation.
func (s *Service) Generate(ctx context.Context, txID, userID, deliveryAddress string) (*models.OtpChallenge, error) {
	code, err := newCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	challenge := &models.OtpChallenge{
		TransactionID:   txID,
		UserID:          userID,
		Code:            code,
		DeliveryAddress: deliveryAddress,
		DeliveryStatus:  models.DeliveryPending,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
		TTL:             now.Add(24 * time.Hour).Unix(),
	}

	if err := s.store.PutChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to persist otp challenge: %w", err)
	}

	s.deliver(ctx, challenge)
	return challenge, nil
}

// Resend discards the prior challenge and issues a fresh one. Attempt counters
// are not preserved; a resent challenge starts clean.
func (s *Service) Resend(ctx context.Context, txID, userID, deliveryAddress string) (*models.OtpChallenge, error) {
	// PutChallenge overwrites the record under the same key, which is what
	// invalidates the prior code.
	return s.Generate(ctx, txID, userID, deliveryAddress)
}

// Verify checks a submitted code against the stored challenge. Rejections are
// terminal for this challenge instance; the caller must request a resend to
// get a fresh one. Expired and already-used challenges are rejected before the
// code is even compared.
func (s *Service) Verify(ctx context.Context, txID, submitted string) error {
	challenge, err := s.store.GetChallenge(ctx, txID)
	if err != nil {
		return err
	}
	if challenge.Used {
		return storage.ErrChallengeUsed
	}
	if s.now().After(challenge.ExpiresAt) {
		return ErrChallengeExpired
	}
	if challenge.Code != submitted {
		return ErrCodeMismatch
	}

	// The conditional write makes consumption atomic: if two verifications
	// race past the checks above, only one gets through here.
	if err := s.store.ConsumeChallenge(ctx, txID); err != nil {
		return err
	}
	return nil
}

// deliver hands the code to the notification channel and records the outcome.
func (s *Service) deliver(ctx context.Context, challenge *models.OtpChallenge) {
	if challenge.DeliveryAddress == "" {
		s.logger.Warn("otp challenge has no delivery address", "transaction_id", challenge.TransactionID)
		return
	}

	msg := notify.Message{
		To:      challenge.DeliveryAddress,
		Subject: "Transaction verification code",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d seconds.", challenge.Code, int(s.ttl.Seconds())),
	}

	status := models.DeliverySent
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("failed to dispatch otp code", "transaction_id", challenge.TransactionID, "error", err)
		status = models.DeliveryFailed
	}

	if err := s.store.SetDeliveryStatus(ctx, challenge.TransactionID, status); err != nil {
		s.logger.Warn("failed to record otp delivery status", "transaction_id", challenge.TransactionID, "error", err)
	}
}
