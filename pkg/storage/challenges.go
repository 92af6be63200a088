package storage

import (
	"context"

	"github.com/vietbank/transfer-core/pkg/models"
)

// ChallengeStore defines the interface for OTP challenge documents. A challenge
// is keyed by its transaction id, so at most one exists per transaction;
// PutChallenge replaces any prior one, which is how resend invalidates old codes.
type ChallengeStore interface {
	// PutChallenge persists a challenge, overwriting any existing challenge for
	// the same transaction.
	PutChallenge(ctx context.Context, challenge *models.OtpChallenge) error

	// GetChallenge retrieves the challenge for a transaction.
	GetChallenge(ctx context.Context, txID string) (*models.OtpChallenge, error)

	// ConsumeChallenge marks the challenge used. The write is conditional on
	// the challenge being unused, so only one caller can ever consume it;
	// losers get ErrChallengeUsed.
	ConsumeChallenge(ctx context.Context, txID string) error

	// SetDeliveryStatus records the outcome of the out-of-band dispatch.
	// Best-effort bookkeeping; failures here never gate the challenge itself.
	SetDeliveryStatus(ctx context.Context, txID string, status models.DeliveryStatus) error

	// DeleteChallenge removes the challenge for a transaction, if any.
	DeleteChallenge(ctx context.Context, txID string) error
}
