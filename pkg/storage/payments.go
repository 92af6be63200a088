package storage

import (
	"context"

	"github.com/vietbank/transfer-core/pkg/models"
)

// PaymentRequestStore defines the interface for payment gateway request records.
type PaymentRequestStore interface {
	// CreatePaymentRequest persists a new gateway request in PENDING status.
	CreatePaymentRequest(ctx context.Context, request *models.PaymentRequest) (*models.PaymentRequest, error)

	// GetPaymentRequest retrieves a request by its id.
	GetPaymentRequest(ctx context.Context, requestID string) (*models.PaymentRequest, error)

	// AdvancePaymentRequest transitions a request from one status to another.
	// The write is conditional on the current status matching from.
	AdvancePaymentRequest(ctx context.Context, requestID string, from, to models.PaymentStatus) error
}
