// Package gateway adapts the transfer pipeline to the external payment rail.
// Submissions are recorded first and enqueued second: the durable record is
// the source of truth, the queue only wakes the out-of-process worker.
package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

// Dispatcher hands a recorded payment request to the out-of-process worker.
type Dispatcher interface {
	Enqueue(ctx context.Context, req *models.PaymentRequest) error
}

// Adapter submits external transfers to the payment gateway and reports their
// progress.
type Adapter struct {
	store      storage.PaymentRequestStore
	dispatcher Dispatcher
	logger     *slog.Logger
}

// New returns an Adapter writing through the given store and dispatcher.
func New(store storage.PaymentRequestStore, dispatcher Dispatcher, logger *slog.Logger) *Adapter {
	return &Adapter{store: store, dispatcher: dispatcher, logger: logger}
}

// Submit records a pending payment request for a completed external transfer
// and enqueues it for the gateway worker. The enqueue is fire-and-forget: if it
// fails the record stands and the failure is logged at the highest severity so
// operations can replay it, but the submission itself still succeeds.
func (a *Adapter) Submit(ctx context.Context, txID string, amount int64, method, recipientBank string) (*models.PaymentRequest, error) {
	req := &models.PaymentRequest{
		TransactionID: txID,
		Amount:        amount,
		Method:        method,
		RecipientBank: recipientBank,
	}

	req, err := a.store.CreatePaymentRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment request: %w", err)
	}

	if err := a.dispatcher.Enqueue(ctx, req); err != nil {
		a.logger.Error("CRITICAL: payment request recorded but not enqueued",
			"payment_request_id", req.ID,
			"transaction_id", txID,
			"error", err)
	}

	return req, nil
}

// PollStatus reports the current state of a payment request. A request sitting
// in processing is a valid answer; the core never times it out.
func (a *Adapter) PollStatus(ctx context.Context, requestID string) (models.PaymentStatus, error) {
	req, err := a.store.GetPaymentRequest(ctx, requestID)
	if err != nil {
		return "", err
	}
	return req.Status, nil
}
