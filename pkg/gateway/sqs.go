package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/vietbank/transfer-core/pkg/models"
)

// SQSDispatcher implements the Dispatcher interface by enqueueing payment
// requests on the queue consumed by the gateway worker.
type SQSDispatcher struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSDispatcher creates a new SQSDispatcher.
func NewSQSDispatcher(client *sqs.Client, queueURL string) *SQSDispatcher {
	return &SQSDispatcher{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Dispatcher = (*SQSDispatcher)(nil)

// Enqueue hands the payment request to the worker queue.
func (d *SQSDispatcher) Enqueue(ctx context.Context, req *models.PaymentRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal payment request: %w", err)
	}

	_, err = d.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(d.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue payment request: %w", err)
	}

	return nil
}
