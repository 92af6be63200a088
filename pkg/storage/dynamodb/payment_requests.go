package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

// CreatePaymentRequest persists a new gateway payment request in pending status.
func (s *Store) CreatePaymentRequest(ctx context.Context, req *models.PaymentRequest) (*models.PaymentRequest, error) {
	now := time.Now()
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = models.PaymentPending
	req.CreatedAt = now
	req.UpdatedAt = now

	reqAV, err := attributevalue.MarshalMap(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.PaymentRequestsTableName),
		Item:                reqAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request in DynamoDB: %w", err)
	}

	return req, nil
}

// GetPaymentRequest retrieves a payment request by its ID.
func (s *Store) GetPaymentRequest(ctx context.Context, requestID string) (*models.PaymentRequest, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": requestID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.PaymentRequestsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payment request from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrPaymentRequestNotFound
	}

	var req models.PaymentRequest
	if err := attributevalue.UnmarshalMap(result.Item, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment request: %w", err)
	}

	return &req, nil
}

// AdvancePaymentRequest moves a payment request from one status to the next.
// The conditional write makes the worker's redelivered messages idempotent: a
// request already past from is left untouched and the stale transition surfaces
// as ErrPaymentNotInStatus.
func (s *Store) AdvancePaymentRequest(ctx context.Context, requestID string, from, to models.PaymentStatus) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for payment update: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.PaymentRequestsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: requestID},
		},
		UpdateExpression:    aws.String("SET #status = :to, updated_at = :now"),
		ConditionExpression: aws.String("#status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":   &types.AttributeValueMemberS{Value: string(to)},
			":from": &types.AttributeValueMemberS{Value: string(from)},
			":now":  nowAV,
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrPaymentNotInStatus
		}
		return fmt.Errorf("failed to advance payment request: %w", err)
	}

	return nil
}
