package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

// PutChallenge writes the challenge keyed by its transaction ID. An existing
// challenge for the same transaction is overwritten, which is how a resend
// invalidates the previous code.
func (s *Store) PutChallenge(ctx context.Context, challenge *models.OtpChallenge) error {
	challengeAV, err := attributevalue.MarshalMap(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.ChallengesTableName),
		Item:      challengeAV,
	})
	if err != nil {
		return fmt.Errorf("failed to put challenge in DynamoDB: %w", err)
	}

	return nil
}

// GetChallenge retrieves the challenge for a transaction.
func (s *Store) GetChallenge(ctx context.Context, txID string) (*models.OtpChallenge, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"transaction_id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.ChallengesTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrChallengeNotFound
	}

	var challenge models.OtpChallenge
	if err := attributevalue.UnmarshalMap(result.Item, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	return &challenge, nil
}

// ConsumeChallenge marks the challenge as used. The conditional write ensures
// a code is consumed at most once even under concurrent verification attempts.
func (s *Store) ConsumeChallenge(ctx context.Context, txID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ChallengesTableName),
		Key: map[string]types.AttributeValue{
			"transaction_id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #used = :true"),
		ConditionExpression: aws.String("#used = :false"),
		ExpressionAttributeNames: map[string]string{
			"#used": "used",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrChallengeUsed
		}
		return fmt.Errorf("failed to consume challenge: %w", err)
	}

	return nil
}

// SetDeliveryStatus records the outcome of dispatching the OTP code.
func (s *Store) SetDeliveryStatus(ctx context.Context, txID string, status models.DeliveryStatus) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ChallengesTableName),
		Key: map[string]types.AttributeValue{
			"transaction_id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression: aws.String("SET delivery_status = :status"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update challenge delivery status: %w", err)
	}

	return nil
}

// DeleteChallenge removes the challenge for a transaction. Deleting a missing
// challenge is not an error.
func (s *Store) DeleteChallenge(ctx context.Context, txID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ChallengesTableName),
		Key: map[string]types.AttributeValue{
			"transaction_id": &types.AttributeValueMemberS{Value: txID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete challenge from DynamoDB: %w", err)
	}

	return nil
}
