package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

// GetCustomer retrieves a customer profile from DynamoDB by user id.
func (s *Store) GetCustomer(ctx context.Context, userID string) (*models.Customer, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customer user id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.CustomersTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get customer from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrCustomerNotFound
	}

	var customer models.Customer
	if err := attributevalue.UnmarshalMap(result.Item, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}

	return &customer, nil
}
