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

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
)

const accountOwnerIndex = "user_id-index"

// GetAccount retrieves an account from DynamoDB by its account number.
func (s *Store) GetAccount(ctx context.Context, accountNo string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account_no": accountNo})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account number: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrAccountNotFound
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// GetOwnedAccount retrieves an account and checks it belongs to the given
// user. Ownership failures are indistinguishable from a missing account on
// purpose: the caller learns nothing about other users' accounts.
func (s *Store) GetOwnedAccount(ctx context.Context, accountNo, userID string) (*models.Account, error) {
	account, err := s.GetAccount(ctx, accountNo)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, storage.ErrAccountNotFound
	}
	return account, nil
}

// ListAccountsByUserID retrieves every account held by a user via the owner GSI.
func (s *Store) ListAccountsByUserID(ctx context.Context, userID string) ([]models.Account, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.AccountsTableName),
		IndexName:              aws.String(accountOwnerIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user: %w", err)
	}

	var accounts []models.Account
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}

	return accounts, nil
}

// OpenAccount creates a new account record with a fresh version counter.
func (s *Store) OpenAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	account.Version = 1
	account.CreatedAt = time.Now()

	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Item:                accountAV,
		ConditionExpression: aws.String("attribute_not_exists(account_no)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// DebitAccount subtracts amount from the balance. The update is conditional on
// both the balance covering the debit and the version matching the read, so a
// concurrent mutation makes this fail rather than overdraw.
func (s *Store) DebitAccount(ctx context.Context, accountNo string, amount int64) error {
	account, err := s.GetAccount(ctx, accountNo)
	if err != nil {
		return fmt.Errorf("failed to get account for debit: %w", err)
	}
	if account.Balance < amount {
		return storage.ErrInsufficientFunds
	}

	amountAV, err := attributevalue.Marshal(amount)
	if err != nil {
		return fmt.Errorf("failed to marshal debit amount: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key: map[string]types.AttributeValue{
			"account_no": &types.AttributeValueMemberS{Value: accountNo},
		},
		UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
		ConditionExpression: aws.String("balance >= :amount AND version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount":  amountAV,
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to debit account: %w", err)
	}

	return nil
}

// CreditAccount adds amount to the balance under the same version guard.
func (s *Store) CreditAccount(ctx context.Context, accountNo string, amount int64) error {
	account, err := s.GetAccount(ctx, accountNo)
	if err != nil {
		return fmt.Errorf("failed to get account for credit: %w", err)
	}

	amountAV, err := attributevalue.Marshal(amount)
	if err != nil {
		return fmt.Errorf("failed to marshal credit amount: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key: map[string]types.AttributeValue{
			"account_no": &types.AttributeValueMemberS{Value: accountNo},
		},
		UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount":  amountAV,
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to credit account: %w", err)
	}

	return nil
}
