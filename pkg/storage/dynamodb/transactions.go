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

const (
	userTransactionsIndex = "user_id-created_at-index"
	statusIndex           = "status-created_at-index"
)

// CreatePendingTransaction persists a new transaction in PENDING status,
// completing it with server-side details.
func (s *Store) CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	now := time.Now()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	tx.Status = models.PENDING
	tx.CreatedAt = now
	tx.UpdatedAt = now

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction in DynamoDB: %w", err)
	}

	return tx, nil
}

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrTransactionNotFound
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// ListTransactionsByUserID retrieves all transactions for a user, most recent first.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(userTransactionsIndex),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}

// SumCompletedTransfers aggregates the amounts of the user's completed
// transfer transactions created at or after since. Runs the full query every
// time; the daily accumulator is derived state, never cached.
func (s *Store) SumCompletedTransfers(ctx context.Context, userID string, since time.Time) (int64, error) {
	sinceStr, err := since.MarshalText()
	if err != nil {
		return 0, fmt.Errorf("failed to marshal aggregation start time: %w", err)
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(userTransactionsIndex),
		KeyConditionExpression: aws.String("user_id = :uid AND created_at >= :since"),
		FilterExpression:       aws.String("#status = :completed AND #type = :transfer"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
			"#type":   "type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":       &types.AttributeValueMemberS{Value: userID},
			":since":     &types.AttributeValueMemberS{Value: string(sinceStr)},
			":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
			":transfer":  &types.AttributeValueMemberS{Value: string(models.TypeTransfer)},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query completed transfers: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return 0, fmt.Errorf("failed to unmarshal completed transfers: %w", err)
	}

	var total int64
	for _, tx := range transactions {
		total += tx.Amount
	}
	return total, nil
}

// GetStalePendingTransactions retrieves transactions stuck in PENDING for
// longer than maxAge, i.e. initiations that never saw a verified OTP.
func (s *Store) GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	cutoff := time.Now().Add(-maxAge)
	cutoffStr, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(statusIndex),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffStr)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query stale pending transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stale pending transactions: %w", err)
	}

	return transactions, nil
}

// CompleteTransaction transitions PENDING → COMPLETED and attaches the final
// fee, total and otp_verified flag. The conditional write enforces that
// terminal states are never left.
func (s *Store) CompleteTransaction(ctx context.Context, txID string, fee, total int64) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for completion: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #status = :completed, fee = :fee, total_amount = :total, otp_verified = :verified, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
			":pending":   &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":fee":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", fee)},
			":total":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", total)},
			":verified":  &types.AttributeValueMemberBOOL{Value: true},
			":now":       nowAV,
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrTransactionNotPending
		}
		return fmt.Errorf("failed to complete transaction: %w", err)
	}

	return nil
}

// FailTransaction transitions PENDING → FAILED.
func (s *Store) FailTransaction(ctx context.Context, txID string) error {
	return s.finishTransaction(ctx, txID, models.FAILED)
}

// CancelTransaction transitions PENDING → CANCELLED.
func (s *Store) CancelTransaction(ctx context.Context, txID string) error {
	return s.finishTransaction(ctx, txID, models.CANCELLED)
}

func (s *Store) finishTransaction(ctx context.Context, txID string, terminal models.TransactionStatus) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String("SET #status = :terminal, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":terminal": &types.AttributeValueMemberS{Value: string(terminal)},
			":pending":  &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":      nowAV,
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrTransactionNotPending
		}
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	return nil
}

// PayUtility applies a utility/bill payment as one all-or-nothing batch: the
// completed transaction record and the source account debit. The batch makes
// this call's writes atomic; it provides no isolation from concurrent readers.
func (s *Store) PayUtility(ctx context.Context, tx *models.Transaction) error {
	account, err := s.GetAccount(ctx, tx.SourceAccountNo)
	if err != nil {
		return fmt.Errorf("failed to get source account for utility payment: %w", err)
	}
	if account.Balance < tx.TotalAmount {
		return storage.ErrInsufficientFunds
	}

	now := time.Now()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	tx.Status = models.COMPLETED
	tx.CreatedAt = now
	tx.UpdatedAt = now

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal utility transaction: %w", err)
	}
	totalAV, err := attributevalue.Marshal(tx.TotalAmount)
	if err != nil {
		return fmt.Errorf("failed to marshal utility total: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: debit the source account.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"account_no": &types.AttributeValueMemberS{Value: tx.SourceAccountNo},
					},
					UpdateExpression:    aws.String("SET balance = balance - :total, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :total AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":total":   totalAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 2: create the completed transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if len(tce.CancellationReasons) > 0 && tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
				return storage.ErrInsufficientFunds
			}
		}
		return fmt.Errorf("failed to execute utility payment batch: %w", err)
	}

	return nil
}
