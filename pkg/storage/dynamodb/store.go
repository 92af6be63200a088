package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/vietbank/transfer-core/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client the store uses.
// *dynamodb.Client satisfies it; tests substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the storage interfaces using AWS DynamoDB.
type Store struct {
	Client                   DynamoDBAPI
	AccountsTableName        string
	CustomersTableName       string
	TransactionsTableName    string
	ChallengesTableName      string
	PaymentRequestsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, customersTable, transactionsTable, challengesTable, paymentRequestsTable string) *Store {
	return &Store{
		Client:                   client,
		AccountsTableName:        accountsTable,
		CustomersTableName:       customersTable,
		TransactionsTableName:    transactionsTable,
		ChallengesTableName:      challengesTable,
		PaymentRequestsTableName: paymentRequestsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
