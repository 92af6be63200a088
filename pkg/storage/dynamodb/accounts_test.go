package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
	"github.com/vietbank/transfer-core/pkg/storage/dynamodb/mocks"
)

func TestGetOwnedAccount(t *testing.T) {
	account := &models.Account{AccountNo: "0011001", UserID: "user1", Balance: 1_000_000, Version: 1}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		result, err := store.GetOwnedAccount(context.Background(), "0011001", "user1")

		assert.NoError(t, err)
		assert.Equal(t, account.AccountNo, result.AccountNo)
		assert.Equal(t, int64(1_000_000), result.Balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Wrong Owner Reported As Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		_, err := store.GetOwnedAccount(context.Background(), "0011001", "someone-else")

		assert.Equal(t, storage.ErrAccountNotFound, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing Account", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetOwnedAccount(context.Background(), "0011099", "user1")

		assert.Equal(t, storage.ErrAccountNotFound, err)
		mockClient.AssertExpectations(t)
	})
}

func TestDebitAccount(t *testing.T) {
	account := &models.Account{AccountNo: "0011001", UserID: "user1", Balance: 500_000, Version: 3}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.DebitAccount(context.Background(), "0011001", 200_000)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds Caught Before Write", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		err := store.DebitAccount(context.Background(), "0011001", 500_001)

		assert.Equal(t, storage.ErrInsufficientFunds, err)
		mockClient.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.DebitAccount(context.Background(), "0011001", 200_000)

		assert.Equal(t, storage.ErrVersionConflict, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("GetAccount Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get item failed"))

		err := store.DebitAccount(context.Background(), "0011001", 200_000)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get account for debit")
		mockClient.AssertExpectations(t)
	})
}

func TestCreditAccount(t *testing.T) {
	account := &models.Account{AccountNo: "0022002", UserID: "user2", Balance: 100_000, Version: 7}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.CreditAccount(context.Background(), "0022002", 500_000)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Version Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.CreditAccount(context.Background(), "0022002", 500_000)

		assert.Equal(t, storage.ErrVersionConflict, err)
		mockClient.AssertExpectations(t)
	})
}

func TestOpenAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		account := &models.Account{AccountNo: "0033003", UserID: "user3", Type: models.AccountChecking, Balance: 0}
		result, err := store.OpenAccount(context.Background(), account)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), result.Version)
		assert.False(t, result.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Account Number", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.OpenAccount(context.Background(), &models.Account{AccountNo: "0033003", UserID: "user3"})

		assert.Equal(t, storage.ErrAccountExists, err)
		mockClient.AssertExpectations(t)
	})
}
