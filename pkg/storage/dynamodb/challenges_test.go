package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
	"github.com/vietbank/transfer-core/pkg/storage/dynamodb/mocks"
)

func TestConsumeChallenge(t *testing.T) {
	txID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ChallengesTableName: "challenges"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.ConsumeChallenge(context.Background(), txID)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Used", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ChallengesTableName: "challenges"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.ConsumeChallenge(context.Background(), txID)

		assert.Equal(t, storage.ErrChallengeUsed, err)
		mockClient.AssertExpectations(t)
	})
}

func TestGetChallenge(t *testing.T) {
	txID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ChallengesTableName: "challenges"}

		challenge := &models.OtpChallenge{TransactionID: txID, UserID: "user1", Code: "482913", ExpiresAt: time.Now().Add(2 * time.Minute)}
		challengeAV, _ := attributevalue.MarshalMap(challenge)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: challengeAV}, nil)

		result, err := store.GetChallenge(context.Background(), txID)

		assert.NoError(t, err)
		assert.Equal(t, "482913", result.Code)
		assert.False(t, result.Used)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ChallengesTableName: "challenges"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetChallenge(context.Background(), txID)

		assert.Equal(t, storage.ErrChallengeNotFound, err)
		mockClient.AssertExpectations(t)
	})
}

func TestPutChallenge(t *testing.T) {
	t.Run("Overwrites Previous Challenge", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ChallengesTableName: "challenges"}

		// Plain put, no condition expression: a resend replaces the old code.
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			return input.ConditionExpression == nil
		})).Return(&dynamodb.PutItemOutput{}, nil)

		challenge := &models.OtpChallenge{TransactionID: uuid.New().String(), UserID: "user1", Code: "193847"}
		err := store.PutChallenge(context.Background(), challenge)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("PutItem Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ChallengesTableName: "challenges"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("put item failed"))

		err := store.PutChallenge(context.Background(), &models.OtpChallenge{TransactionID: uuid.New().String()})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to put challenge")
		mockClient.AssertExpectations(t)
	})
}
