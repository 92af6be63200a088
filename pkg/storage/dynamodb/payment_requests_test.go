package dynamodb

import (
	"context"
	"errors"
	"testing"

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

func TestAdvancePaymentRequest(t *testing.T) {
	requestID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PaymentRequestsTableName: "payment_requests"}

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			from := input.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS)
			to := input.ExpressionAttributeValues[":to"].(*types.AttributeValueMemberS)
			return from.Value == string(models.PaymentPending) && to.Value == string(models.PaymentProcessing)
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.AdvancePaymentRequest(context.Background(), requestID, models.PaymentPending, models.PaymentProcessing)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Stale Transition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PaymentRequestsTableName: "payment_requests"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.AdvancePaymentRequest(context.Background(), requestID, models.PaymentPending, models.PaymentProcessing)

		assert.ErrorIs(t, err, storage.ErrPaymentNotInStatus)
		mockClient.AssertExpectations(t)
	})

	t.Run("Client Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PaymentRequestsTableName: "payment_requests"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("dynamodb unavailable"))

		err := store.AdvancePaymentRequest(context.Background(), requestID, models.PaymentProcessing, models.PaymentCompleted)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrPaymentNotInStatus)
		mockClient.AssertExpectations(t)
	})
}

func TestGetPaymentRequest(t *testing.T) {
	requestID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PaymentRequestsTableName: "payment_requests"}

		req := &models.PaymentRequest{ID: requestID, TransactionID: uuid.New().String(), Status: models.PaymentProcessing}
		reqAV, _ := attributevalue.MarshalMap(req)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: reqAV}, nil)

		result, err := store.GetPaymentRequest(context.Background(), requestID)

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentProcessing, result.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PaymentRequestsTableName: "payment_requests"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetPaymentRequest(context.Background(), requestID)

		assert.Equal(t, storage.ErrPaymentRequestNotFound, err)
		mockClient.AssertExpectations(t)
	})
}
