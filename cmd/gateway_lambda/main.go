package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/storage"
	dydbstore "github.com/vietbank/transfer-core/pkg/storage/dynamodb"
)

var store storage.Storage

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	paymentRequestsTable := os.Getenv("DYNAMODB_PAYMENT_REQUESTS_TABLE_NAME")
	if paymentRequestsTable == "" {
		log.Fatal("DYNAMODB_PAYMENT_REQUESTS_TABLE_NAME environment variable not set")
	}

	store = dydbstore.New(dbClient,
		os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CUSTOMERS_TABLE_NAME"),
		os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CHALLENGES_TABLE_NAME"),
		paymentRequestsTable,
	)
}

// HandleRequest picks up submitted payment requests and hands them to the
// external rail, advancing each record from pending to processing. The
// conditional transition makes redelivered messages harmless.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var req models.PaymentRequest
		if err := json.Unmarshal([]byte(message.Body), &req); err != nil {
			log.Printf("ERROR: failed to unmarshal payment request from SQS message %s: %v", message.MessageId, err)
			return err
		}

		err := store.AdvancePaymentRequest(ctx, req.ID, models.PaymentPending, models.PaymentProcessing)
		if err != nil {
			if errors.Is(err, storage.ErrPaymentNotInStatus) {
				log.Printf("Payment request %s already past pending, skipping", req.ID)
				continue
			}
			log.Printf("ERROR: failed to advance payment request %s: %v", req.ID, err)
			return err
		}

		log.Printf("Payment request %s submitted to the gateway", req.ID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
