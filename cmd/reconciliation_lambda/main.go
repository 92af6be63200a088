package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/vietbank/transfer-core/pkg/storage"
	dydbstore "github.com/vietbank/transfer-core/pkg/storage/dynamodb"
)

var store storage.Storage

// Pending transactions older than this never saw a verified OTP; their
// challenge expired long ago and they will not be confirmed.
const stalePendingThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)

	store = dydbstore.New(dbClient,
		os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CUSTOMERS_TABLE_NAME"),
		os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		os.Getenv("DYNAMODB_CHALLENGES_TABLE_NAME"),
		os.Getenv("DYNAMODB_PAYMENT_REQUESTS_TABLE_NAME"),
	)
}

// HandleRequest is triggered by an EventBridge Schedule. It cancels pending
// transactions that were abandoned before confirmation and removes their
// challenges.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation of abandoned pending transactions...")

	staleTxs, err := store.GetStalePendingTransactions(ctx, stalePendingThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stale pending transactions: %v", err)
		return err
	}

	if len(staleTxs) == 0 {
		log.Println("No abandoned transactions found.")
		return nil
	}

	log.Printf("Found %d abandoned transactions. Cancelling them...", len(staleTxs))

	for _, tx := range staleTxs {
		if err := store.CancelTransaction(ctx, tx.ID); err != nil {
			if errors.Is(err, storage.ErrTransactionNotPending) {
				// Confirmed or cancelled between the query and this write.
				continue
			}
			log.Printf("ERROR: failed to cancel transaction %s: %v", tx.ID, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}

		if err := store.DeleteChallenge(ctx, tx.ID); err != nil {
			log.Printf("ERROR: failed to delete challenge for transaction %s: %v", tx.ID, err)
		}

		log.Printf("Cancelled abandoned transaction %s", tx.ID)
	}

	log.Println("Reconciliation finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
