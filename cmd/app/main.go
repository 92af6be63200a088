package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/vietbank/transfer-core/pkg/config"
	"github.com/vietbank/transfer-core/pkg/eligibility"
	"github.com/vietbank/transfer-core/pkg/gateway"
	"github.com/vietbank/transfer-core/pkg/handlers"
	"github.com/vietbank/transfer-core/pkg/middleware"
	"github.com/vietbank/transfer-core/pkg/notify"
	"github.com/vietbank/transfer-core/pkg/otp"
	dydbstore "github.com/vietbank/transfer-core/pkg/storage/dynamodb"
	"github.com/vietbank/transfer-core/pkg/transfer"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	sqsClient := sqs.NewFromConfig(awsCfg)

	store := dydbstore.New(dbClient,
		cfg.AccountsTable,
		cfg.CustomersTable,
		cfg.TransactionsTable,
		cfg.ChallengesTable,
		cfg.PaymentRequestsTable,
	)

	// OTP delivery degrades to a no-op when no queue is configured.
	var notifier notify.Notifier = &notify.NoOpNotifier{}
	if cfg.NotificationsQueueURL != "" {
		notifier = notify.NewSQSNotifier(sqsClient, cfg.NotificationsQueueURL)
	}

	challenger := otp.New(store, notifier, logger)
	verifier := eligibility.New(store)
	adapter := gateway.New(store, gateway.NewSQSDispatcher(sqsClient, cfg.GatewayQueueURL), logger)
	pipeline := transfer.New(store, verifier, challenger, adapter, logger)

	handler := handlers.NewApiHandler(store, pipeline)

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	handler.Routes(router)

	logger.Info("starting server", "port", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
