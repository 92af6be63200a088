// Package config reads runtime settings from the environment, with an optional
// local .env file for development.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	AccountsTable        string `mapstructure:"DYNAMODB_ACCOUNTS_TABLE_NAME"`
	CustomersTable       string `mapstructure:"DYNAMODB_CUSTOMERS_TABLE_NAME"`
	TransactionsTable    string `mapstructure:"DYNAMODB_TRANSACTIONS_TABLE_NAME"`
	ChallengesTable      string `mapstructure:"DYNAMODB_CHALLENGES_TABLE_NAME"`
	PaymentRequestsTable string `mapstructure:"DYNAMODB_PAYMENT_REQUESTS_TABLE_NAME"`

	NotificationsQueueURL string `mapstructure:"SQS_NOTIFICATIONS_QUEUE_URL"`
	GatewayQueueURL       string `mapstructure:"SQS_GATEWAY_QUEUE_URL"`
}

// Load reads configuration from environment variables and, when present, a
// local .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")

	for _, key := range []string{
		"DYNAMODB_ACCOUNTS_TABLE_NAME",
		"DYNAMODB_CUSTOMERS_TABLE_NAME",
		"DYNAMODB_TRANSACTIONS_TABLE_NAME",
		"DYNAMODB_CHALLENGES_TABLE_NAME",
		"DYNAMODB_PAYMENT_REQUESTS_TABLE_NAME",
		"SQS_NOTIFICATIONS_QUEUE_URL",
		"SQS_GATEWAY_QUEUE_URL",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	missing := []string{}
	for key, value := range map[string]string{
		"DYNAMODB_ACCOUNTS_TABLE_NAME":         c.AccountsTable,
		"DYNAMODB_CUSTOMERS_TABLE_NAME":        c.CustomersTable,
		"DYNAMODB_TRANSACTIONS_TABLE_NAME":     c.TransactionsTable,
		"DYNAMODB_CHALLENGES_TABLE_NAME":       c.ChallengesTable,
		"DYNAMODB_PAYMENT_REQUESTS_TABLE_NAME": c.PaymentRequestsTable,
	} {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}
