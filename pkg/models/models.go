package models

import (
	"time"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountMortgage AccountType = "mortgage"
)

// TransactionStatus defines the possible states of a transaction.
// A transaction moves from PENDING to exactly one terminal state.
type TransactionStatus string

const (
	PENDING   TransactionStatus = "pending"
	COMPLETED TransactionStatus = "completed"
	FAILED    TransactionStatus = "failed"
	CANCELLED TransactionStatus = "cancelled"
)

// TransactionType classifies what a transaction does to the balance.
type TransactionType string

const (
	TypeTransfer    TransactionType = "transfer"
	TypeDeposit     TransactionType = "deposit"
	TypeWithdraw    TransactionType = "withdraw"
	TypeBillPayment TransactionType = "bill_payment"
	TypeUtility     TransactionType = "utility"
)

// TransferKind distinguishes transfers that stay inside the bank from those
// routed through the payment gateway.
type TransferKind string

const (
	TransferInternal TransferKind = "internal"
	TransferExternal TransferKind = "external"
)

// KycStatus is the customer's eKYC verification state. An empty value means
// the customer never started verification.
type KycStatus string

const (
	KycVerified KycStatus = "verified"
	KycPending  KycStatus = "pending"
	KycFailed   KycStatus = "failed"
)

// DeliveryStatus tracks the out-of-band dispatch of an OTP code.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// PaymentStatus is the state of an external payment request as reported by the
// gateway worker. PROCESSING is a valid resting state; the core never times it out.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

// Account represents a customer account document. Balance is in whole VND.
// Mortgage balances are negative by convention. Version is bumped on every
// balance mutation and guards conditional updates against stale reads.
type Account struct {
	AccountNo      string      `json:"account_no" dynamodbav:"account_no"`
	UserID         string      `json:"user_id" dynamodbav:"user_id"`
	Type           AccountType `json:"type" dynamodbav:"type"`
	Balance        int64       `json:"balance" dynamodbav:"balance"`
	InterestRate   float64     `json:"interest_rate,omitempty" dynamodbav:"interest_rate,omitempty"`
	MonthlyPayment int64       `json:"monthly_payment,omitempty" dynamodbav:"monthly_payment,omitempty"`
	Version        int64       `json:"version" dynamodbav:"version"`
	CreatedAt      time.Time   `json:"created_at" dynamodbav:"created_at"`
}

// Customer holds the identity-level attributes the pipeline consults: the
// delivery address for OTP codes and the eKYC state gating high-value transfers.
type Customer struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	KycStatus KycStatus `json:"kyc_status,omitempty" dynamodbav:"kyc_status,omitempty"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transaction represents a money-movement record. Destination holds an account
// number for internal transfers and a free-text recipient label otherwise.
type Transaction struct {
	ID              string            `dynamodbav:"id"`
	UserID          string            `dynamodbav:"user_id"`
	SourceAccountNo string            `dynamodbav:"source_account_no"`
	Destination     string            `dynamodbav:"destination"`
	Amount          int64             `dynamodbav:"amount"`
	Fee             int64             `dynamodbav:"fee"`
	TotalAmount     int64             `dynamodbav:"total_amount"`
	Type            TransactionType   `dynamodbav:"type"`
	Kind            TransferKind      `dynamodbav:"kind,omitempty"`
	Status          TransactionStatus `dynamodbav:"status"`
	OtpRequired     bool              `dynamodbav:"otp_required"`
	OtpVerified     bool              `dynamodbav:"otp_verified"`
	Description     string            `dynamodbav:"description,omitempty"`
	CreatedAt       time.Time         `dynamodbav:"created_at"`
	UpdatedAt       time.Time         `dynamodbav:"updated_at"`
	TTL             int64             `dynamodbav:"ttl,omitempty"`
}

// OtpChallenge is the single valid challenge for a pending transaction, keyed
// by the transaction id. ExpiresAt is an absolute instant; verification always
// compares against it rather than any client-held countdown.
type OtpChallenge struct {
	TransactionID   string         `dynamodbav:"transaction_id"`
	UserID          string         `dynamodbav:"user_id"`
	Code            string         `dynamodbav:"code"`
	DeliveryAddress string         `dynamodbav:"delivery_address,omitempty"`
	DeliveryStatus  DeliveryStatus `dynamodbav:"delivery_status"`
	Used            bool           `dynamodbav:"used"`
	CreatedAt       time.Time      `dynamodbav:"created_at"`
	ExpiresAt       time.Time      `dynamodbav:"expires_at"`
	TTL             int64          `dynamodbav:"ttl,omitempty"`
}

// PaymentRequest records a submission to the external payment gateway. The
// gateway worker advances its status out of process; the core only polls.
type PaymentRequest struct {
	ID            string        `json:"id" dynamodbav:"id"`
	TransactionID string        `json:"transaction_id" dynamodbav:"transaction_id"`
	Amount        int64         `json:"amount" dynamodbav:"amount"`
	Method        string        `json:"method" dynamodbav:"method"`
	RecipientBank string        `json:"recipient_bank" dynamodbav:"recipient_bank"`
	Status        PaymentStatus `json:"status" dynamodbav:"status"`
	CreatedAt     time.Time     `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" dynamodbav:"updated_at"`
}
