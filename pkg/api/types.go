// Package api holds the request and response shapes of the HTTP surface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewTransfer is the body of a transfer initiation request.
type NewTransfer struct {
	UserId          string  `json:"user_id"`
	SourceAccountNo string  `json:"source_account_no"`
	Destination     string  `json:"destination"`
	Amount          int64   `json:"amount"`
	Kind            string  `json:"kind"`
	Description     *string `json:"description,omitempty"`
}

// ConfirmTransfer is the body of a transfer confirmation request.
type ConfirmTransfer struct {
	OtpCode string `json:"otp_code"`
}

// Transaction is the API view of a money-movement record.
type Transaction struct {
	Id              string    `json:"id"`
	UserId          string    `json:"user_id"`
	SourceAccountNo string    `json:"source_account_no"`
	Destination     string    `json:"destination,omitempty"`
	Amount          int64     `json:"amount"`
	Fee             int64     `json:"fee"`
	TotalAmount     int64     `json:"total_amount"`
	Type            string    `json:"type"`
	Kind            string    `json:"kind,omitempty"`
	Status          string    `json:"status"`
	OtpRequired     bool      `json:"otp_required"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TransferInitiated is returned after a successful initiation. The OTP code
// travels out of band; only challenge metadata is exposed.
type TransferInitiated struct {
	Transaction  Transaction `json:"transaction"`
	OtpExpiresAt time.Time   `json:"otp_expires_at"`
	OtpDelivery  string      `json:"otp_delivery"`
}

// NewAccount is the body of an account opening request.
type NewAccount struct {
	AccountNo string `json:"account_no"`
	UserId    string `json:"user_id"`
	Type      string `json:"type"`
	Balance   int64  `json:"balance"`
}

// Account is the API view of an account.
type Account struct {
	AccountNo string    `json:"account_no"`
	UserId    string    `json:"user_id"`
	Type      string    `json:"type"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Customer is the API view of a customer profile.
type Customer struct {
	UserId    string              `json:"user_id"`
	Email     openapi_types.Email `json:"email"`
	KycStatus string              `json:"kyc_status,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// PaymentRequest is the API view of an external gateway submission.
type PaymentRequest struct {
	Id            string    `json:"id"`
	TransactionId string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	RecipientBank string    `json:"recipient_bank,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
