package storage

import "errors"

// ErrInsufficientFunds is returned when an account balance cannot cover the requested debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountNotFound is returned when no account exists for the given account number (or owner).
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when opening an account whose number is already taken.
var ErrAccountExists = errors.New("account already exists")

// ErrCustomerNotFound is returned when no customer profile exists for the given user id.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrTransactionNotFound is returned when no transaction exists for the given id.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrTransactionNotPending is returned when a status transition is attempted on a
// transaction that already reached a terminal state.
var ErrTransactionNotPending = errors.New("transaction is not pending")

// ErrVersionConflict is returned when a conditional balance update lost a race
// against a concurrent mutation of the same account.
var ErrVersionConflict = errors.New("account was modified concurrently")

// ErrChallengeNotFound is returned when no OTP challenge exists for the transaction.
var ErrChallengeNotFound = errors.New("otp challenge not found")

// ErrChallengeUsed is returned when a challenge has already been consumed.
var ErrChallengeUsed = errors.New("otp challenge already used")

// ErrPaymentRequestNotFound is returned when no payment request exists for the given id.
var ErrPaymentRequestNotFound = errors.New("payment request not found")

// ErrPaymentNotInStatus is returned when a payment request status transition is
// attempted from a status the request is no longer in.
var ErrPaymentNotInStatus = errors.New("payment request is not in the expected status")
