// Package handlers exposes the transfer pipeline over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vietbank/transfer-core/pkg/api"
	"github.com/vietbank/transfer-core/pkg/mapping"
	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/otp"
	"github.com/vietbank/transfer-core/pkg/storage"
	"github.com/vietbank/transfer-core/pkg/transfer"
)

// TransferService is the slice of the pipeline the HTTP surface drives.
type TransferService interface {
	Initiate(ctx context.Context, req transfer.InitiateRequest) (*transfer.Initiation, error)
	Confirm(ctx context.Context, txID, code string) (*models.Transaction, error)
	ResendCode(ctx context.Context, txID string) (*transfer.Initiation, error)
}

// ApiHandler holds the application's dependencies for the HTTP surface.
type ApiHandler struct {
	Store    storage.ApiStore
	Transfer TransferService
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(store storage.ApiStore, service TransferService) *ApiHandler {
	return &ApiHandler{Store: store, Transfer: service}
}

// Routes mounts every endpoint on the given router.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Post("/transfers", h.InitiateTransfer)
	r.Post("/transfers/{transactionId}/confirm", h.ConfirmTransfer)
	r.Post("/transfers/{transactionId}/resend-otp", h.ResendOtp)
	r.Get("/transactions/{transactionId}", h.GetTransactionById)
	r.Get("/users/{userId}/transactions", h.ListUserTransactions)
	r.Get("/customers/{userId}", h.GetCustomerById)
	r.Get("/accounts/{accountNo}", h.GetAccountByNo)
	r.Post("/accounts", h.OpenAccount)
	r.Get("/payments/{requestId}", h.GetPaymentRequestById)
}

// InitiateTransfer handles the logic for starting a new transfer.
func (h *ApiHandler) InitiateTransfer(w http.ResponseWriter, r *http.Request) {
	var newTransfer api.NewTransfer
	if err := json.NewDecoder(r.Body).Decode(&newTransfer); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	initiation, err := h.Transfer.Initiate(r.Context(), mapping.ToInitiateRequest(&newTransfer))
	if err != nil {
		writeTransferError(w, err, "Failed to initiate transfer")
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiInitiation(initiation))
}

// ConfirmTransfer handles the OTP confirmation that commits a transfer.
func (h *ApiHandler) ConfirmTransfer(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	var confirm api.ConfirmTransfer
	if err := json.NewDecoder(r.Body).Decode(&confirm); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Transfer.Confirm(r.Context(), transactionId, confirm.OtpCode)
	if err != nil {
		writeTransferError(w, err, "Failed to confirm transfer")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// ResendOtp re-issues the challenge for a pending transfer.
func (h *ApiHandler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	initiation, err := h.Transfer.ResendCode(r.Context(), transactionId)
	if err != nil {
		writeTransferError(w, err, "Failed to resend code")
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiInitiation(initiation))
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *ApiHandler) GetTransactionById(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	domainTx, err := h.Store.GetTransaction(r.Context(), transactionId)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTransaction(domainTx))
}

// ListUserTransactions returns a user's transaction history, most recent first.
func (h *ApiHandler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")

	domainTxs, err := h.Store.ListTransactionsByUserID(r.Context(), userId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}

	respondJSON(w, http.StatusOK, apiTxs)
}

// GetCustomerById handles the logic for retrieving a customer profile.
func (h *ApiHandler) GetCustomerById(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")

	customer, err := h.Store.GetCustomer(r.Context(), userId)
	if err != nil {
		if errors.Is(err, storage.ErrCustomerNotFound) {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve customer: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiCustomer(customer))
}

// GetAccountByNo handles the logic for retrieving an account.
func (h *ApiHandler) GetAccountByNo(w http.ResponseWriter, r *http.Request) {
	accountNo := chi.URLParam(r, "accountNo")

	account, err := h.Store.GetAccount(r.Context(), accountNo)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve account: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiAccount(account))
}

// OpenAccount handles the logic for opening a new account.
func (h *ApiHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Store.OpenAccount(r.Context(), mapping.ToDomainNewAccount(&newAccount))
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			http.Error(w, "Account with this number already exists", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to open account: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiAccount(created))
}

// GetPaymentRequestById reports the gateway status of an external transfer.
func (h *ApiHandler) GetPaymentRequestById(w http.ResponseWriter, r *http.Request) {
	requestId := chi.URLParam(r, "requestId")

	req, err := h.Store.GetPaymentRequest(r.Context(), requestId)
	if err != nil {
		if errors.Is(err, storage.ErrPaymentRequestNotFound) {
			http.Error(w, "Payment request not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve payment request: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiPaymentRequest(req))
}

// writeTransferError maps pipeline errors onto the HTTP status taxonomy.
func writeTransferError(w http.ResponseWriter, err error, fallback string) {
	var rejection *transfer.RejectionError
	switch {
	case errors.As(err, &rejection):
		http.Error(w, rejection.Reason, http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
	case errors.Is(err, otp.ErrCodeMismatch):
		http.Error(w, "Incorrect OTP code", http.StatusUnprocessableEntity)
	case errors.Is(err, otp.ErrChallengeExpired):
		http.Error(w, "OTP code expired, request a new one", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrChallengeUsed):
		http.Error(w, "OTP code already used, request a new one", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrChallengeNotFound):
		http.Error(w, "No active challenge for this transaction", http.StatusNotFound)
	case errors.Is(err, storage.ErrTransactionNotFound):
		http.Error(w, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrTransactionNotPending):
		http.Error(w, "Transaction is no longer pending", http.StatusConflict)
	case errors.Is(err, storage.ErrVersionConflict):
		http.Error(w, "Concurrent update, please retry", http.StatusConflict)
	case errors.Is(err, storage.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	default:
		http.Error(w, fmt.Sprintf("%s: %v", fallback, err), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
