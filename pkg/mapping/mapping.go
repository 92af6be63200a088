package mapping

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/vietbank/transfer-core/pkg/api"
	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/transfer"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:              tx.ID,
		UserId:          tx.UserID,
		SourceAccountNo: tx.SourceAccountNo,
		Destination:     tx.Destination,
		Amount:          tx.Amount,
		Fee:             tx.Fee,
		TotalAmount:     tx.TotalAmount,
		Type:            string(tx.Type),
		Kind:            string(tx.Kind),
		Status:          string(tx.Status),
		OtpRequired:     tx.OtpRequired,
		Description:     tx.Description,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

// ToInitiateRequest converts an API NewTransfer to the pipeline's request.
func ToInitiateRequest(newTransfer *api.NewTransfer) transfer.InitiateRequest {
	req := transfer.InitiateRequest{
		UserID:          newTransfer.UserId,
		SourceAccountNo: newTransfer.SourceAccountNo,
		Destination:     newTransfer.Destination,
		Amount:          newTransfer.Amount,
		Kind:            models.TransferKind(newTransfer.Kind),
	}
	if newTransfer.Description != nil {
		req.Description = *newTransfer.Description
	}
	return req
}

// ToApiInitiation converts the pipeline's initiation outcome to its API shape.
func ToApiInitiation(initiation *transfer.Initiation) *api.TransferInitiated {
	return &api.TransferInitiated{
		Transaction:  *ToApiTransaction(initiation.Transaction),
		OtpExpiresAt: initiation.OtpExpiresAt,
		OtpDelivery:  string(initiation.OtpDelivery),
	}
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		AccountNo: account.AccountNo,
		UserId:    account.UserID,
		Type:      string(account.Type),
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}
}

// ToDomainNewAccount converts an API NewAccount to a domain Account model.
func ToDomainNewAccount(newAccount *api.NewAccount) *models.Account {
	return &models.Account{
		AccountNo: newAccount.AccountNo,
		UserID:    newAccount.UserId,
		Type:      models.AccountType(newAccount.Type),
		Balance:   newAccount.Balance,
	}
}

// ToApiCustomer converts a domain Customer model to an API Customer model.
func ToApiCustomer(customer *models.Customer) *api.Customer {
	return &api.Customer{
		UserId:    customer.UserID,
		Email:     openapi_types.Email(customer.Email),
		KycStatus: string(customer.KycStatus),
		CreatedAt: customer.CreatedAt,
	}
}

// ToApiPaymentRequest converts a domain PaymentRequest to its API shape.
func ToApiPaymentRequest(req *models.PaymentRequest) *api.PaymentRequest {
	return &api.PaymentRequest{
		Id:            req.ID,
		TransactionId: req.TransactionID,
		Amount:        req.Amount,
		Method:        req.Method,
		RecipientBank: req.RecipientBank,
		Status:        string(req.Status),
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
	}
}
