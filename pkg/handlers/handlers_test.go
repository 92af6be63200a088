package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vietbank/transfer-core/pkg/api"
	"github.com/vietbank/transfer-core/pkg/models"
	"github.com/vietbank/transfer-core/pkg/otp"
	"github.com/vietbank/transfer-core/pkg/storage"
	"github.com/vietbank/transfer-core/pkg/storage/mocks"
	"github.com/vietbank/transfer-core/pkg/transfer"
)

type stubTransferService struct {
	initiation *transfer.Initiation
	confirmed  *models.Transaction
	err        error
}

func (s *stubTransferService) Initiate(_ context.Context, _ transfer.InitiateRequest) (*transfer.Initiation, error) {
	return s.initiation, s.err
}

func (s *stubTransferService) Confirm(_ context.Context, _ string, _ string) (*models.Transaction, error) {
	return s.confirmed, s.err
}

func (s *stubTransferService) ResendCode(_ context.Context, _ string) (*transfer.Initiation, error) {
	return s.initiation, s.err
}

func newRouter(h *ApiHandler) http.Handler {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestInitiateTransfer(t *testing.T) {
	newTransfer := api.NewTransfer{
		UserId:          "user1",
		SourceAccountNo: "0011001",
		Destination:     "0022002",
		Amount:          500_000,
		Kind:            "internal",
	}

	t.Run("Success", func(t *testing.T) {
		service := &stubTransferService{initiation: &transfer.Initiation{
			Transaction:  &models.Transaction{ID: uuid.New().String(), Status: models.PENDING, Amount: 500_000, TotalAmount: 500_000, OtpRequired: true},
			OtpExpiresAt: time.Now().Add(2 * time.Minute),
			OtpDelivery:  models.DeliverySent,
		}}
		h := NewApiHandler(new(mocks.ApiStore), service)

		body, _ := json.Marshal(newTransfer)
		req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var initiated api.TransferInitiated
		json.Unmarshal(rr.Body.Bytes(), &initiated)
		assert.Equal(t, "pending", initiated.Transaction.Status)
		assert.Equal(t, "sent", initiated.OtpDelivery)
		assert.True(t, initiated.Transaction.OtpRequired)
	})

	t.Run("Business Rejection Is 422", func(t *testing.T) {
		service := &stubTransferService{err: &transfer.RejectionError{Reason: "minimum transfer amount is 10000 VND"}}
		h := NewApiHandler(new(mocks.ApiStore), service)

		body, _ := json.Marshal(newTransfer)
		req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "minimum transfer amount is 10000 VND")
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		h := NewApiHandler(new(mocks.ApiStore), &stubTransferService{})

		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("not-json"))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestConfirmTransfer(t *testing.T) {
	txID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		service := &stubTransferService{confirmed: &models.Transaction{ID: txID, Status: models.COMPLETED, Amount: 500_000, TotalAmount: 500_000}}
		h := NewApiHandler(new(mocks.ApiStore), service)

		body, _ := json.Marshal(api.ConfirmTransfer{OtpCode: "428117"})
		req := httptest.NewRequest(http.MethodPost, "/transfers/"+txID+"/confirm", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Transaction
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "completed", returned.Status)
	})

	t.Run("Wrong Code Is 422", func(t *testing.T) {
		service := &stubTransferService{err: otp.ErrCodeMismatch}
		h := NewApiHandler(new(mocks.ApiStore), service)

		body, _ := json.Marshal(api.ConfirmTransfer{OtpCode: "000000"})
		req := httptest.NewRequest(http.MethodPost, "/transfers/"+txID+"/confirm", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Incorrect OTP code")
	})

	t.Run("Settled Transaction Is 409", func(t *testing.T) {
		service := &stubTransferService{err: storage.ErrTransactionNotPending}
		h := NewApiHandler(new(mocks.ApiStore), service)

		body, _ := json.Marshal(api.ConfirmTransfer{OtpCode: "428117"})
		req := httptest.NewRequest(http.MethodPost, "/transfers/"+txID+"/confirm", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Insufficient Funds Is 422", func(t *testing.T) {
		service := &stubTransferService{err: storage.ErrInsufficientFunds}
		h := NewApiHandler(new(mocks.ApiStore), service)

		body, _ := json.Marshal(api.ConfirmTransfer{OtpCode: "428117"})
		req := httptest.NewRequest(http.MethodPost, "/transfers/"+txID+"/confirm", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "Insufficient funds")
	})
}

func TestGetTransactionById(t *testing.T) {
	txID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetTransaction", mock.Anything, txID).Return(&models.Transaction{ID: txID, Status: models.COMPLETED}, nil)
		h := NewApiHandler(mockStore, &stubTransferService{})

		req := httptest.NewRequest(http.MethodGet, "/transactions/"+txID, nil)
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetTransaction", mock.Anything, txID).Return(nil, storage.ErrTransactionNotFound)
		h := NewApiHandler(mockStore, &stubTransferService{})

		req := httptest.NewRequest(http.MethodGet, "/transactions/"+txID, nil)
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestOpenAccount(t *testing.T) {
	newAccount := api.NewAccount{AccountNo: "0033003", UserId: "user3", Type: "checking", Balance: 0}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("OpenAccount", mock.Anything, mock.Anything).Return(&models.Account{AccountNo: "0033003", UserID: "user3", Type: models.AccountChecking, Version: 1}, nil)
		h := NewApiHandler(mockStore, &stubTransferService{})

		body, _ := json.Marshal(newAccount)
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Duplicate Is 409", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("OpenAccount", mock.Anything, mock.Anything).Return(nil, storage.ErrAccountExists)
		h := NewApiHandler(mockStore, &stubTransferService{})

		body, _ := json.Marshal(newAccount)
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStore.AssertExpectations(t)
	})
}

func TestGetPaymentRequestById(t *testing.T) {
	requestID := uuid.New().String()

	t.Run("Reports Processing", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetPaymentRequest", mock.Anything, requestID).Return(&models.PaymentRequest{ID: requestID, Status: models.PaymentProcessing}, nil)
		h := NewApiHandler(mockStore, &stubTransferService{})

		req := httptest.NewRequest(http.MethodGet, "/payments/"+requestID, nil)
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.PaymentRequest
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "processing", returned.Status)
		mockStore.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(mocks.ApiStore)
		mockStore.On("GetPaymentRequest", mock.Anything, requestID).Return(nil, storage.ErrPaymentRequestNotFound)
		h := NewApiHandler(mockStore, &stubTransferService{})

		req := httptest.NewRequest(http.MethodGet, "/payments/"+requestID, nil)
		rr := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStore.AssertExpectations(t)
	})
}
