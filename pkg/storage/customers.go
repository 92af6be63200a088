package storage

import (
	"context"

	"github.com/vietbank/transfer-core/pkg/models"
)

// CustomerReader defines the read-only view of customer profiles the pipeline
// needs: the eKYC status and the OTP delivery address. Profiles are owned by
// the identity side of the system and never written here.
type CustomerReader interface {
	// GetCustomer retrieves a customer profile by user id.
	GetCustomer(ctx context.Context, userID string) (*models.Customer, error)
}
