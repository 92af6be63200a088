// Package fees computes the transfer fee schedule. Calculation is pure: no
// I/O, no clock, same inputs always give the same fee.
package fees

import (
	"github.com/shopspring/decimal"

	"github.com/vietbank/transfer-core/pkg/models"
)

const (
	// FeeFloor is the minimum fee charged on an external transfer, in VND.
	FeeFloor int64 = 5_000
	// FeeCap is the maximum fee charged on an external transfer, in VND.
	FeeCap int64 = 50_000
)

// externalFeeRate is 0.1% of the transfer amount.
var externalFeeRate = decimal.NewFromFloat(0.001)

// Calculate returns the fee for a transfer of the given amount and kind.
// Internal transfers are always free. External transfers pay 0.1% of the
// amount clamped to [FeeFloor, FeeCap]. Unknown kinds and non-positive
// amounts carry no fee.
func Calculate(amount int64, kind models.TransferKind) int64 {
	if amount <= 0 || kind != models.TransferExternal {
		return 0
	}

	fee := decimal.NewFromInt(amount).Mul(externalFeeRate).IntPart()
	if fee < FeeFloor {
		return FeeFloor
	}
	if fee > FeeCap {
		return FeeCap
	}
	return fee
}

// Total returns the amount the source account is debited: amount plus fee.
func Total(amount int64, kind models.TransferKind) int64 {
	return amount + Calculate(amount, kind)
}
