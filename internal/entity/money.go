package entity

import "github.com/shopspring/decimal"

// Money columns are NUMERIC(19, 4): four fractional digits and fifteen integer
// digits.
const MaxAmountScale = 4

var maxAmount = decimal.New(1, 15)

// ValidateAmount rejects amounts that are not positive or that the database
// column cannot hold exactly.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Equal(d.Truncate(MaxAmountScale)) {
		return ErrAmountScale
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}
