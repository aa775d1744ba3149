package yield

import (
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

func errNonPositive(field string) error {
	return errors.NewValidationError(field+" must be greater than zero")
}

func errCadenceTooShort(days int) error {
	return errors.NewValidationError("cadence must be at least 1 day", "cadence_days="+itoa(days))
}

func errCadenceTooLong(days decimal.Decimal) error {
	return errors.NewValidationError("deposit is too small to fund the purchase", "cadence_days="+days.String())
}
