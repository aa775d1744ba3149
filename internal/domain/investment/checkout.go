package investment

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/yield"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

const (
	// JustSaveProductName labels free-form savings without a product.
	JustSaveProductName = "Just Save"
	// JustSaveDays is the period of a free-form savings deposit.
	JustSaveDays = 365
)

// Terms are what a checkout intent resolves to.
type Terms struct {
	ProductName    string
	DepositAmount  decimal.Decimal
	InvestmentDays int
}

// CheckoutIntent is either a ProductIntent or a FreeformSavings.
type CheckoutIntent interface {
	// Terms resolves the intent against the depositor's current net APY.
	Terms(userAPY decimal.Decimal) (Terms, error)
	isCheckoutIntent()
}

// ProductIntent funds one purchase of a catalog product every CadenceDays.
// When DepositAmount is set it is used as-is; otherwise the deposit is
// derived from the price, cadence and APY.
type ProductIntent struct {
	ProductID     string
	Name          string
	Icon          string
	Price         decimal.Decimal
	CadenceDays   int
	DepositAmount decimal.Decimal
}

func (ProductIntent) isCheckoutIntent() {}

func (p ProductIntent) Terms(userAPY decimal.Decimal) (Terms, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Terms{}, errors.NewValidationError("product name is required")
	}
	if !p.Price.IsPositive() {
		return Terms{}, errors.NewValidationError("product price must be greater than zero", p.ProductID)
	}
	if p.CadenceDays < 1 {
		return Terms{}, errors.NewValidationError("cadence must be at least 1 day")
	}

	deposit := p.DepositAmount
	if deposit.IsZero() {
		var err error
		deposit, err = yield.DepositForCadence(p.Price, p.CadenceDays, userAPY)
		if err != nil {
			return Terms{}, err
		}
	}
	if !deposit.IsPositive() {
		return Terms{}, errors.NewValidationError("deposit amount must be greater than zero")
	}

	return Terms{
		ProductName:    p.Name,
		DepositAmount:  deposit,
		InvestmentDays: p.CadenceDays,
	}, nil
}

// FreeformSavings deposits an arbitrary amount for a year with no product.
type FreeformSavings struct {
	Amount decimal.Decimal
}

func (FreeformSavings) isCheckoutIntent() {}

func (f FreeformSavings) Terms(_ decimal.Decimal) (Terms, error) {
	if !f.Amount.IsPositive() {
		return Terms{}, errors.NewValidationError("savings amount must be greater than zero")
	}
	return Terms{
		ProductName:    JustSaveProductName,
		DepositAmount:  f.Amount,
		InvestmentDays: JustSaveDays,
	}, nil
}
