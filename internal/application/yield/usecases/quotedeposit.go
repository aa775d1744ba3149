package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/yield/dto"
	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/domain/yield"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/money"
)

type QuoteDepositQuery struct {
	ProductID   string
	Price       decimal.Decimal
	CadenceDays int
}

// QuoteDepositUseCase sizes the deposit that funds one purchase per cadence
// at the current net APY.
type QuoteDepositUseCase struct {
	catalog  catalog.Catalog
	apy      *APYProvider
	currency string
	logger   logger.Interface
}

func NewQuoteDepositUseCase(c catalog.Catalog, apy *APYProvider, currency string, logger logger.Interface) *QuoteDepositUseCase {
	return &QuoteDepositUseCase{
		catalog:  c,
		apy:      apy,
		currency: currency,
		logger:   logger,
	}
}

func (uc *QuoteDepositUseCase) Execute(_ context.Context, query QuoteDepositQuery) (*dto.DepositQuoteDTO, error) {
	item, err := resolvePrice(uc.catalog, query.ProductID, query.Price)
	if err != nil {
		return nil, err
	}

	userAPY, err := uc.apy.UserAPY()
	if err != nil {
		return nil, err
	}

	deposit, err := yield.DepositForCadence(item.price, query.CadenceDays, userAPY)
	if err != nil {
		return nil, err
	}

	display, err := money.CeilToMinorUnit(deposit, uc.currency)
	if err != nil {
		uc.logger.Errorw("invalid deposit currency", "currency", uc.currency, "error", err)
		return nil, err
	}

	return &dto.DepositQuoteDTO{
		ProductID:        item.productID,
		ProductName:      item.name,
		Price:            item.price,
		CadenceDays:      query.CadenceDays,
		UserAPY:          userAPY,
		DepositAmount:    deposit,
		DisplayDeposit:   display,
		FormattedDeposit: money.Format(display, uc.currency),
		Currency:         uc.currency,
		AnnualYield:      yield.AnnualYield(display, userAPY),
	}, nil
}
