package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/yield/dto"
	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/domain/yield"
)

type QuoteCadenceQuery struct {
	ProductID string
	Price     decimal.Decimal
	Deposit   decimal.Decimal
}

// QuoteCadenceUseCase turns a chosen deposit into a purchase interval.
type QuoteCadenceUseCase struct {
	catalog catalog.Catalog
	apy     *APYProvider
}

func NewQuoteCadenceUseCase(c catalog.Catalog, apy *APYProvider) *QuoteCadenceUseCase {
	return &QuoteCadenceUseCase{
		catalog: c,
		apy:     apy,
	}
}

func (uc *QuoteCadenceUseCase) Execute(_ context.Context, query QuoteCadenceQuery) (*dto.CadenceQuoteDTO, error) {
	item, err := resolvePrice(uc.catalog, query.ProductID, query.Price)
	if err != nil {
		return nil, err
	}

	userAPY, err := uc.apy.UserAPY()
	if err != nil {
		return nil, err
	}

	exact, err := yield.ExactCadenceForDeposit(query.Deposit, item.price, userAPY)
	if err != nil {
		return nil, err
	}
	days, err := yield.CadenceForDeposit(query.Deposit, item.price, userAPY)
	if err != nil {
		return nil, err
	}

	return &dto.CadenceQuoteDTO{
		ProductID:   item.productID,
		ProductName: item.name,
		Price:       item.price,
		Deposit:     query.Deposit,
		UserAPY:     userAPY,
		CadenceDays: days,
		ExactDays:   exact.Round(4),
	}, nil
}
