package usecases

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/yield/dto"
	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/money"
)

// ListProductsUseCase returns the product catalog.
type ListProductsUseCase struct {
	catalog catalog.Catalog
}

func NewListProductsUseCase(c catalog.Catalog) *ListProductsUseCase {
	return &ListProductsUseCase{catalog: c}
}

func (uc *ListProductsUseCase) Execute(_ context.Context) ([]dto.ProductDTO, error) {
	products := uc.catalog.List()
	result := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		result = append(result, dto.ProductDTO{
			ID:             p.ID,
			Name:           p.Name,
			Icon:           p.Icon,
			Price:          p.Price,
			Currency:       p.Currency,
			FormattedPrice: money.Format(p.Price, p.Currency),
		})
	}
	return result, nil
}

// pricedItem is what a quote is computed against: a catalog product or a
// bare price supplied by the caller.
type pricedItem struct {
	productID string
	name      string
	price     decimal.Decimal
}

func resolvePrice(c catalog.Catalog, productID string, price decimal.Decimal) (pricedItem, error) {
	productID = strings.TrimSpace(productID)
	if productID != "" {
		p, ok := c.Get(productID)
		if !ok {
			return pricedItem{}, catalog.ErrProductNotFound(productID)
		}
		return pricedItem{productID: p.ID, name: p.Name, price: p.Price}, nil
	}
	if price.IsZero() {
		return pricedItem{}, errors.NewValidationError("either product_id or price is required")
	}
	if !price.IsPositive() {
		return pricedItem{}, errors.NewValidationError("price must be greater than zero")
	}
	return pricedItem{price: price}, nil
}
