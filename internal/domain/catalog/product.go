// Package catalog lists the everyday goods a deposit can be sized against.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type Product struct {
	ID       string
	Name     string
	Icon     string
	Price    decimal.Decimal
	Currency string
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.NewValidationError("product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("product name is required", p.ID)
	}
	if !p.Price.IsPositive() {
		return errors.NewValidationError("product price must be greater than zero", p.ID)
	}
	return nil
}

// Catalog is read-only at runtime.
type Catalog interface {
	List() []Product
	Get(id string) (Product, bool)
}

// ErrProductNotFound is returned for unknown product ids.
func ErrProductNotFound(id string) error {
	return errors.NewNotFoundError("product not found", id)
}
