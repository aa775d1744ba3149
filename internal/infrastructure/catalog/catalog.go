// Package catalog loads the product catalog from YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/money"
)

//go:embed products.yaml
var defaultProducts []byte

var _ catalog.Catalog = (*StaticCatalog)(nil)

type catalogFile struct {
	Currency string        `yaml:"currency"`
	Products []productYAML `yaml:"products"`
}

type productYAML struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Icon     string          `yaml:"icon"`
	Price    decimal.Decimal `yaml:"price"`
	Currency string          `yaml:"currency"`
}

// StaticCatalog keeps the products in file order.
type StaticCatalog struct {
	products []catalog.Product
	byID     map[string]catalog.Product
}

// Load reads the catalog at path. An empty path, or a path that does not
// exist, falls back to the built-in catalog.
func Load(path string, log logger.Interface) (*StaticCatalog, error) {
	data := defaultProducts
	source := "built-in"

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = content
			source = path
		case os.IsNotExist(err):
			log.Warnw("catalog file not found, using built-in products", "path", path)
		default:
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s catalog: %w", source, err)
	}

	log.Infow("product catalog loaded", "source", source, "count", len(c.products))
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*StaticCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog has no products")
	}

	defaultCurrency := strings.ToUpper(file.Currency)
	if defaultCurrency == "" {
		defaultCurrency = money.JPY
	}

	c := &StaticCatalog{
		products: make([]catalog.Product, 0, len(file.Products)),
		byID:     make(map[string]catalog.Product, len(file.Products)),
	}
	for _, p := range file.Products {
		currency := strings.ToUpper(p.Currency)
		if currency == "" {
			currency = defaultCurrency
		}
		if _, err := money.MinorUnitScale(currency); err != nil {
			return nil, fmt.Errorf("product %s: %w", p.ID, err)
		}

		product := catalog.Product{
			ID:       strings.TrimSpace(p.ID),
			Name:     strings.TrimSpace(p.Name),
			Icon:     p.Icon,
			Price:    p.Price,
			Currency: currency,
		}
		if err := product.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[product.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", product.ID)
		}

		c.products = append(c.products, product)
		c.byID[product.ID] = product
	}
	return c, nil
}

func (c *StaticCatalog) List() []catalog.Product {
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *StaticCatalog) Get(id string) (catalog.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
