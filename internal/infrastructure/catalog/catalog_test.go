package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/shared/logger"
)

func TestLoad_BuiltIn(t *testing.T) {
	c, err := Load("", logger.NewNopLogger())
	require.NoError(t, err)

	products := c.List()
	require.Len(t, products, 6)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"yogurt", "milk", "eggs", "cigarette", "beer", "rice"}, ids)

	beer, ok := c.Get("beer")
	require.True(t, ok)
	assert.Equal(t, "1280", beer.Price.String())
	assert.Equal(t, "JPY", beer.Currency)

	_, ok = c.Get("caviar")
	assert.False(t, ok)
}

func TestLoad_FileAndMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: coffee
    name: Coffee
    price: "4.50"
    currency: usd
`), 0o600))

	c, err := Load(path, logger.NewNopLogger())
	require.NoError(t, err)
	coffee, ok := c.Get("coffee")
	require.True(t, ok)
	assert.Equal(t, "USD", coffee.Currency)
	assert.Equal(t, "4.5", coffee.Price.String())

	c, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), logger.NewNopLogger())
	require.NoError(t, err)
	assert.Len(t, c.List(), 6)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", `products: []`, "no products"},
		{"zero price", "products:\n  - {id: a, name: A, price: \"0\"}", "price"},
		{"missing name", "products:\n  - {id: a, price: \"10\"}", "name"},
		{"duplicate", "products:\n  - {id: a, name: A, price: \"1\"}\n  - {id: a, name: B, price: \"2\"}", "duplicate"},
		{"bad currency", "products:\n  - {id: a, name: A, price: \"1\", currency: XXXX}", "currency"},
		{"not yaml", "products: [", "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	c, err := Load("", logger.NewNopLogger())
	require.NoError(t, err)

	list := c.List()
	list[0].Name = "changed"
	assert.Equal(t, "Yogurt", c.List()[0].Name)
}
