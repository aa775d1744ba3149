package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnitScale(t *testing.T) {
	scale, err := MinorUnitScale(JPY)
	require.NoError(t, err)
	assert.Equal(t, int32(0), scale)

	scale, err = MinorUnitScale(USD)
	require.NoError(t, err)
	assert.Equal(t, int32(2), scale)

	_, err = MinorUnitScale("XXXX")
	assert.Error(t, err)
}

func TestCeilAndQuantize(t *testing.T) {
	amount := decimal.RequireFromString("651785.7142857")

	ceiled, err := CeilToMinorUnit(amount, JPY)
	require.NoError(t, err)
	assert.Equal(t, "651786", ceiled.String())

	quantized, err := Quantize(amount, USD)
	require.NoError(t, err)
	assert.Equal(t, "651785.71", quantized.String())
}

func TestFormat_GroupsThousands(t *testing.T) {
	out := Format(decimal.NewFromInt(1280), JPY)
	assert.Contains(t, out, "1,280")

	out = Format(decimal.RequireFromString("1234.5"), USD)
	assert.Contains(t, out, "1,234.50")
}
