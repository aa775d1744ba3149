package yield

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

// FeePolicy is one version of the management fee schedule:
// fee = Base + (gross − Base) × Rate, in APY percentage points.
type FeePolicy struct {
	Version     string
	Description string
	Base        decimal.Decimal
	Rate        decimal.Decimal
}

// Fee policy versions that have been offered to depositors.
const (
	PolicyFlat5          = "flat-5"
	PolicyTiered1Plus20  = "tiered-1-20"
	PolicyTiered05Plus10 = "tiered-0.5-10"
	PolicyLaunchBonus    = "launch-bonus"
)

var presets = map[string]FeePolicy{
	PolicyFlat5: {
		Version:     PolicyFlat5,
		Description: "5% of gross yield",
		Base:        decimal.Zero,
		Rate:        decimal.RequireFromString("0.05"),
	},
	PolicyTiered1Plus20: {
		Version:     PolicyTiered1Plus20,
		Description: "1 point plus 20% of yield above 1%",
		Base:        decimal.NewFromInt(1),
		Rate:        decimal.RequireFromString("0.20"),
	},
	PolicyTiered05Plus10: {
		Version:     PolicyTiered05Plus10,
		Description: "0.5 point plus 10% of yield above 0.5%",
		Base:        decimal.RequireFromString("0.5"),
		Rate:        decimal.RequireFromString("0.10"),
	},
	PolicyLaunchBonus: {
		Version:     PolicyLaunchBonus,
		Description: "no management fee during the launch promotion",
		Base:        decimal.Zero,
		Rate:        decimal.Zero,
	},
}

// PolicyByVersion looks up a preset fee policy.
func PolicyByVersion(version string) (FeePolicy, error) {
	p, ok := presets[version]
	if !ok {
		return FeePolicy{}, fmt.Errorf("unknown fee policy version %q (known: %s)",
			version, strings.Join(PolicyVersions(), ", "))
	}
	return p, nil
}

// PolicyVersions lists the known preset versions in sorted order.
func PolicyVersions() []string {
	versions := make([]string, 0, len(presets))
	for v := range presets {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Validate checks that the schedule is usable.
func (p FeePolicy) Validate() error {
	if p.Version == "" {
		return errors.NewValidationError("fee policy version is required")
	}
	if p.Base.IsNegative() {
		return errors.NewValidationError("fee base must not be negative", p.Version)
	}
	if p.Rate.IsNegative() || p.Rate.GreaterThan(one) {
		return errors.NewValidationError("fee rate must be between 0 and 1", p.Version)
	}
	return nil
}

// ManagementFee returns the fee in percentage points for a gross APY.
func (p FeePolicy) ManagementFee(grossAPY decimal.Decimal) (decimal.Decimal, error) {
	if grossAPY.IsNegative() {
		return decimal.Zero, errors.NewValidationError("gross apy must not be negative", grossAPY.String())
	}
	return p.Base.Add(grossAPY.Sub(p.Base).Mul(p.Rate)), nil
}

// UserAPY returns the net APY passed to the depositor, clamped at zero.
func (p FeePolicy) UserAPY(grossAPY decimal.Decimal) (decimal.Decimal, error) {
	fee, err := p.ManagementFee(grossAPY)
	if err != nil {
		return decimal.Zero, err
	}
	net := grossAPY.Sub(fee)
	if net.IsNegative() {
		return decimal.Zero, nil
	}
	return net, nil
}
