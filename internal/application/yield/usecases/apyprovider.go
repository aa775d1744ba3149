package usecases

import (
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/yield"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

// APYQuote is the gross APY split into fee and depositor share, in percent.
type APYQuote struct {
	Gross  decimal.Decimal
	Fee    decimal.Decimal
	User   decimal.Decimal
	Policy yield.FeePolicy
}

// APYProvider applies the configured fee policy to the live pool APY.
type APYProvider struct {
	policy yield.FeePolicy
	market MarketReader
}

func NewAPYProvider(policy yield.FeePolicy, market MarketReader) *APYProvider {
	return &APYProvider{
		policy: policy,
		market: market,
	}
}

func (p *APYProvider) Policy() yield.FeePolicy {
	return p.policy
}

// Current returns the APY breakdown from the last known gross APY.
func (p *APYProvider) Current() (APYQuote, error) {
	gross, err := p.market.GrossAPY()
	if err != nil {
		return APYQuote{}, err
	}
	fee, err := p.policy.ManagementFee(gross)
	if err != nil {
		return APYQuote{}, err
	}
	user, err := p.policy.UserAPY(gross)
	if err != nil {
		return APYQuote{}, err
	}
	return APYQuote{
		Gross:  gross,
		Fee:    fee,
		User:   user,
		Policy: p.policy,
	}, nil
}

// UserAPY returns the depositor's net APY. A net APY of zero cannot size a
// deposit, so it is reported as the yield source being unavailable.
func (p *APYProvider) UserAPY() (decimal.Decimal, error) {
	q, err := p.Current()
	if err != nil {
		return decimal.Zero, err
	}
	if !q.User.IsPositive() {
		return decimal.Zero, errors.NewUpstreamUnavailableError(
			"net apy is zero after fees",
			"gross="+q.Gross.String()+" policy="+q.Policy.Version,
		)
	}
	return q.User, nil
}
