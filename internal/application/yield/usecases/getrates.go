package usecases

import (
	"context"

	"github.com/perkloop/perkloop/internal/application/market"
	"github.com/perkloop/perkloop/internal/application/yield/dto"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// GetRatesUseCase reports the APY breakdown and exchange rate. Missing feed
// values are left out rather than failing the whole response.
type GetRatesUseCase struct {
	apy    *APYProvider
	market MarketReader
	logger logger.Interface
}

func NewGetRatesUseCase(apy *APYProvider, market MarketReader, logger logger.Interface) *GetRatesUseCase {
	return &GetRatesUseCase{
		apy:    apy,
		market: market,
		logger: logger,
	}
}

func (uc *GetRatesUseCase) Execute(_ context.Context) (*dto.RatesDTO, error) {
	policy := uc.apy.Policy()
	result := &dto.RatesDTO{
		FeePolicyVersion: policy.Version,
		FeePolicy:        policy.Description,
		APYFeed:          feedStatus(uc.market.Snapshot(market.FeedAPY)),
		ExchangeRateFeed: feedStatus(uc.market.Snapshot(market.FeedExchangeRate)),
	}

	if q, err := uc.apy.Current(); err == nil {
		result.GrossAPY = &q.Gross
		result.ManagementFee = &q.Fee
		result.UserAPY = &q.User
	} else {
		uc.logger.Debugw("apy not available for rates response", "error", err)
	}

	if rate, err := uc.market.ExchangeRate(); err == nil {
		result.USDJPY = &rate
	}

	return result, nil
}

func feedStatus(s market.Snapshot) dto.FeedStatusDTO {
	status := dto.FeedStatusDTO{
		Stale:     s.Stale || !s.HasValue(),
		LastError: s.LastError,
	}
	if s.HasValue() {
		fetchedAt := s.FetchedAt
		status.FetchedAt = &fetchedAt
	}
	return status
}
