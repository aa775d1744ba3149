package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateSource provides the last known USD→JPY rate.
type ExchangeRateSource interface {
	ExchangeRate() (decimal.Decimal, error)
}

// PrincipalWithdrawalNotice is sent to administrators when a user asks for principal back.
type PrincipalWithdrawalNotice struct {
	RequestID    uint
	UserEmail    string
	DepositUSD   decimal.Decimal
	ExchangeRate decimal.Decimal
	IndicatedJPY decimal.Decimal
	RequestedAt  time.Time
}

type WithdrawalNotifier interface {
	NotifyPrincipalWithdrawal(ctx context.Context, notice PrincipalWithdrawalNotice) error
}
