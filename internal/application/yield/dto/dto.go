// Package dto carries yield quotes and market rates to the HTTP layer.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedStatusDTO is the freshness of one external feed.
type FeedStatusDTO struct {
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	Stale     bool       `json:"stale"`
	LastError string     `json:"last_error,omitempty"`
}

// RatesDTO is the current APY breakdown and exchange rate.
type RatesDTO struct {
	GrossAPY         *decimal.Decimal `json:"gross_apy,omitempty"`
	ManagementFee    *decimal.Decimal `json:"management_fee,omitempty"`
	UserAPY          *decimal.Decimal `json:"user_apy,omitempty"`
	FeePolicyVersion string           `json:"fee_policy_version"`
	FeePolicy        string           `json:"fee_policy"`
	USDJPY           *decimal.Decimal `json:"usd_jpy,omitempty"`
	APYFeed          FeedStatusDTO    `json:"apy_feed"`
	ExchangeRateFeed FeedStatusDTO    `json:"exchange_rate_feed"`
}

// DepositQuoteDTO answers "how much must I deposit to get this every N days".
type DepositQuoteDTO struct {
	ProductID        string          `json:"product_id,omitempty"`
	ProductName      string          `json:"product_name,omitempty"`
	Price            decimal.Decimal `json:"price"`
	CadenceDays      int             `json:"cadence_days"`
	UserAPY          decimal.Decimal `json:"user_apy"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	DisplayDeposit   decimal.Decimal `json:"display_deposit"`
	FormattedDeposit string          `json:"formatted_deposit"`
	Currency         string          `json:"currency"`
	AnnualYield      decimal.Decimal `json:"annual_yield"`
}

// CadenceQuoteDTO answers "how often does this deposit buy the product".
type CadenceQuoteDTO struct {
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Deposit     decimal.Decimal `json:"deposit"`
	UserAPY     decimal.Decimal `json:"user_apy"`
	CadenceDays int             `json:"cadence_days"`
	ExactDays   decimal.Decimal `json:"exact_days"`
}

// ProductDTO is one catalog entry.
type ProductDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Icon           string          `json:"icon"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	FormattedPrice string          `json:"formatted_price"`
}
