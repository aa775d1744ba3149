// Package dto shapes profiles for API responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/profile"
)

type BankAccountDTO struct {
	HolderName    string `json:"holder_name"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Complete      bool   `json:"complete"`
}

type BalancesDTO struct {
	WithdrawalPrincipalUSD decimal.Decimal `json:"withdrawal_principal_usd"`
	JPYDeposit             decimal.Decimal `json:"jpy_deposit"`
	TotalReturnsUSD        decimal.Decimal `json:"total_returns_usd"`
}

type ProfileDTO struct {
	UserID      string         `json:"user_id"`
	Email       string         `json:"email"`
	BankAccount BankAccountDTO `json:"bank_account"`
	Balances    BalancesDTO    `json:"balances"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type DivergenceDTO struct {
	RecordedJPY   decimal.Decimal `json:"recorded_jpy"`
	InvestmentJPY decimal.Decimal `json:"investment_jpy"`
	DifferenceJPY decimal.Decimal `json:"difference_jpy"`
	HasDrift      bool            `json:"has_drift"`
}

func ToBalancesDTO(b profile.Balances) BalancesDTO {
	return BalancesDTO{
		WithdrawalPrincipalUSD: b.WithdrawalPrincipalUSD,
		JPYDeposit:             b.JPYDeposit,
		TotalReturnsUSD:        b.TotalReturnsUSD,
	}
}

func ToDivergenceDTO(d profile.Divergence) DivergenceDTO {
	return DivergenceDTO{
		RecordedJPY:   d.RecordedJPY,
		InvestmentJPY: d.InvestmentJPY,
		DifferenceJPY: d.DifferenceJPY,
		HasDrift:      d.HasDrift(),
	}
}

func ToProfileDTO(p *profile.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	bank := p.BankAccount()
	return &ProfileDTO{
		UserID: p.UserID(),
		Email:  p.Email(),
		BankAccount: BankAccountDTO{
			HolderName:    bank.HolderName,
			BankName:      bank.BankName,
			Branch:        bank.Branch,
			AccountNumber: bank.AccountNumber,
			AccountType:   bank.AccountType,
			Complete:      bank.IsComplete(),
		},
		Balances:  ToBalancesDTO(p.Balances()),
		UpdatedAt: p.UpdatedAt(),
	}
}
