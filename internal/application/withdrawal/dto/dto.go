// Package dto shapes withdrawal preferences and requests for API responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/shared/mapper"
)

type PreferenceDTO struct {
	WithdrawalType string    `json:"withdrawal_type"`
	Frequency      *string   `json:"frequency"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PrincipalRequestDTO struct {
	ID           uint            `json:"id"`
	UserID       string          `json:"user_id"`
	UserEmail    string          `json:"user_email"`
	DepositUSD   decimal.Decimal `json:"deposit_usd"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	IndicatedJPY decimal.Decimal `json:"indicated_jpy"`
	Status       string          `json:"status"`
	RequestedAt  time.Time       `json:"requested_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
}

func ToPreferenceDTO(p *withdrawal.Preference) PreferenceDTO {
	out := PreferenceDTO{
		WithdrawalType: string(p.Type()),
		UpdatedAt:      p.UpdatedAt(),
	}
	if f := p.Frequency(); f != nil {
		s := string(*f)
		out.Frequency = &s
	}
	return out
}

func ToPrincipalRequestDTO(r *withdrawal.PrincipalRequest) *PrincipalRequestDTO {
	return &PrincipalRequestDTO{
		ID:           r.ID(),
		UserID:       r.UserID(),
		UserEmail:    r.UserEmail(),
		DepositUSD:   r.DepositUSD(),
		ExchangeRate: r.ExchangeRate(),
		IndicatedJPY: r.IndicatedJPY(),
		Status:       string(r.Status()),
		RequestedAt:  r.RequestedAt(),
		ProcessedAt:  r.ProcessedAt(),
	}
}

func ToPrincipalRequestDTOs(items []*withdrawal.PrincipalRequest) []*PrincipalRequestDTO {
	return mapper.MapSlicePtrSkipNil(items, ToPrincipalRequestDTO)
}
