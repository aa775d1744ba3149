// Package dto shapes investments for API responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/mapper"
)

type ProgressDTO struct {
	DaysPassed         int     `json:"days_passed"`
	DaysInCurrentCycle int     `json:"days_in_current_cycle"`
	RemainingDays      int     `json:"remaining_days"`
	Percent            float64 `json:"percent"`
}

type DeploymentDTO struct {
	JPYAmount       decimal.Decimal `json:"jpy_amount"`
	JPYReceivedAt   time.Time       `json:"jpy_received_at"`
	USDCAmount      decimal.Decimal `json:"usdc_amount"`
	USDCConvertedAt time.Time       `json:"usdc_converted_at"`
	TxHash          string          `json:"tx_hash"`
	DeployedAt      time.Time       `json:"deployed_at"`
}

type PayoutDTO struct {
	Amount        decimal.Decimal `json:"amount"`
	ProcessedAt   time.Time       `json:"processed_at"`
	TransactionID string          `json:"transaction_id"`
}

type InvestmentDTO struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	ProductName        string          `json:"product_name"`
	DepositAmount      decimal.Decimal `json:"deposit_amount"`
	InvestmentDays     int             `json:"investment_days"`
	PaymentMethod      string          `json:"payment_method"`
	Status             string          `json:"status"`
	Returns            decimal.Decimal `json:"returns"`
	TotalOwed          decimal.Decimal `json:"total_owed"`
	ReferenceCode      *string         `json:"reference_code,omitempty"`
	ExpectedReturnDate *time.Time      `json:"expected_return_date,omitempty"`
	Deployment         *DeploymentDTO  `json:"deployment,omitempty"`
	Payout             *PayoutDTO      `json:"payout,omitempty"`
	Progress           ProgressDTO     `json:"progress"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToInvestmentDTO converts an investment with its progress evaluated at now.
func ToInvestmentDTO(inv *investment.Investment, now time.Time) *InvestmentDTO {
	if inv == nil {
		return nil
	}

	p := inv.Progress(now)
	out := &InvestmentDTO{
		ID:                 inv.ID(),
		UserID:             inv.UserID(),
		ProductName:        inv.ProductName(),
		DepositAmount:      inv.DepositAmount(),
		InvestmentDays:     inv.InvestmentDays(),
		PaymentMethod:      inv.PaymentMethod().String(),
		Status:             inv.Status().String(),
		Returns:            inv.Returns(),
		TotalOwed:          inv.TotalOwed(),
		ReferenceCode:      inv.ReferenceCode(),
		ExpectedReturnDate: inv.ExpectedReturnDate(),
		Progress: ProgressDTO{
			DaysPassed:         p.DaysPassed,
			DaysInCurrentCycle: p.DaysInCurrentCycle,
			RemainingDays:      p.RemainingDays,
			Percent:            p.Percent,
		},
		CreatedAt: inv.CreatedAt(),
		UpdatedAt: inv.UpdatedAt(),
	}

	if d := inv.Deployment(); d != nil {
		out.Deployment = &DeploymentDTO{
			JPYAmount:       d.JPYAmount,
			JPYReceivedAt:   d.JPYReceivedAt,
			USDCAmount:      d.USDCAmount,
			USDCConvertedAt: d.USDCConvertedAt,
			TxHash:          d.TxHash,
			DeployedAt:      d.DeployedAt,
		}
	}
	if p := inv.Payout(); p != nil {
		out.Payout = &PayoutDTO{
			Amount:        p.Amount,
			ProcessedAt:   p.ProcessedAt,
			TransactionID: p.TransactionID,
		}
	}
	return out
}

func ToInvestmentDTOs(items []*investment.Investment, now time.Time) []*InvestmentDTO {
	return mapper.MapSlicePtrSkipNil(items, func(inv *investment.Investment) *InvestmentDTO {
		return ToInvestmentDTO(inv, now)
	})
}

// DuplicateInvestmentDTO is returned with a 409 so the client can offer a merge.
type DuplicateInvestmentDTO struct {
	Existing *InvestmentDTO `json:"existing"`
}
