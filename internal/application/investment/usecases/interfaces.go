package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/investment/dto"
)

// UserAPYSource provides the depositor's current net APY in percent.
type UserAPYSource interface {
	UserAPY() (decimal.Decimal, error)
}

type CreateInvestmentExecutor interface {
	Execute(ctx context.Context, cmd CreateInvestmentCommand) (*dto.InvestmentDTO, error)
}

type UpdateDepositExecutor interface {
	Execute(ctx context.Context, cmd UpdateDepositCommand) (*dto.InvestmentDTO, error)
}

type CancelInvestmentExecutor interface {
	Execute(ctx context.Context, cmd CancelInvestmentCommand) error
}

type ListUserInvestmentsExecutor interface {
	Execute(ctx context.Context, query ListUserInvestmentsQuery) ([]*dto.InvestmentDTO, error)
}

type GetInvestmentExecutor interface {
	Execute(ctx context.Context, query GetInvestmentQuery) (*dto.InvestmentDTO, error)
}
