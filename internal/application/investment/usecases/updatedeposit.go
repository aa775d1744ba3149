package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/money"
)

type UpdateDepositCommand struct {
	UserID        string
	InvestmentID  string
	DepositAmount decimal.Decimal
}

// UpdateDepositUseCase merges a repeat checkout into an open investment.
// The cycle restarts from now whatever the direction of the change.
type UpdateDepositUseCase struct {
	repo     investment.Repository
	currency string
	logger   logger.Interface
	clock    func() time.Time
}

func NewUpdateDepositUseCase(repo investment.Repository, currency string, logger logger.Interface) *UpdateDepositUseCase {
	return &UpdateDepositUseCase{
		repo:     repo,
		currency: currency,
		logger:   logger,
		clock:    biztime.NowUTC,
	}
}

func (uc *UpdateDepositUseCase) Execute(ctx context.Context, cmd UpdateDepositCommand) (*dto.InvestmentDTO, error) {
	uc.logger.Infow("executing update deposit use case",
		"investment_id", cmd.InvestmentID,
		"user_id", cmd.UserID,
		"deposit_amount", cmd.DepositAmount.String(),
	)

	amount, err := money.Quantize(cmd.DepositAmount, uc.currency)
	if err != nil {
		return nil, errors.NewInternalError("invalid deposit currency", uc.currency)
	}

	inv, err := loadOwned(ctx, uc.repo, cmd.InvestmentID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	previous := inv.DepositAmount()
	now := uc.clock()
	if err := inv.ChangeDeposit(amount, now); err != nil {
		uc.logger.Warnw("deposit change rejected", "investment_id", inv.ID(), "status", inv.Status(), "error", err)
		return nil, err
	}

	if err := uc.repo.Update(ctx, inv); err != nil {
		uc.logger.Errorw("failed to update investment deposit", "investment_id", inv.ID(), "error", err)
		return nil, errors.WrapPersistence("update investment deposit", inv.ID(), err)
	}

	uc.logger.Infow("investment deposit updated",
		"investment_id", inv.ID(),
		"previous_amount", previous.String(),
		"deposit_amount", inv.DepositAmount().String(),
	)

	return dto.ToInvestmentDTO(inv, now), nil
}
