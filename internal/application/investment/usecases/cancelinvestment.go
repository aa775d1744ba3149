package usecases

import (
	"context"

	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type CancelInvestmentCommand struct {
	UserID       string
	InvestmentID string
}

// CancelInvestmentUseCase lets the owner withdraw a checkout before funds arrive.
type CancelInvestmentUseCase struct {
	repo   investment.Repository
	logger logger.Interface
}

func NewCancelInvestmentUseCase(repo investment.Repository, logger logger.Interface) *CancelInvestmentUseCase {
	return &CancelInvestmentUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *CancelInvestmentUseCase) Execute(ctx context.Context, cmd CancelInvestmentCommand) error {
	uc.logger.Infow("executing cancel investment use case", "investment_id", cmd.InvestmentID, "user_id", cmd.UserID)

	inv, err := loadOwned(ctx, uc.repo, cmd.InvestmentID, cmd.UserID)
	if err != nil {
		return err
	}
	if err := inv.EnsureDeletable(); err != nil {
		uc.logger.Warnw("cancel rejected", "investment_id", inv.ID(), "status", inv.Status())
		return err
	}

	if err := uc.repo.Delete(ctx, inv.ID()); err != nil {
		uc.logger.Errorw("failed to delete investment", "investment_id", inv.ID(), "error", err)
		return errors.WrapPersistence("delete investment", inv.ID(), err)
	}

	uc.logger.Infow("investment cancelled", "investment_id", inv.ID())
	return nil
}
