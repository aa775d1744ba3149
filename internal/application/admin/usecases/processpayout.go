package usecases

import (
	"context"
	"time"

	invdto "github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type ProcessPayoutCommand struct {
	Actor             Actor
	InvestmentID      string
	BankTransactionID string
}

// ProcessPayoutUseCase settles a matured investment for deposit plus returns.
type ProcessPayoutUseCase struct {
	repo      investment.Repository
	auditRepo audit.Repository
	roles     RoleChecker
	publisher EventPublisher
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewProcessPayoutUseCase(
	repo investment.Repository,
	auditRepo audit.Repository,
	roles RoleChecker,
	publisher EventPublisher,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *ProcessPayoutUseCase {
	return &ProcessPayoutUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		roles:     roles,
		publisher: publisher,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *ProcessPayoutUseCase) Execute(ctx context.Context, cmd ProcessPayoutCommand) (*invdto.InvestmentDTO, error) {
	uc.logger.Infow("executing process payout use case",
		"investment_id", cmd.InvestmentID,
		"admin_id", cmd.Actor.UserID,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return nil, err
	}

	now := uc.clock()
	var paid *investment.Investment

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := loadInvestment(txCtx, uc.repo, cmd.InvestmentID)
		if err != nil {
			return err
		}
		if err := inv.ProcessPayout(cmd.BankTransactionID, now); err != nil {
			return err
		}
		if err := uc.repo.Update(txCtx, inv); err != nil {
			return wrapUpdate(inv.ID(), err)
		}

		details := map[string]any{
			"payout_amount":       inv.Payout().Amount.String(),
			"deposit_amount":      inv.DepositAmount().String(),
			"returns":             inv.Returns().String(),
			"bank_transaction_id": inv.Payout().TransactionID,
		}
		if err := appendAudit(txCtx, uc.auditRepo, cmd.Actor, audit.ActionProcessPayout, inv.ID(), details, now); err != nil {
			return err
		}

		paid = inv
		return nil
	})
	if err != nil {
		logRejected(uc.logger, "process payout", cmd.InvestmentID, err)
		return nil, err
	}

	uc.logger.Infow("payout processed", "investment_id", paid.ID(), "amount", paid.Payout().Amount.String())
	publish(ctx, uc.publisher, investment.NewLifecycleEvent(investment.EventCompleted, paid, now), uc.logger)

	return invdto.ToInvestmentDTO(paid, now), nil
}
