package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	invdto "github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type ConfirmDepositCommand struct {
	Actor        Actor
	InvestmentID string
	JPYAmount    decimal.Decimal
	USDCAmount   decimal.Decimal
	TxHash       string
}

// ConfirmDepositUseCase activates a pending investment once funds have been
// received, converted and deployed. The audit entry commits with the change.
type ConfirmDepositUseCase struct {
	repo      investment.Repository
	auditRepo audit.Repository
	roles     RoleChecker
	publisher EventPublisher
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewConfirmDepositUseCase(
	repo investment.Repository,
	auditRepo audit.Repository,
	roles RoleChecker,
	publisher EventPublisher,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *ConfirmDepositUseCase {
	return &ConfirmDepositUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		roles:     roles,
		publisher: publisher,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *ConfirmDepositUseCase) Execute(ctx context.Context, cmd ConfirmDepositCommand) (*invdto.InvestmentDTO, error) {
	uc.logger.Infow("executing confirm deposit use case",
		"investment_id", cmd.InvestmentID,
		"admin_id", cmd.Actor.UserID,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return nil, err
	}

	now := uc.clock()
	var confirmed *investment.Investment

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := loadInvestment(txCtx, uc.repo, cmd.InvestmentID)
		if err != nil {
			return err
		}

		err = inv.ConfirmDeposit(investment.DepositConfirmation{
			JPYAmount:  cmd.JPYAmount,
			USDCAmount: cmd.USDCAmount,
			TxHash:     cmd.TxHash,
		}, now)
		if err != nil {
			return err
		}

		if err := uc.repo.Update(txCtx, inv); err != nil {
			return wrapUpdate(inv.ID(), err)
		}

		details := map[string]any{
			"jpy_amount":           cmd.JPYAmount.String(),
			"usdc_amount":          cmd.USDCAmount.String(),
			"tx_hash":              inv.Deployment().TxHash,
			"expected_return_date": inv.ExpectedReturnDate().Format(time.RFC3339),
		}
		if err := appendAudit(txCtx, uc.auditRepo, cmd.Actor, audit.ActionConfirmDeposit, inv.ID(), details, now); err != nil {
			return err
		}

		confirmed = inv
		return nil
	})
	if err != nil {
		logRejected(uc.logger, "confirm deposit", cmd.InvestmentID, err)
		return nil, err
	}

	uc.logger.Infow("deposit confirmed",
		"investment_id", confirmed.ID(),
		"expected_return_date", confirmed.ExpectedReturnDate(),
	)
	publish(ctx, uc.publisher, investment.NewLifecycleEvent(investment.EventActivated, confirmed, now), uc.logger)

	return invdto.ToInvestmentDTO(confirmed, now), nil
}
