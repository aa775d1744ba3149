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

type RecordReturnsCommand struct {
	Actor        Actor
	InvestmentID string
	Returns      decimal.Decimal
}

// RecordReturnsUseCase sets the accrued returns of an active investment.
type RecordReturnsUseCase struct {
	repo      investment.Repository
	auditRepo audit.Repository
	roles     RoleChecker
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewRecordReturnsUseCase(
	repo investment.Repository,
	auditRepo audit.Repository,
	roles RoleChecker,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *RecordReturnsUseCase {
	return &RecordReturnsUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		roles:     roles,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *RecordReturnsUseCase) Execute(ctx context.Context, cmd RecordReturnsCommand) (*invdto.InvestmentDTO, error) {
	uc.logger.Infow("executing record returns use case",
		"investment_id", cmd.InvestmentID,
		"returns", cmd.Returns.String(),
		"admin_id", cmd.Actor.UserID,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return nil, err
	}

	now := uc.clock()
	var updated *investment.Investment

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := loadInvestment(txCtx, uc.repo, cmd.InvestmentID)
		if err != nil {
			return err
		}
		previous := inv.Returns()
		if err := inv.RecordReturns(cmd.Returns, now); err != nil {
			return err
		}
		if err := uc.repo.Update(txCtx, inv); err != nil {
			return wrapUpdate(inv.ID(), err)
		}

		details := map[string]any{
			"previous_returns": previous.String(),
			"returns":          inv.Returns().String(),
		}
		if err := appendAudit(txCtx, uc.auditRepo, cmd.Actor, audit.ActionRecordReturns, inv.ID(), details, now); err != nil {
			return err
		}

		updated = inv
		return nil
	})
	if err != nil {
		logRejected(uc.logger, "record returns", cmd.InvestmentID, err)
		return nil, err
	}

	uc.logger.Infow("returns recorded", "investment_id", updated.ID(), "returns", updated.Returns().String())
	return invdto.ToInvestmentDTO(updated, now), nil
}
