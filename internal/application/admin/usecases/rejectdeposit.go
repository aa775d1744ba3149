package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type RejectDepositCommand struct {
	Actor        Actor
	InvestmentID string
	Reason       string
}

// RejectDepositUseCase deletes a pending investment whose funds never
// arrived. The deletion is audited with enough detail to identify the row.
type RejectDepositUseCase struct {
	repo      investment.Repository
	auditRepo audit.Repository
	roles     RoleChecker
	publisher EventPublisher
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewRejectDepositUseCase(
	repo investment.Repository,
	auditRepo audit.Repository,
	roles RoleChecker,
	publisher EventPublisher,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *RejectDepositUseCase {
	return &RejectDepositUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		roles:     roles,
		publisher: publisher,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *RejectDepositUseCase) Execute(ctx context.Context, cmd RejectDepositCommand) error {
	uc.logger.Infow("executing reject deposit use case",
		"investment_id", cmd.InvestmentID,
		"admin_id", cmd.Actor.UserID,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return err
	}

	now := uc.clock()
	var rejected *investment.Investment

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := loadInvestment(txCtx, uc.repo, cmd.InvestmentID)
		if err != nil {
			return err
		}
		if err := inv.EnsureDeletable(); err != nil {
			return err
		}
		if err := uc.repo.Delete(txCtx, inv.ID()); err != nil {
			return wrapDelete(inv.ID(), err)
		}

		details := map[string]any{
			"user_id":        inv.UserID(),
			"product_name":   inv.ProductName(),
			"deposit_amount": inv.DepositAmount().String(),
			"payment_method": inv.PaymentMethod().String(),
		}
		if code := inv.ReferenceCode(); code != nil {
			details["reference_code"] = *code
		}
		if cmd.Reason != "" {
			details["reason"] = cmd.Reason
		}
		if err := appendAudit(txCtx, uc.auditRepo, cmd.Actor, audit.ActionRejectDeposit, inv.ID(), details, now); err != nil {
			return err
		}

		rejected = inv
		return nil
	})
	if err != nil {
		logRejected(uc.logger, "reject deposit", cmd.InvestmentID, err)
		return err
	}

	uc.logger.Infow("pending deposit rejected", "investment_id", rejected.ID(), "user_id", rejected.UserID())
	publish(ctx, uc.publisher, investment.NewLifecycleEvent(investment.EventRejected, rejected, now), uc.logger)
	return nil
}
