package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	dto "github.com/perkloop/perkloop/internal/application/admin/dto"
	profiledto "github.com/perkloop/perkloop/internal/application/profile/dto"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type UpdateBalancesCommand struct {
	Actor                  Actor
	UserID                 string
	WithdrawalPrincipalUSD decimal.Decimal
	JPYDeposit             decimal.Decimal
	TotalReturnsUSD        decimal.Decimal
}

// UpdateBalancesUseCase edits a profile's recorded balances. Divergence
// from the investment rows is logged and returned, never reconciled.
type UpdateBalancesUseCase struct {
	profiles    profile.Repository
	investments investment.Repository
	auditRepo   audit.Repository
	roles       RoleChecker
	txManager   db.TransactionRunner
	logger      logger.Interface
	clock       func() time.Time
}

func NewUpdateBalancesUseCase(
	profiles profile.Repository,
	investments investment.Repository,
	auditRepo audit.Repository,
	roles RoleChecker,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *UpdateBalancesUseCase {
	return &UpdateBalancesUseCase{
		profiles:    profiles,
		investments: investments,
		auditRepo:   auditRepo,
		roles:       roles,
		txManager:   txManager,
		logger:      logger,
		clock:       biztime.NowUTC,
	}
}

func (uc *UpdateBalancesUseCase) Execute(ctx context.Context, cmd UpdateBalancesCommand) (*dto.BalanceUpdateDTO, error) {
	uc.logger.Infow("executing update balances use case",
		"user_id", cmd.UserID,
		"admin_id", cmd.Actor.UserID,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return nil, err
	}

	now := uc.clock()
	var (
		updated *profile.Profile
		div     profile.Divergence
	)

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		p, err := uc.profiles.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return errors.WrapPersistence("get profile", cmd.UserID, err)
		}
		if p == nil {
			return profile.ErrNotFound(cmd.UserID)
		}

		previous := p.Balances()
		err = p.SetBalances(profile.Balances{
			WithdrawalPrincipalUSD: cmd.WithdrawalPrincipalUSD,
			JPYDeposit:             cmd.JPYDeposit,
			TotalReturnsUSD:        cmd.TotalReturnsUSD,
		}, now)
		if err != nil {
			return err
		}
		if err := uc.profiles.Update(txCtx, p); err != nil {
			return errors.WrapPersistence("update profile", cmd.UserID, err)
		}

		invs, err := uc.investments.ListByUser(txCtx, cmd.UserID)
		if err != nil {
			return errors.WrapPersistence("list user investments", cmd.UserID, err)
		}
		invested := decimal.Zero
		for _, inv := range invs {
			if inv.Status() == vo.StatusActive {
				invested = invested.Add(inv.DepositAmount())
			}
		}
		div = p.CompareWithInvestments(invested)

		details := map[string]any{
			"user_id": cmd.UserID,
			"previous": map[string]string{
				"withdrawal_principal_usd": previous.WithdrawalPrincipalUSD.String(),
				"jpy_deposit":              previous.JPYDeposit.String(),
				"total_returns_usd":        previous.TotalReturnsUSD.String(),
			},
			"balances": map[string]string{
				"withdrawal_principal_usd": cmd.WithdrawalPrincipalUSD.String(),
				"jpy_deposit":              cmd.JPYDeposit.String(),
				"total_returns_usd":        cmd.TotalReturnsUSD.String(),
			},
			"divergence_jpy": div.DifferenceJPY.String(),
		}
		if err := appendAudit(txCtx, uc.auditRepo, cmd.Actor, audit.ActionUpdateProfileBalances, "", details, now); err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		if errors.IsValidationError(err) || errors.IsNotFoundError(err) {
			uc.logger.Warnw("update balances rejected", "user_id", cmd.UserID, "error", err)
		} else {
			uc.logger.Errorw("failed to update balances", "user_id", cmd.UserID, "error", err)
		}
		return nil, err
	}

	if div.HasDrift() {
		uc.logger.Warnw("recorded jpy balance diverges from active deposits",
			"user_id", cmd.UserID,
			"recorded_jpy", div.RecordedJPY.String(),
			"investment_jpy", div.InvestmentJPY.String(),
			"difference_jpy", div.DifferenceJPY.String(),
		)
	}

	return &dto.BalanceUpdateDTO{
		Profile:    profiledto.ToProfileDTO(updated),
		Divergence: profiledto.ToDivergenceDTO(div),
	}, nil
}
