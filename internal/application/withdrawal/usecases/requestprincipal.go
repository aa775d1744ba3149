package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/application/withdrawal/dto"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type RequestPrincipalCommand struct {
	UserID string
}

// RequestPrincipalWithdrawalUseCase records a request for the user's
// withdrawable principal, quoted in JPY at the current rate. Payment is
// made by hand, so at most one request may be pending per user.
type RequestPrincipalWithdrawalUseCase struct {
	requests  withdrawal.PrincipalRequestRepository
	profiles  profile.Repository
	rates     ExchangeRateSource
	notifier  WithdrawalNotifier
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewRequestPrincipalWithdrawalUseCase(
	requests withdrawal.PrincipalRequestRepository,
	profiles profile.Repository,
	rates ExchangeRateSource,
	notifier WithdrawalNotifier,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *RequestPrincipalWithdrawalUseCase {
	return &RequestPrincipalWithdrawalUseCase{
		requests:  requests,
		profiles:  profiles,
		rates:     rates,
		notifier:  notifier,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *RequestPrincipalWithdrawalUseCase) Execute(ctx context.Context, cmd RequestPrincipalCommand) (*dto.PrincipalRequestDTO, error) {
	uc.logger.Infow("executing request principal withdrawal use case", "user_id", cmd.UserID)

	p, err := uc.profiles.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.WrapPersistence("get profile", cmd.UserID, err)
	}

	principal := p.Balances().WithdrawalPrincipalUSD
	if !principal.IsPositive() {
		return nil, errors.NewValidationError("no principal is available to withdraw")
	}

	rate, err := uc.rates.ExchangeRate()
	if err != nil {
		uc.logger.Warnw("exchange rate unavailable for withdrawal quote", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	req, err := withdrawal.NewPrincipalRequest(cmd.UserID, p.Email(), principal, rate, uc.clock())
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		pending, err := uc.requests.HasPending(txCtx, cmd.UserID)
		if err != nil {
			return errors.WrapPersistence("check pending withdrawal", cmd.UserID, err)
		}
		if pending {
			return errors.NewConflictError("a principal withdrawal request is already pending")
		}
		if err := uc.requests.Create(txCtx, req); err != nil {
			return errors.WrapPersistence("create principal withdrawal", cmd.UserID, err)
		}
		return nil
	})
	if err != nil {
		if !errors.IsConflictError(err) {
			uc.logger.Errorw("failed to create principal withdrawal request", "user_id", cmd.UserID, "error", err)
		}
		return nil, err
	}

	uc.logger.Infow("principal withdrawal requested",
		"request_id", req.ID(),
		"user_id", cmd.UserID,
		"deposit_usd", req.DepositUSD().String(),
		"indicated_jpy", req.IndicatedJPY().String(),
	)

	if uc.notifier != nil {
		notice := PrincipalWithdrawalNotice{
			RequestID:    req.ID(),
			UserEmail:    req.UserEmail(),
			DepositUSD:   req.DepositUSD(),
			ExchangeRate: req.ExchangeRate(),
			IndicatedJPY: req.IndicatedJPY(),
			RequestedAt:  req.RequestedAt(),
		}
		if err := uc.notifier.NotifyPrincipalWithdrawal(ctx, notice); err != nil {
			uc.logger.Warnw("failed to notify admins of withdrawal request", "request_id", req.ID(), "error", err)
		}
	}

	return dto.ToPrincipalRequestDTO(req), nil
}
