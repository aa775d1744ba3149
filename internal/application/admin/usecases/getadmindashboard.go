package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	dto "github.com/perkloop/perkloop/internal/application/admin/dto"
	"github.com/perkloop/perkloop/internal/domain/account"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const defaultMaturingWindowDays = 7

// GetAdminDashboardUseCase handles retrieving the pilot summary.
type GetAdminDashboardUseCase struct {
	accountRepo    account.Repository
	investmentRepo investment.Repository
	roles          RoleChecker
	pilot          config.PilotConfig
	logger         logger.Interface
	clock          func() time.Time
}

// NewGetAdminDashboardUseCase creates a new GetAdminDashboardUseCase.
func NewGetAdminDashboardUseCase(
	accountRepo account.Repository,
	investmentRepo investment.Repository,
	roles RoleChecker,
	pilot config.PilotConfig,
	log logger.Interface,
) *GetAdminDashboardUseCase {
	return &GetAdminDashboardUseCase{
		accountRepo:    accountRepo,
		investmentRepo: investmentRepo,
		roles:          roles,
		pilot:          pilot,
		logger:         log,
		clock:          biztime.NowUTC,
	}
}

// Execute retrieves the admin dashboard snapshot.
func (uc *GetAdminDashboardUseCase) Execute(ctx context.Context, actor Actor) (*dto.AdminDashboardResponse, error) {
	uc.logger.Debugw("fetching admin dashboard", "admin_id", actor.UserID)

	if err := requireAdmin(ctx, uc.roles, actor, uc.logger); err != nil {
		return nil, err
	}

	window := uc.pilot.MaturingWindowDays
	if window <= 0 {
		window = defaultMaturingWindowDays
	}
	now := uc.clock()
	windowEnd := biztime.AddDays(now, window)

	var (
		totalUsers     int64
		totalAUM       decimal.Decimal
		pendingCount   int64
		activeCount    int64
		suspendedCount int64
		maturingSoon   int64
	)

	g, gctx := errgroup.WithContext(ctx)

	// Users: total
	g.Go(func() error {
		count, err := uc.accountRepo.Count(gctx)
		if err != nil {
			return errors.NewInternalError("failed to count users")
		}
		totalUsers = count
		return nil
	})

	// AUM: pending + active deposits
	g.Go(func() error {
		sum, err := uc.investmentRepo.SumDeposits(gctx, vo.OpenStatuses()...)
		if err != nil {
			return errors.NewInternalError("failed to sum deposits")
		}
		totalAUM = sum
		return nil
	})

	// Investments: pending
	g.Go(func() error {
		count, err := uc.investmentRepo.CountByStatus(gctx, vo.StatusPending)
		if err != nil {
			return errors.NewInternalError("failed to count pending deposits")
		}
		pendingCount = count
		return nil
	})

	// Investments: active
	g.Go(func() error {
		count, err := uc.investmentRepo.CountByStatus(gctx, vo.StatusActive)
		if err != nil {
			return errors.NewInternalError("failed to count active investments")
		}
		activeCount = count
		return nil
	})

	// Investments: suspended
	g.Go(func() error {
		count, err := uc.investmentRepo.CountByStatus(gctx, vo.StatusSuspended)
		if err != nil {
			return errors.NewInternalError("failed to count suspended investments")
		}
		suspendedCount = count
		return nil
	})

	// Investments: maturing within the window
	g.Go(func() error {
		count, err := uc.investmentRepo.CountMaturingBetween(gctx, now, windowEnd)
		if err != nil {
			return errors.NewInternalError("failed to count maturing investments")
		}
		maturingSoon = count
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Errorw("failed to build admin dashboard", "error", err)
		return nil, err
	}

	limit := decimal.NewFromInt(uc.pilot.AUMLimitJPY)
	resp := &dto.AdminDashboardResponse{
		TotalUsers:      totalUsers,
		UserLimit:       uc.pilot.UserLimit,
		TotalAUM:        totalAUM,
		AUMLimit:        limit,
		AUMRemaining:    decimal.Max(limit.Sub(totalAUM), decimal.Zero),
		PendingDeposits: pendingCount,
		ActiveCount:     activeCount,
		SuspendedCount:  suspendedCount,
		MaturingSoon:    maturingSoon,
		MaturingWindow:  window,
	}
	if limit.IsPositive() {
		resp.AUMUsedPercent = totalAUM.Div(limit).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	return resp, nil
}
