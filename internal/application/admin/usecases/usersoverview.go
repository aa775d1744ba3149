package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	dto "github.com/perkloop/perkloop/internal/application/admin/dto"
	profiledto "github.com/perkloop/perkloop/internal/application/profile/dto"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// GetUsersOverviewUseCase lists every profile beside the user's investment
// totals. Recorded balances are never corrected here; drift is only reported.
type GetUsersOverviewUseCase struct {
	profiles    profile.Repository
	investments investment.Repository
	roles       RoleChecker
	pilot       config.PilotConfig
	logger      logger.Interface
}

func NewGetUsersOverviewUseCase(
	profiles profile.Repository,
	investments investment.Repository,
	roles RoleChecker,
	pilot config.PilotConfig,
	logger logger.Interface,
) *GetUsersOverviewUseCase {
	return &GetUsersOverviewUseCase{
		profiles:    profiles,
		investments: investments,
		roles:       roles,
		pilot:       pilot,
		logger:      logger,
	}
}

func (uc *GetUsersOverviewUseCase) Execute(ctx context.Context, actor Actor) (*dto.UsersOverviewResponse, error) {
	if err := requireAdmin(ctx, uc.roles, actor, uc.logger); err != nil {
		return nil, err
	}

	profiles, err := uc.profiles.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list profiles", "error", err)
		return nil, errors.WrapPersistence("list profiles", "", err)
	}
	totals, err := uc.investments.TotalsByUser(ctx)
	if err != nil {
		uc.logger.Errorw("failed to aggregate investments by user", "error", err)
		return nil, errors.WrapPersistence("aggregate investments", "", err)
	}

	byUser := make(map[string]investment.UserTotals, len(totals))
	for _, t := range totals {
		byUser[t.UserID] = t
	}

	users := make([]dto.UserOverviewDTO, 0, len(profiles))
	drifted := 0
	for _, p := range profiles {
		t, ok := byUser[p.UserID()]
		if !ok {
			t = investment.UserTotals{
				UserID:         p.UserID(),
				OpenDeposits:   decimal.Zero,
				ActiveDeposits: decimal.Zero,
				Returns:        decimal.Zero,
			}
		}
		div := p.CompareWithInvestments(t.ActiveDeposits)
		if div.HasDrift() {
			drifted++
		}
		users = append(users, dto.UserOverviewDTO{
			UserID:         p.UserID(),
			Email:          p.Email(),
			OpenDeposits:   t.OpenDeposits,
			ActiveDeposits: t.ActiveDeposits,
			ActiveCount:    t.ActiveCount,
			PendingCount:   t.PendingCount,
			Returns:        t.Returns,
			Balances:       profiledto.ToBalancesDTO(p.Balances()),
			Divergence:     profiledto.ToDivergenceDTO(div),
		})
	}

	if drifted > 0 {
		uc.logger.Warnw("recorded balances diverge from investments", "users", drifted)
	}

	return &dto.UsersOverviewResponse{
		Users:     users,
		UserCount: len(users),
		UserLimit: uc.pilot.UserLimit,
	}, nil
}
