package usecases

import (
	"context"
	"time"

	invdto "github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type ListInvestmentsQuery struct {
	Actor  Actor
	Status string
	UserID string
}

// ListInvestmentsUseCase lists investments across all users, newest first.
type ListInvestmentsUseCase struct {
	repo   investment.Repository
	roles  RoleChecker
	logger logger.Interface
	clock  func() time.Time
}

func NewListInvestmentsUseCase(repo investment.Repository, roles RoleChecker, logger logger.Interface) *ListInvestmentsUseCase {
	return &ListInvestmentsUseCase{
		repo:   repo,
		roles:  roles,
		logger: logger,
		clock:  biztime.NowUTC,
	}
}

func (uc *ListInvestmentsUseCase) Execute(ctx context.Context, query ListInvestmentsQuery) ([]*invdto.InvestmentDTO, error) {
	if err := requireAdmin(ctx, uc.roles, query.Actor, uc.logger); err != nil {
		return nil, err
	}

	filter := investment.ListFilter{UserID: query.UserID}
	if query.Status != "" {
		status, err := vo.NewStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", query.Status)
		}
		filter.Statuses = []vo.Status{status}
	}

	items, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list investments", "status", query.Status, "error", err)
		return nil, errors.WrapPersistence("list investments", "", err)
	}

	return invdto.ToInvestmentDTOs(items, uc.clock()), nil
}
