package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type ListUserInvestmentsQuery struct {
	UserID string
}

type ListUserInvestmentsUseCase struct {
	repo   investment.Repository
	logger logger.Interface
	clock  func() time.Time
}

func NewListUserInvestmentsUseCase(repo investment.Repository, logger logger.Interface) *ListUserInvestmentsUseCase {
	return &ListUserInvestmentsUseCase{
		repo:   repo,
		logger: logger,
		clock:  biztime.NowUTC,
	}
}

func (uc *ListUserInvestmentsUseCase) Execute(ctx context.Context, query ListUserInvestmentsQuery) ([]*dto.InvestmentDTO, error) {
	items, err := uc.repo.ListByUser(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list investments", "user_id", query.UserID, "error", err)
		return nil, errors.WrapPersistence("list investments", query.UserID, err)
	}
	return dto.ToInvestmentDTOs(items, uc.clock()), nil
}

type GetInvestmentQuery struct {
	UserID       string
	InvestmentID string
}

type GetInvestmentUseCase struct {
	repo   investment.Repository
	logger logger.Interface
	clock  func() time.Time
}

func NewGetInvestmentUseCase(repo investment.Repository, logger logger.Interface) *GetInvestmentUseCase {
	return &GetInvestmentUseCase{
		repo:   repo,
		logger: logger,
		clock:  biztime.NowUTC,
	}
}

func (uc *GetInvestmentUseCase) Execute(ctx context.Context, query GetInvestmentQuery) (*dto.InvestmentDTO, error) {
	inv, err := loadOwned(ctx, uc.repo, query.InvestmentID, query.UserID)
	if err != nil {
		return nil, err
	}
	return dto.ToInvestmentDTO(inv, uc.clock()), nil
}
