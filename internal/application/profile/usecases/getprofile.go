package usecases

import (
	"context"

	"github.com/perkloop/perkloop/internal/application/profile/dto"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type GetProfileQuery struct {
	UserID string
}

type GetProfileUseCase struct {
	repo   profile.Repository
	logger logger.Interface
}

func NewGetProfileUseCase(repo profile.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*dto.ProfileDTO, error) {
	p, err := uc.repo.GetByUserID(ctx, query.UserID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to get profile", "user_id", query.UserID, "error", err)
		}
		return nil, errors.WrapPersistence("get profile", query.UserID, err)
	}
	return dto.ToProfileDTO(p), nil
}
