package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/application/withdrawal/dto"
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/mapper"
)

type SetPreferenceCommand struct {
	UserID         string
	WithdrawalType string
	Frequency      string
}

// SetPreferenceUseCase saves how a user wants one kind of withdrawal paid,
// replacing any earlier choice for the same kind.
type SetPreferenceUseCase struct {
	repo   withdrawal.PreferenceRepository
	logger logger.Interface
	clock  func() time.Time
}

func NewSetPreferenceUseCase(repo withdrawal.PreferenceRepository, logger logger.Interface) *SetPreferenceUseCase {
	return &SetPreferenceUseCase{
		repo:   repo,
		logger: logger,
		clock:  biztime.NowUTC,
	}
}

func (uc *SetPreferenceUseCase) Execute(ctx context.Context, cmd SetPreferenceCommand) (*dto.PreferenceDTO, error) {
	uc.logger.Infow("executing set withdrawal preference use case",
		"user_id", cmd.UserID,
		"withdrawal_type", cmd.WithdrawalType,
		"frequency", cmd.Frequency,
	)

	pref, err := withdrawal.NewPreference(cmd.UserID, withdrawal.Type(cmd.WithdrawalType), cmd.Frequency, uc.clock())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Upsert(ctx, pref); err != nil {
		uc.logger.Errorw("failed to save withdrawal preference", "user_id", cmd.UserID, "error", err)
		return nil, errors.WrapPersistence("upsert withdrawal preference", cmd.UserID, err)
	}

	result := dto.ToPreferenceDTO(pref)
	return &result, nil
}

type ListPreferencesUseCase struct {
	repo   withdrawal.PreferenceRepository
	logger logger.Interface
}

func NewListPreferencesUseCase(repo withdrawal.PreferenceRepository, logger logger.Interface) *ListPreferencesUseCase {
	return &ListPreferencesUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListPreferencesUseCase) Execute(ctx context.Context, userID string) ([]dto.PreferenceDTO, error) {
	prefs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list withdrawal preferences", "user_id", userID, "error", err)
		return nil, errors.WrapPersistence("list withdrawal preferences", userID, err)
	}

	return mapper.MapSlice(prefs, dto.ToPreferenceDTO), nil
}
