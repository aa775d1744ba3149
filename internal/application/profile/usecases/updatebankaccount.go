package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/application/profile/dto"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type UpdateBankAccountCommand struct {
	UserID        string
	HolderName    string
	BankName      string
	Branch        string
	AccountNumber string
	AccountType   string
}

// UpdateBankAccountUseCase edits the caller's own payout details. Balances
// are not touched here; only administrators change those.
type UpdateBankAccountUseCase struct {
	repo   profile.Repository
	logger logger.Interface
	clock  func() time.Time
}

func NewUpdateBankAccountUseCase(repo profile.Repository, logger logger.Interface) *UpdateBankAccountUseCase {
	return &UpdateBankAccountUseCase{
		repo:   repo,
		logger: logger,
		clock:  biztime.NowUTC,
	}
}

func (uc *UpdateBankAccountUseCase) Execute(ctx context.Context, cmd UpdateBankAccountCommand) (*dto.ProfileDTO, error) {
	uc.logger.Infow("executing update bank account use case", "user_id", cmd.UserID)

	p, err := uc.repo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.WrapPersistence("get profile", cmd.UserID, err)
	}

	err = p.UpdateBankAccount(profile.BankAccount{
		HolderName:    cmd.HolderName,
		BankName:      cmd.BankName,
		Branch:        cmd.Branch,
		AccountNumber: cmd.AccountNumber,
		AccountType:   cmd.AccountType,
	}, uc.clock())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", cmd.UserID, "error", err)
		return nil, errors.WrapPersistence("update profile", cmd.UserID, err)
	}

	uc.logger.Infow("bank account updated", "user_id", cmd.UserID, "complete", p.BankAccount().IsComplete())
	return dto.ToProfileDTO(p), nil
}
