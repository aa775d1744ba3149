package mappers

import (
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
)

type ProfileMapper interface {
	ToEntity(model *models.ProfileModel) *profile.Profile
	ToModel(entity *profile.Profile) *models.ProfileModel
}

type ProfileMapperImpl struct{}

func NewProfileMapper() ProfileMapper {
	return &ProfileMapperImpl{}
}

func (m *ProfileMapperImpl) ToEntity(model *models.ProfileModel) *profile.Profile {
	if model == nil {
		return nil
	}
	return profile.ReconstructProfile(
		model.UserID,
		model.Email,
		profile.BankAccount{
			HolderName:    model.BankHolderName,
			BankName:      model.BankName,
			Branch:        model.BankBranch,
			AccountNumber: model.BankAccountNumber,
			AccountType:   model.BankAccountType,
		},
		profile.Balances{
			WithdrawalPrincipalUSD: model.WithdrawalPrincipalUSD,
			JPYDeposit:             model.JPYDeposit,
			TotalReturnsUSD:        model.TotalReturnsUSD,
		},
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *ProfileMapperImpl) ToModel(entity *profile.Profile) *models.ProfileModel {
	if entity == nil {
		return nil
	}
	bank := entity.BankAccount()
	balances := entity.Balances()
	return &models.ProfileModel{
		UserID:                 entity.UserID(),
		Email:                  entity.Email(),
		BankHolderName:         bank.HolderName,
		BankName:               bank.BankName,
		BankBranch:             bank.Branch,
		BankAccountNumber:      bank.AccountNumber,
		BankAccountType:        bank.AccountType,
		WithdrawalPrincipalUSD: balances.WithdrawalPrincipalUSD,
		JPYDeposit:             balances.JPYDeposit,
		TotalReturnsUSD:        balances.TotalReturnsUSD,
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
	}
}
