package mappers

import (
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
)

type WithdrawalMapper interface {
	PreferenceToEntity(model *models.WithdrawalPreferenceModel) *withdrawal.Preference
	PreferenceToModel(entity *withdrawal.Preference) *models.WithdrawalPreferenceModel
	RequestToEntity(model *models.PrincipalWithdrawalModel) *withdrawal.PrincipalRequest
	RequestToModel(entity *withdrawal.PrincipalRequest) *models.PrincipalWithdrawalModel
}

type WithdrawalMapperImpl struct{}

func NewWithdrawalMapper() WithdrawalMapper {
	return &WithdrawalMapperImpl{}
}

func (m *WithdrawalMapperImpl) PreferenceToEntity(model *models.WithdrawalPreferenceModel) *withdrawal.Preference {
	if model == nil {
		return nil
	}
	var frequency *withdrawal.Frequency
	if model.Frequency != nil {
		f := withdrawal.Frequency(*model.Frequency)
		frequency = &f
	}
	return withdrawal.ReconstructPreference(
		model.ID,
		model.UserID,
		withdrawal.Type(model.WithdrawalType),
		frequency,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *WithdrawalMapperImpl) PreferenceToModel(entity *withdrawal.Preference) *models.WithdrawalPreferenceModel {
	if entity == nil {
		return nil
	}
	model := &models.WithdrawalPreferenceModel{
		ID:             entity.ID(),
		UserID:         entity.UserID(),
		WithdrawalType: string(entity.Type()),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
	if f := entity.Frequency(); f != nil {
		s := string(*f)
		model.Frequency = &s
	}
	return model
}

func (m *WithdrawalMapperImpl) RequestToEntity(model *models.PrincipalWithdrawalModel) *withdrawal.PrincipalRequest {
	if model == nil {
		return nil
	}
	return withdrawal.ReconstructPrincipalRequest(
		model.ID,
		model.UserID, model.UserEmail,
		model.DepositUSD, model.ExchangeRate, model.IndicatedJPY,
		withdrawal.RequestStatus(model.Status),
		model.RequestedAt.UTC(),
		utcPtr(model.ProcessedAt),
	)
}

func (m *WithdrawalMapperImpl) RequestToModel(entity *withdrawal.PrincipalRequest) *models.PrincipalWithdrawalModel {
	if entity == nil {
		return nil
	}
	return &models.PrincipalWithdrawalModel{
		ID:           entity.ID(),
		UserID:       entity.UserID(),
		UserEmail:    entity.UserEmail(),
		DepositUSD:   entity.DepositUSD(),
		ExchangeRate: entity.ExchangeRate(),
		IndicatedJPY: entity.IndicatedJPY(),
		Status:       string(entity.Status()),
		RequestedAt:  entity.RequestedAt(),
		ProcessedAt:  entity.ProcessedAt(),
	}
}
