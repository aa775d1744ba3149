package mappers

import (
	"github.com/perkloop/perkloop/internal/domain/account"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) *account.User
	ToModel(entity *account.User) *models.UserModel
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) *account.User {
	if model == nil {
		return nil
	}
	return account.ReconstructUser(model.ID, model.Email, model.PasswordHash, model.CreatedAt.UTC(), model.UpdatedAt.UTC())
}

func (m *UserMapperImpl) ToModel(entity *account.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		Email:        entity.Email(),
		PasswordHash: entity.PasswordHash(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}
