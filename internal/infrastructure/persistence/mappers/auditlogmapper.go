package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
)

type AuditLogMapper interface {
	ToEntity(model *models.AuditLogModel) (*audit.Entry, error)
	ToModel(entity *audit.Entry) (*models.AuditLogModel, error)
}

type AuditLogMapperImpl struct{}

func NewAuditLogMapper() AuditLogMapper {
	return &AuditLogMapperImpl{}
}

func (m *AuditLogMapperImpl) ToEntity(model *models.AuditLogModel) (*audit.Entry, error) {
	if model == nil {
		return nil, nil
	}
	details := map[string]any{}
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit details (id=%d): %w", model.ID, err)
		}
	}
	return audit.ReconstructEntry(
		model.ID,
		model.AdminUserID,
		audit.ActionType(model.ActionType),
		model.InvestmentID,
		details,
		model.IPAddress,
		model.CreatedAt.UTC(),
	), nil
}

func (m *AuditLogMapperImpl) ToModel(entity *audit.Entry) (*models.AuditLogModel, error) {
	if entity == nil {
		return nil, nil
	}
	details, err := json.Marshal(entity.Details())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit details: %w", err)
	}
	return &models.AuditLogModel{
		ID:           entity.ID(),
		AdminUserID:  entity.AdminUserID(),
		ActionType:   string(entity.Action()),
		InvestmentID: entity.InvestmentID(),
		Details:      datatypes.JSON(details),
		IPAddress:    entity.IPAddress(),
		CreatedAt:    entity.CreatedAt(),
	}, nil
}
