package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/mappers"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// AuditLogRepository only appends and reads.
type AuditLogRepository struct {
	db     *gorm.DB
	mapper mappers.AuditLogMapper
	logger logger.Interface
}

func NewAuditLogRepository(gdb *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditLogRepository{
		db:     gdb,
		mapper: mappers.NewAuditLogMapper(),
		logger: logger,
	}
}

func (r *AuditLogRepository) Append(ctx context.Context, e *audit.Entry) error {
	model, err := r.mapper.ToModel(e)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit log", "action", e.Action(), "error", err)
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	var items []*models.AuditLogModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NewestFirst(), db.Limit(limit)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	result := make([]*audit.Entry, 0, len(items))
	for _, model := range items {
		entry, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}
