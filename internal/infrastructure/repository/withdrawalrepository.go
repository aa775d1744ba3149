package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/mappers"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type WithdrawalPreferenceRepository struct {
	db     *gorm.DB
	mapper mappers.WithdrawalMapper
	logger logger.Interface
}

func NewWithdrawalPreferenceRepository(gdb *gorm.DB, logger logger.Interface) withdrawal.PreferenceRepository {
	return &WithdrawalPreferenceRepository{
		db:     gdb,
		mapper: mappers.NewWithdrawalMapper(),
		logger: logger,
	}
}

// Upsert relies on the (user_id, withdrawal_type) unique index.
func (r *WithdrawalPreferenceRepository) Upsert(ctx context.Context, p *withdrawal.Preference) error {
	model := r.mapper.PreferenceToModel(p)
	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "withdrawal_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"frequency", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert withdrawal preference", "user_id", p.UserID(), "error", err)
		return fmt.Errorf("failed to upsert withdrawal preference: %w", err)
	}
	if model.ID != 0 {
		p.SetID(model.ID)
	}
	return nil
}

func (r *WithdrawalPreferenceRepository) ListByUser(ctx context.Context, userID string) ([]*withdrawal.Preference, error) {
	var items []*models.WithdrawalPreferenceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("withdrawal_type ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal preferences: %w", err)
	}
	result := make([]*withdrawal.Preference, 0, len(items))
	for _, model := range items {
		result = append(result, r.mapper.PreferenceToEntity(model))
	}
	return result, nil
}

type PrincipalWithdrawalRepository struct {
	db     *gorm.DB
	mapper mappers.WithdrawalMapper
	logger logger.Interface
}

func NewPrincipalWithdrawalRepository(gdb *gorm.DB, logger logger.Interface) withdrawal.PrincipalRequestRepository {
	return &PrincipalWithdrawalRepository{
		db:     gdb,
		mapper: mappers.NewWithdrawalMapper(),
		logger: logger,
	}
}

func (r *PrincipalWithdrawalRepository) Create(ctx context.Context, req *withdrawal.PrincipalRequest) error {
	model := r.mapper.RequestToModel(req)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create principal withdrawal", "user_id", req.UserID(), "error", err)
		return fmt.Errorf("failed to create principal withdrawal: %w", err)
	}
	req.SetID(model.ID)
	return nil
}

func (r *PrincipalWithdrawalRepository) Update(ctx context.Context, req *withdrawal.PrincipalRequest) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.PrincipalWithdrawalModel{}).
		Where("id = ?", req.ID()).
		Updates(map[string]any{
			"status":       string(req.Status()),
			"processed_at": req.ProcessedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update principal withdrawal", "id", req.ID(), "error", result.Error)
		return fmt.Errorf("failed to update principal withdrawal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return withdrawal.ErrRequestNotFound(req.ID())
	}
	return nil
}

func (r *PrincipalWithdrawalRepository) GetByID(ctx context.Context, id uint) (*withdrawal.PrincipalRequest, error) {
	var model models.PrincipalWithdrawalModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, withdrawal.ErrRequestNotFound(id)
		}
		return nil, fmt.Errorf("failed to get principal withdrawal: %w", err)
	}
	return r.mapper.RequestToEntity(&model), nil
}

func (r *PrincipalWithdrawalRepository) List(ctx context.Context, status withdrawal.RequestStatus) ([]*withdrawal.PrincipalRequest, error) {
	var items []*models.PrincipalWithdrawalModel
	query := db.GetTxFromContext(ctx, r.db).Order("requested_at DESC").Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list principal withdrawals: %w", err)
	}
	result := make([]*withdrawal.PrincipalRequest, 0, len(items))
	for _, model := range items {
		result = append(result, r.mapper.RequestToEntity(model))
	}
	return result, nil
}

func (r *PrincipalWithdrawalRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.PrincipalWithdrawalModel{}).
		Where("user_id = ? AND status = ?", userID, string(withdrawal.RequestStatusPending)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pending withdrawals: %w", err)
	}
	return count > 0, nil
}
