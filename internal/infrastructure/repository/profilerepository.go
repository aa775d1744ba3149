package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/mappers"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type ProfileRepository struct {
	db     *gorm.DB
	mapper mappers.ProfileMapper
	logger logger.Interface
}

func NewProfileRepository(gdb *gorm.DB, logger logger.Interface) profile.Repository {
	return &ProfileRepository{
		db:     gdb,
		mapper: mappers.NewProfileMapper(),
		logger: logger,
	}
}

func (r *ProfileRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	if err := r.conn(ctx).Create(r.mapper.ToModel(p)).Error; err != nil {
		r.logger.Errorw("failed to create profile", "user_id", p.UserID(), "error", err)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	model := r.mapper.ToModel(p)
	result := r.conn(ctx).Model(&models.ProfileModel{UserID: model.UserID}).
		Select("*").
		Omit("created_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update profile", "user_id", p.UserID(), "error", result.Error)
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return profile.ErrNotFound(p.UserID())
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	var model models.ProfileModel
	if err := r.conn(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrNotFound(userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return r.mapper.ToEntity(&model), nil
}

func (r *ProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*profile.Profile, error) {
	result := make(map[string]*profile.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var items []*models.ProfileModel
	if err := r.conn(ctx).Where("user_id IN ?", userIDs).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	for _, model := range items {
		result[model.UserID] = r.mapper.ToEntity(model)
	}
	return result, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	var items []*models.ProfileModel
	if err := r.conn(ctx).Order("created_at ASC").Order("user_id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	result := make([]*profile.Profile, 0, len(items))
	for _, model := range items {
		result = append(result, r.mapper.ToEntity(model))
	}
	return result, nil
}
