package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// AutoMigrateModels lists every table the service owns.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.ProfileModel{},
		&models.InvestmentModel{},
		&models.WithdrawalPreferenceModel{},
		&models.PrincipalWithdrawalModel{},
		&models.AuditLogModel{},
	}
}

// GormAutoMigrateStrategy creates and alters tables from the model structs.
// Meant for local sqlite runs; it never drops anything.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.auto")}
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return StrategyAuto
}

func (s *GormAutoMigrateStrategy) Up(ctx context.Context, db *gorm.DB) error {
	modelList := AutoMigrateModels()
	if err := db.WithContext(ctx).AutoMigrate(modelList...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	s.logger.Infow("auto-migration completed", "models_count", len(modelList))
	return nil
}

func (s *GormAutoMigrateStrategy) Down(context.Context, *gorm.DB, int) error {
	return fmt.Errorf("down migration is not supported by the %s strategy", StrategyAuto)
}

func (s *GormAutoMigrateStrategy) Version(context.Context, *gorm.DB) (int64, error) {
	return 0, nil
}
