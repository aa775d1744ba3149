// Package migration applies the database schema with goose, golang-migrate
// or gorm AutoMigrate.
package migration

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// Manager runs the strategy selected by configuration.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy named in cfg. An empty name means goose.
func NewManager(cfg config.MigrationConfig, database config.DatabaseConfig, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	switch strings.ToLower(cfg.Strategy) {
	case "", StrategyGoose:
		strategy = NewGooseStrategy(database.Driver, cfg.ScriptsPath, log)
	case StrategyGolangMigrate:
		s, err := NewGolangMigrateStrategy(database, log)
		if err != nil {
			return nil, err
		}
		strategy = s
	case StrategyAuto:
		strategy = NewGormAutoMigrateStrategy(log)
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", cfg.Strategy)
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Up(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())
	if err := m.strategy.Up(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) Down(ctx context.Context, db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	m.logger.Infow("rolling back database migration", "strategy", m.strategy.GetName(), "steps", steps)
	return m.strategy.Down(ctx, db, steps)
}

func (m *Manager) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	return m.strategy.Version(ctx, db)
}

// Status prints per-script status when the strategy can; otherwise it logs
// the applied version.
func (m *Manager) Status(ctx context.Context, db *gorm.DB) error {
	if g, ok := m.strategy.(*GooseStrategy); ok {
		return g.Status(ctx, db)
	}
	version, err := m.strategy.Version(ctx, db)
	if err != nil {
		return err
	}
	m.logger.Infow("current migration version", "strategy", m.strategy.GetName(), "version", version)
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// gooseLogger routes goose output into the service logger.
type gooseLogger struct {
	logger logger.Interface
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Infow(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalw(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
