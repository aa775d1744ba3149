package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/shared/config"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"
	StrategyAuto          = "auto"
)

// Strategy applies schema changes to the database.
type Strategy interface {
	Up(ctx context.Context, db *gorm.DB) error
	Down(ctx context.Context, db *gorm.DB, steps int) error
	// Version returns the applied schema version; 0 means nothing applied.
	Version(ctx context.Context, db *gorm.DB) (int64, error)
	GetName() string
}

// GooseStrategy runs goose-format scripts. When scriptsPath is empty the
// scripts bundled with the binary are used.
type GooseStrategy struct {
	dialect     string
	scriptsPath string
	logger      logger.Interface
}

func NewGooseStrategy(driver, scriptsPath string, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		dialect:     driver,
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) GetName() string {
	return StrategyGoose
}

func (s *GooseStrategy) prepare(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	var fsys fs.FS
	if s.scriptsPath != "" {
		fsys = os.DirFS(s.scriptsPath)
	} else {
		fsys, err = scriptsFS("goose", s.dialect)
		if err != nil {
			return nil, fmt.Errorf("no bundled goose scripts for %s: %w", s.dialect, err)
		}
	}
	goose.SetBaseFS(fsys)
	goose.SetLogger(&gooseLogger{logger: s.logger})

	if err := goose.SetDialect(gooseDialect(s.dialect)); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return sqlDB, nil
}

func (s *GooseStrategy) Up(ctx context.Context, db *gorm.DB) error {
	conn, err := s.prepare(db)
	if err != nil {
		return err
	}

	currentVersion, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	conn, err := s.prepare(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, conn, "."); err != nil {
			s.logger.Errorw("down migration failed", "error", err, "step", i+1)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	conn, err := s.prepare(db)
	if err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

// Status prints the applied and pending scripts through the goose logger.
func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) error {
	conn, err := s.prepare(db)
	if err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	return nil
}

func gooseDialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return driver
}

// GolangMigrateStrategy runs up/down script pairs with golang-migrate. It
// opens its own connection from the database config, because closing a
// migrate instance closes the database handle it was given.
type GolangMigrateStrategy struct {
	database config.DatabaseConfig
	logger   logger.Interface
}

func NewGolangMigrateStrategy(database config.DatabaseConfig, log logger.Interface) (*GolangMigrateStrategy, error) {
	if database.Driver != "mysql" && database.Driver != "postgres" {
		return nil, fmt.Errorf("golang_migrate does not support driver %q, use goose", database.Driver)
	}
	return &GolangMigrateStrategy{
		database: database,
		logger:   log.With("component", "migration.golang-migrate"),
	}, nil
}

func (s *GolangMigrateStrategy) GetName() string {
	return StrategyGolangMigrate
}

func (s *GolangMigrateStrategy) databaseURL() string {
	d := s.database
	host := d.Host + ":" + strconv.Itoa(d.Port)
	if d.Driver == "postgres" {
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.Username, d.Password),
			Host:     host,
			Path:     "/" + d.Database,
			RawQuery: "sslmode=" + url.QueryEscape(sslMode),
		}
		return u.String()
	}
	return fmt.Sprintf("mysql://%s:%s@tcp(%s)/%s?multiStatements=true",
		d.Username, d.Password, host, d.Database)
}

func (s *GolangMigrateStrategy) open() (*migrate.Migrate, error) {
	fsys, err := scriptsFS("migrate", s.database.Driver)
	if err != nil {
		return nil, fmt.Errorf("no bundled scripts for %s: %w", s.database.Driver, err)
	}
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, s.databaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func (s *GolangMigrateStrategy) Up(_ context.Context, _ *gorm.DB) error {
	m, err := s.open()
	if err != nil {
		return err
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually", "version", currentVersion)
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) Down(_ context.Context, _ *gorm.DB, steps int) error {
	m, err := s.open()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Version(_ context.Context, _ *gorm.DB) (int64, error) {
	m, err := s.open()
	if err != nil {
		return 0, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	if dirty {
		return int64(version), fmt.Errorf("database is in dirty state at version %d", version)
	}
	return int64(version), nil
}
