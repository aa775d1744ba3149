package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/perkloop/perkloop/internal/shared/logger"
)

var migrationNameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator writes new goose script files into a scripts directory.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	clock       func() time.Time
}

func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		clock:       time.Now,
	}
}

// CreateMigration writes <timestamp>_<name>.sql and returns its path.
func (g *Generator) CreateMigration(name string) (string, error) {
	if !migrationNameRegex.MatchString(name) {
		return "", fmt.Errorf("migration name must be lower snake case: %q", name)
	}
	if g.scriptsPath == "" {
		return "", fmt.Errorf("migration.scripts_path is not set")
	}

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	now := g.clock()
	fileName := fmt.Sprintf("%s_%s.sql", now.UTC().Format("20060102150405"), name)
	filePath := filepath.Join(g.scriptsPath, fileName)

	content := fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up

-- +goose Down

`, name, now.UTC().Format(time.RFC3339))

	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write migration file: %w", err)
	}

	g.logger.Infow("migration file created", "file", filePath)
	return filePath, nil
}
