package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type counterRow struct {
	ID     uint `gorm:"primaryKey"`
	Status string
}

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&counterRow{}))
	return gdb
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	gdb := setupTestDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, GetTxFromContext(ctx, gdb).Create(&counterRow{Status: "pending"}).Error)
		return errors.New("abort")
	})
	require.Error(t, err)

	var count int64
	gdb.Model(&counterRow{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRunInTransaction_NestedJoinsOuter(t *testing.T) {
	gdb := setupTestDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return tm.RunInTransaction(ctx, func(inner context.Context) error {
			return GetTxFromContext(inner, gdb).Create(&counterRow{Status: "active"}).Error
		})
	})
	require.NoError(t, err)

	var rows []counterRow
	require.NoError(t, gdb.Scopes(StatusIn("active", "pending"), Limit(10)).Find(&rows).Error)
	assert.Len(t, rows, 1)
}
