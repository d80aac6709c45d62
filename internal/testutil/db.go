// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/romacabello/salon-scheduler/internal/models"
)

// NewDB opens an in-memory sqlite database migrated with the full
// schema. The pool is pinned to a single connection because every new
// connection to :memory: would get its own empty database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.AdminUser{},
		&models.Service{},
		&models.AvailabilityDay{},
		&models.AvailabilityRange{},
		&models.Block{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	))

	return db
}
