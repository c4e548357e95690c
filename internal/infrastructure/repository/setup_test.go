package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
)

var testNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

func seedAccount(t *testing.T, gdb *gorm.DB, username, role string, verified bool, createdAt time.Time) *models.AccountModel {
	t.Helper()
	var token *string
	if !verified {
		v := "hash-" + username
		token = &v
	}
	row := &models.AccountModel{
		Username:          username,
		Email:             username + "@example.com",
		PasswordHash:      "x",
		Role:              role,
		IsVerified:        verified,
		VerificationToken: token,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
	require.NoError(t, gdb.Create(row).Error)
	return row
}
