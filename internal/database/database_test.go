package database

import (
	"testing"

	"klarfix/internal/config"
	"klarfix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared", DefaultOptions("test"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestDialector_Unknown(t *testing.T) {
	_, err := Dialector("oracle", "x")
	assert.Error(t, err)
}

func TestSeedFirstAdmin_Idempotent(t *testing.T) {
	db := openMemory(t)

	cfg := config.Default()
	cfg.FirstAdmin.Email = "admin@klarfix.de"
	cfg.FirstAdmin.Password = "secret123"

	require.NoError(t, SeedFirstAdmin(db, cfg))
	require.NoError(t, SeedFirstAdmin(db, cfg))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.UserRoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].Verified)
	assert.NotEqual(t, "secret123", admins[0].PasswordHash)
}

func TestSeedDemoHelpers(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, SeedDemoHelpers(db))
	require.NoError(t, SeedDemoHelpers(db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ? AND is_online = ?", models.UserRoleHelper, true).Count(&count).Error)
	assert.EqualValues(t, len(demoHelpers), count)
}

func TestVerificationPartialIndex(t *testing.T) {
	db := openMemory(t)

	user := &models.User{Username: "h@x.de", Name: "H", Role: models.UserRoleHelper, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	newVerification := func(status models.VerificationStatus) *models.Verification {
		return &models.Verification{
			UserID: user.ID, RouterSetup: "a", FirewallSetting: "b", WindowsIssue: "c", CableTypes: "d",
			WPSExplanation: "x", TechnicalExperience: "y", ToolsUsed: "z", Status: status,
		}
	}

	require.NoError(t, db.Create(newVerification(models.VerificationStatusRejected)).Error)
	require.NoError(t, db.Create(newVerification(models.VerificationStatusRejected)).Error)
	require.NoError(t, db.Create(newVerification(models.VerificationStatusPending)).Error)

	err := db.Create(newVerification(models.VerificationStatusPending)).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
