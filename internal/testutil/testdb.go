package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"klarfix/internal/auth"
	"klarfix/internal/database"
	"klarfix/internal/models"

	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// NewTestDB opens a private in-memory SQLite database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := database.Open("sqlite", dsn, database.DefaultOptions("test"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser stores user with password hashed. Empty name and username get defaults.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, password string) *models.User {
	t.Helper()

	if user.Username == "" {
		user.Username = fmt.Sprintf("user%d@klarfix.test", dbCounter.Add(1))
	}
	if user.Name == "" {
		user.Name = "Test User"
	}
	if user.Role == "" {
		user.Role = models.UserRoleClient
	}
	if password == "" {
		password = "password123"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user.PasswordHash = hash

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", user.Username, err)
	}
	return user
}

func CreateHelper(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	return CreateUser(t, db, &models.User{Name: name, Role: models.UserRoleHelper, IsOnline: true}, "")
}

func CreateClient(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	return CreateUser(t, db, &models.User{Name: name, Role: models.UserRoleClient}, "")
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, &models.User{Name: "Admin", Role: models.UserRoleAdmin, Verified: true}, "")
}
