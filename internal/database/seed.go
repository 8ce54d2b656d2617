package database

import (
	"errors"
	"fmt"
	"strings"

	"klarfix/internal/auth"
	"klarfix/internal/config"
	"klarfix/internal/logger"
	"klarfix/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedFirstAdmin creates the configured admin account once.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdmin.Email))
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", adminEmail).First(&existing).Error
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		name := cfg.FirstAdmin.Name
		if name == "" {
			name = "Administrator"
		}

		admin := &models.User{
			Username:     adminEmail,
			PasswordHash: hash,
			Name:         name,
			Role:         models.UserRoleAdmin,
			Verified:     true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail)
		return nil
	})
}

type demoHelper struct {
	username string
	name     string
	bio      string
	skills   []string
	rating   int
}

var demoHelpers = []demoHelper{
	{
		username: "techwhiz",
		name:     "Alex Thompson",
		bio:      "Computer Science student specializing in hardware repairs and network setup",
		skills:   []string{"Hardware Repair", "Network Setup", "Windows"},
		rating:   5,
	},
	{
		username: "netguru",
		name:     "Sarah Chen",
		bio:      "IT student with expertise in home networks and smart devices",
		skills:   []string{"WiFi Setup", "Smart Home", "Router Configuration"},
		rating:   4,
	},
	{
		username: "codemaster",
		name:     "Marcus Rodriguez",
		bio:      "Software engineering student, expert in software troubleshooting",
		skills:   []string{"Software Installation", "Virus Removal", "Data Recovery"},
		rating:   5,
	},
}

// DemoHelperPassword is the shared password of the seeded demo helpers.
const DemoHelperPassword = "test123"

// SeedDemoHelpers inserts a few online, verified helpers when the users table has none.
func SeedDemoHelpers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleHelper).Count(&count).Error; err != nil {
		return fmt.Errorf("count helpers: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DemoHelperPassword)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, h := range demoHelpers {
			user := &models.User{
				Username:     h.username,
				PasswordHash: hash,
				Name:         h.name,
				Role:         models.UserRoleHelper,
				Bio:          h.bio,
				Skills:       datatypes.JSONSlice[string](h.skills),
				IsOnline:     true,
				Rating:       h.rating,
				Verified:     true,
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("seed helper %s: %w", h.username, err)
			}
		}
		logger.Info("Seeded demo helpers", "count", len(demoHelpers))
		return nil
	})
}
