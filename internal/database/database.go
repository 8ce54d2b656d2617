package database

import (
	"fmt"
	"time"

	"klarfix/internal/config"
	"klarfix/internal/logger"
	"klarfix/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        gormlogger.LogLevel
}

func DefaultOptions(env string) Options {
	opts := Options{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		LogLevel:        gormlogger.Warn,
	}
	if env == "test" {
		opts.LogLevel = gormlogger.Silent
	}
	return opts
}

// Dialector picks the GORM driver for the configured backend.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects, tunes the pool and pings the database.
func Open(driver, dsn string, opts Options) (*gorm.DB, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// OpenFromConfig is Open with settings taken from cfg.
func OpenFromConfig(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.Database.Driver, cfg.Database.DSN, DefaultOptions(cfg.Server.Env))
}

// AutoMigrate creates or updates every table plus the indexes GORM tags cannot express.
// Production PostgreSQL deployments use the SQL files under migrations/ instead.
func AutoMigrate(db *gorm.DB) error {
	start := time.Now()
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		logger.DBLog("automigrate", time.Since(start), err)
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := createPartialIndexes(db); err != nil {
		logger.DBLog("automigrate", time.Since(start), err)
		return err
	}

	logger.DBLog("automigrate", time.Since(start), nil)
	return nil
}

// createPartialIndexes enforces one open-or-approved verification per user.
// MySQL has no partial indexes; there the service-level check is the only guard.
func createPartialIndexes(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_verifications_user_active
			ON verifications (user_id) WHERE status IN ('pending', 'approved')`).Error
		if err != nil {
			return fmt.Errorf("create verification index: %w", err)
		}
	}
	return nil
}

// Ping checks connectivity, used by the health endpoint.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
