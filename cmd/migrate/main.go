package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"klarfix/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	logger.Init(os.Getenv("SERVER_ENV"))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}

	m, err := migrate.New("file://"+migrationsPath, dbURL)
	if err != nil {
		logger.Fatal("migration init failed", "error", err)
	}
	defer m.Close()

	m.Log = &migrateLogger{}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("up failed", "error", err)
		}
		logger.Info("migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				logger.Fatal("down: invalid steps argument", "arg", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("down failed", "error", err)
		}
		logger.Info("migrations: down completed", "steps", steps)

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal("version failed", "error", err)
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			logger.Fatal("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			logger.Fatal("force: invalid version", "arg", args[1])
		}
		if err := m.Force(v); err != nil {
			logger.Fatal("force failed", "error", err)
		}
		logger.Info("migrations: forced", "version", v)

	default:
		usage()
		os.Exit(1)
	}
}

type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...any) {
	logger.Info(fmt.Sprintf(format, v...))
}

func (l *migrateLogger) Verbose() bool { return false }

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print the current migration version
  force <V>    Set the migration version without running it

Environment:
  DATABASE_URL      Required. PostgreSQL URL.
  MIGRATIONS_PATH   Path to the migrations directory (default: ./migrations)`)
}
