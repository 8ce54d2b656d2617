package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver      string `yaml:"driver"` // postgres, mysql, sqlite
		DSN         string `yaml:"url"`
		AutoMigrate bool   `yaml:"auto_migrate"`
		SeedDemo    bool   `yaml:"seed_demo"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	JWT struct {
		Secret     string        `yaml:"secret"`
		TTL        time.Duration `yaml:"ttl"`
		CookieName string        `yaml:"cookie_name"`
	} `yaml:"jwt"`

	Payments struct {
		PlatformFeePercent int `yaml:"platform_fee_percent"`
	} `yaml:"payments"`

	RateLimit struct {
		ContactPerMinute int `yaml:"contact_per_minute"`
		ContactBurst     int `yaml:"contact_burst"`
	} `yaml:"rate_limit"`

	FirstAdmin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"first_admin"`
}

// PlaceholderJWTSecret is the secret committed in config/config.yaml.
const PlaceholderJWTSecret = "change-me-in-production-change-me-now"

// IsProduction reports whether the server runs with env=production.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Default returns a config with every default filled in.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:4000"}
	cfg.Database.Driver = "postgres"
	cfg.JWT.TTL = 7 * 24 * time.Hour
	cfg.JWT.CookieName = "auth_token"
	cfg.Payments.PlatformFeePercent = 20
	cfg.RateLimit.ContactPerMinute = 5
	cfg.RateLimit.ContactBurst = 5
	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Klarfix"
	return &cfg
}

// LoadConfig reads .env (if any), then the YAML file at CONFIG_PATH
// (default config/config.yaml, optional), then applies environment overrides.
func LoadConfig() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if err := loadFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && os.Getenv("CONFIG_PATH") == "" {
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.TTL = d
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")

	setInt(&cfg.Payments.PlatformFeePercent, "PLATFORM_FEE_PERCENT")
	setInt(&cfg.RateLimit.ContactPerMinute, "CONTACT_RATE_PER_MINUTE")

	setString(&cfg.FirstAdmin.Email, "FIRST_ADMIN_EMAIL")
	setString(&cfg.FirstAdmin.Password, "FIRST_ADMIN_PASSWORD")
	setString(&cfg.FirstAdmin.Name, "FIRST_ADMIN_NAME")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required (JWT_SECRET)")
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters in production")
	}
	if c.IsProduction() && c.JWT.Secret == PlaceholderJWTSecret {
		return fmt.Errorf("jwt secret is the config.yaml placeholder; set JWT_SECRET in production")
	}
	if c.Payments.PlatformFeePercent < 0 || c.Payments.PlatformFeePercent > 100 {
		return fmt.Errorf("platform_fee_percent must be between 0 and 100")
	}
	return nil
}
