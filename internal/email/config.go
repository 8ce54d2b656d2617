package email

import "time"

// SMTPConfig holds the SMTP server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:    "localhost",
		Port:    587,
		UseTLS:  true,
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether enough settings are present to talk to a server.
func (c *SMTPConfig) Enabled() bool {
	return c != nil && c.Host != "" && c.FromEmail != ""
}
