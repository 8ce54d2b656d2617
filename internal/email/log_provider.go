package email

import (
	"context"
	"strings"

	"klarfix/internal/logger"
)

// LogProvider writes messages to the log instead of sending them.
// Used when SMTP is not configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email not sent (smtp disabled)",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) Validate() error { return nil }
func (p *LogProvider) Close() error    { return nil }
