package email

import "context"

// Provider delivers e-mails.
type Provider interface {
	Send(ctx context.Context, email *Email) error

	// Validate checks the provider configuration.
	Validate() error

	Close() error
}

// TemplateRenderer renders a named template.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
