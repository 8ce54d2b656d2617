package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateContactRequest       = "contact_request"
	TemplateVerificationDecision = "verification_decision"
	TemplateApplicationReceived  = "application_received"
)

var builtinTemplates = map[string]string{
	TemplateContactRequest: `<p>Hallo {{.HelperName}},</p>
<p>jemand möchte zurückgerufen werden: <strong>{{.ClientPhone}}</strong>.</p>
<p>Du findest die Anfrage in deinem Dashboard.</p>`,

	TemplateVerificationDecision: `<p>Hallo {{.Name}},</p>
{{if .Approved}}<p>deine Verifizierung wurde bestätigt. Du erscheinst jetzt als verifizierter Helfer.</p>
{{else}}<p>deine Verifizierung wurde leider abgelehnt.</p>{{end}}
{{if .Feedback}}<p>Feedback: {{.Feedback}}</p>{{end}}`,

	TemplateApplicationReceived: `<p>Hallo {{.Name}},</p>
<p>wir haben deine Anfrage (#{{.ApplicationID}}) erhalten und melden uns per {{.ContactMethod}}.</p>`,
}

// TemplateManager renders HTML e-mail bodies.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
