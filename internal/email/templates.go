package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the application.
const (
	TemplateConfirmation = "posting_confirmation"
	TemplateAlertDigest  = "alert_digest"
)

// TemplateManager is an in-memory TemplateRenderer.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the built-in
// templates.
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
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

var builtinTemplates = map[string]string{
	TemplateConfirmation: `
<html>
<body>
  <h2>Your job posting is live</h2>
  <p><strong>{{.Title}}</strong> at <strong>{{.Company}}</strong> is now published.</p>
  <p>View it here: <a href="{{.ViewLink}}">{{.ViewLink}}</a></p>
  <p>Keep this link safe, it is the only way to edit, deactivate or
  reactivate your posting:</p>
  <p><a href="{{.EditLink}}">{{.EditLink}}</a></p>
  <p>Your posting stays live for 60 days from creation.</p>
</body>
</html>`,

	TemplateAlertDigest: `
<html>
<body>
  <h2>New farm and ranch jobs for you</h2>
  <ul>
  {{range .Postings}}
    <li><a href="{{.Link}}">{{.Title}}</a> &mdash; {{.Company}}, {{.Location}}</li>
  {{end}}
  </ul>
  <p><a href="{{.UnsubLink}}">Unsubscribe from these alerts</a></p>
</body>
</html>`,
}
