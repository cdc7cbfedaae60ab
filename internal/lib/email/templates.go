package email

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render executes the named template with data.
func Render(name Template, data any) (string, error) {
	tmpl := templates.Lookup(string(name) + ".html")
	if tmpl == nil {
		return "", errors.Errorf("unknown email template %q", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}
