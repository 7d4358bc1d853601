package formatters

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"resumebuilder/internal/render"
)

//go:embed templates/*.html.tmpl
var htmlTemplates embed.FS

// ViewHTMLFormatter writes a rendered view as a standalone HTML page. The
// page carries the variant name as a class on the body.
type ViewHTMLFormatter struct {
	tmpl *template.Template
}

// NewViewHTMLFormatter parses the embedded page template.
func NewViewHTMLFormatter() *ViewHTMLFormatter {
	tmpl := template.Must(template.New("view.html.tmpl").
		Funcs(template.FuncMap{"tagSeparator": tagSeparator}).
		ParseFS(htmlTemplates, "templates/view.html.tmpl"))
	return &ViewHTMLFormatter{tmpl: tmpl}
}

func (vhf *ViewHTMLFormatter) Format(data any) (string, error) {
	view, ok := data.(render.View)
	if !ok {
		return "", fmt.Errorf("expected View, got %T", data)
	}

	var buf bytes.Buffer
	if err := vhf.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

func (vhf *ViewHTMLFormatter) SupportedType() string {
	return TypeView
}
