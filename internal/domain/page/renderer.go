// Where: internal/domain/page/renderer.go
// What: Render the HTML page for a variant from embedded or override templates.
// Why: Keep markup out of the handler and parse templates once at startup.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/sprig/v3"
)

const layoutTemplate = "layout.html.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// Renderer turns a Context into an HTML document.
type Renderer struct {
	variant Variant
	tmpl    *template.Template
}

// NewRenderer parses the template for variant. When overridePath is set the
// file is parsed instead of the embedded layout and must be a full document.
func NewRenderer(variant Variant, overridePath string) (*Renderer, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if strings.TrimSpace(overridePath) != "" {
		tmpl, err = parseOverride(overridePath)
	} else {
		tmpl, err = loadTemplate(variant)
	}
	if err != nil {
		return nil, err
	}
	return &Renderer{variant: variant, tmpl: tmpl}, nil
}

// Variant returns the variant the renderer was built for.
func (r *Renderer) Variant() Variant {
	return r.variant
}

// Render executes the template into a buffer so a failure never leaves a
// partial document behind.
func (r *Renderer) Render(ctx Context) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render %s page: %w", r.variant, err)
	}
	return buf.String(), nil
}

func loadTemplate(variant Variant) (*template.Template, error) {
	if value, ok := templateCache.Load(variant); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", variant)
		}
		return cached, nil
	}
	if _, err := ParseVariant(string(variant)); err != nil {
		return nil, err
	}
	tmpl, err := template.New(layoutTemplate).
		Funcs(sprig.FuncMap()).
		ParseFS(templateFS, "templates/"+layoutTemplate, "templates/"+string(variant)+".html.tmpl")
	if err != nil {
		return nil, err
	}
	templateCache.Store(variant, tmpl)
	return tmpl, nil
}

func parseOverride(path string) (*template.Template, error) {
	tmpl, err := template.New(filepath.Base(path)).Funcs(sprig.FuncMap()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return tmpl, nil
}
