// Package render turns assembled property records into HTML pages.
// Templates follow the resolution order of embedded defaults overridden by
// user files in the configured templates directory.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/models"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options control how a page is rendered.
type Options struct {
	SiteTitle   string
	Domain      string        // Base URL for absolute asset links; empty means relative
	CSS         string        // Inline stylesheet content, empty links /assets/styles.css
	InlineJS    bool
	LiveReload  bool          // Inject the dev-server reload script
	Description template.HTML // Rendered markdown description, may be empty
}

// Renderer renders property fact sheets and the site index.
type Renderer struct {
	tmpl   *template.Template
	logger arbor.ILogger
}

// New parses the embedded templates and, when templatesDir is set, overlays
// any user overrides found there.
func New(templatesDir string, logger arbor.ILogger) (*Renderer, error) {
	tmpl, err := template.New("factsheet").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}

	if templatesDir != "" {
		if _, err := os.Stat(templatesDir); err == nil {
			pattern := filepath.Join(templatesDir, "*.html")
			if matches, _ := filepath.Glob(pattern); len(matches) > 0 {
				tmpl, err = tmpl.ParseGlob(pattern)
				if err != nil {
					return nil, fmt.Errorf("failed to parse template overrides in %s: %w", templatesDir, err)
				}
				logger.Debug().Str("dir", templatesDir).Int("files", len(matches)).Msg("User template overrides loaded")
			}
		}
	}

	return &Renderer{tmpl: tmpl, logger: logger}, nil
}

// pageData is what templates receive.
type pageData struct {
	Record  *models.PropertyRecord
	Options Options
}

// indexData feeds the listing page template.
type indexData struct {
	Records []*models.PropertyRecord
	Options Options
}

// RenderProperty renders one fact sheet page.
func (r *Renderer) RenderProperty(record *models.PropertyRecord, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "factsheet.html", pageData{Record: record, Options: opts}); err != nil {
		return "", fmt.Errorf("failed to render property %s: %w", record.Property.ID, err)
	}
	return buf.String(), nil
}

// RenderIndex renders the listing page over all built properties.
func (r *Renderer) RenderIndex(records []*models.PropertyRecord, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index.html", indexData{Records: records, Options: opts}); err != nil {
		return "", fmt.Errorf("failed to render index: %w", err)
	}
	return buf.String(), nil
}

// DescriptionHTML converts an optional description.md in the property
// directory to HTML. A missing file yields empty content; a conversion
// failure is logged and degrades the same way.
func DescriptionHTML(propertyDir string, logger arbor.ILogger) template.HTML {
	data, err := os.ReadFile(filepath.Join(propertyDir, "description.md"))
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(data, &buf); err != nil {
		logger.Warn().Err(err).Str("dir", propertyDir).Msg("Failed to convert description markdown")
		return ""
	}
	return template.HTML(buf.String())
}
