// Package site drives whole-site builds: it discovers property directories,
// assembles and renders each one, copies assets, and writes the listing page
// and sitemap. One property's failure never stops its siblings.
package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/assemble"
	"github.com/ternarybob/factsheet/internal/common"
	"github.com/ternarybob/factsheet/internal/models"
	"github.com/ternarybob/factsheet/internal/render"
)

// Generator builds the static site described by the configuration.
type Generator struct {
	config    *common.Config
	assembler *assemble.Assembler
	renderer  *render.Renderer
	logger    arbor.ILogger
}

// New creates a generator.
func New(config *common.Config, logger arbor.ILogger) (*Generator, error) {
	renderer, err := render.New(config.Site.TemplatesDir, logger)
	if err != nil {
		return nil, err
	}

	return &Generator{
		config:    config,
		assembler: assemble.New(logger),
		renderer:  renderer,
		logger:    logger,
	}, nil
}

// Build assembles and renders every property directory under data_dir,
// writes the listing page and sitemap, and copies shared assets. The
// returned summary reports per-property outcomes.
func (g *Generator) Build(ctx context.Context) (*models.BuildSummary, error) {
	start := time.Now()
	summary := &models.BuildSummary{
		RunID:  common.NewRunID(),
		Errors: map[string]string{},
	}

	ids, err := g.discoverProperties()
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("run_id", summary.RunID).
		Int("properties", len(ids)).
		Str("output", g.config.Site.OutputDir).
		Msg("Site build started")

	var records []*models.PropertyRecord
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := g.buildProperty(id)
		if err != nil {
			summary.Failed++
			summary.Errors[id] = err.Error()
			g.logger.Error().Err(err).Str("property_id", id).Msg("Property build failed")
			continue
		}
		summary.Succeeded++
		records = append(records, record)
	}

	if err := g.copyAssets(); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to copy shared assets")
	}
	if err := g.writeIndex(records); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to write listing page")
	}
	if err := g.writeSitemap(records); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to write sitemap")
	}

	summary.Duration = time.Since(start)

	g.logger.Info().
		Str("run_id", summary.RunID).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg("Site build finished")

	return summary, nil
}

// BuildOne rebuilds a single property from scratch. The development server
// calls this when a file under the property's directory changes; nothing is
// cached between invocations.
func (g *Generator) BuildOne(ctx context.Context, propertyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := g.buildProperty(propertyID)
	return err
}

func (g *Generator) buildProperty(propertyID string) (*models.PropertyRecord, error) {
	propertyDir := filepath.Join(g.config.Site.DataDir, propertyID)

	record, err := g.assembler.Assemble(propertyDir)
	if err != nil {
		return nil, err
	}

	opts := g.renderOptions()
	opts.Description = render.DescriptionHTML(propertyDir, g.logger)

	page, err := g.renderer.RenderProperty(record, opts)
	if err != nil {
		return nil, err
	}

	outDir := filepath.Join(g.config.Site.OutputDir, propertyID)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "index.html"), []byte(page), 0644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	if err := g.copyPropertyFiles(propertyDir, outDir); err != nil {
		g.logger.Warn().Err(err).Str("property_id", propertyID).Msg("Failed to copy property files")
	}

	return record, nil
}

// discoverProperties returns the sorted property ids: every subdirectory of
// data_dir.
func (g *Generator) discoverProperties() ([]string, error) {
	entries, err := os.ReadDir(g.config.Site.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", g.config.Site.DataDir, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (g *Generator) renderOptions() render.Options {
	opts := render.Options{
		SiteTitle:  g.config.Site.Title,
		Domain:     g.config.Site.Domain,
		InlineJS:   g.config.Site.InlineJS,
		LiveReload: g.config.Environment == "development",
	}

	if g.config.Site.InlineCSS {
		css, err := os.ReadFile(filepath.Join(g.config.Site.AssetsDir, "styles.css"))
		if err == nil {
			opts.CSS = string(css)
		}
	}

	return opts
}

// copyPropertyFiles copies the non-JSON siblings of a property directory
// (images and the like) next to the rendered page.
func (g *Generator) copyPropertyFiles(propertyDir, outDir string) error {
	entries, err := os.ReadDir(propertyDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, ".json") || name == "description.md" {
			continue
		}
		if err := copyFile(filepath.Join(propertyDir, name), filepath.Join(outDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// copyAssets mirrors the shared assets directory into output/assets.
func (g *Generator) copyAssets() error {
	src := g.config.Site.AssetsDir
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}

	dst := filepath.Join(g.config.Site.OutputDir, "assets")
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func (g *Generator) writeIndex(records []*models.PropertyRecord) error {
	page, err := g.renderer.RenderIndex(records, g.renderOptions())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.config.Site.OutputDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.config.Site.OutputDir, "index.html"), []byte(page), 0644)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
