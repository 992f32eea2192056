package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/common"
)

func testLogger() arbor.ILogger {
	return arbor.NewLogger()
}

func testConfig(t *testing.T) *common.Config {
	t.Helper()

	root := t.TempDir()
	config := common.NewDefaultConfig()
	config.Site.DataDir = filepath.Join(root, "data")
	config.Site.OutputDir = filepath.Join(root, "output")
	config.Site.TemplatesDir = filepath.Join(root, "templates")
	config.Site.AssetsDir = filepath.Join(root, "assets")
	require.NoError(t, os.MkdirAll(config.Site.DataDir, 0755))
	return config
}

func writeProperty(t *testing.T, dataDir, id string, docs map[string]string) {
	t.Helper()

	dir := filepath.Join(dataDir, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestBuild(t *testing.T) {
	config := testConfig(t)
	writeProperty(t, config.Site.DataDir, "123-main-street", map[string]string{
		"address.json":  `{"street_number": "123", "street_name": "MAIN", "street_suffix_type": "Street", "city_name": "SPRINGFIELD", "state_code": "IL"}`,
		"building.json": `{"property_type": "Single Family", "bedrooms": 3, "parcel_identifier": "10-22-331"}`,
	})
	writeProperty(t, config.Site.DataDir, "9-oak-lane", map[string]string{
		"building.json": `{"property_type": "Condo", "bedrooms": 1}`,
	})

	g, err := New(config, testLogger())
	require.NoError(t, err)

	summary, err := g.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Empty(t, summary.Errors)
	assert.NotEmpty(t, summary.RunID)

	page, err := os.ReadFile(filepath.Join(config.Site.OutputDir, "123-main-street", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "123 Main Street")
	assert.Contains(t, string(page), "Springfield, IL")

	index, err := os.ReadFile(filepath.Join(config.Site.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="/123-main-street/"`)
	assert.Contains(t, string(index), `href="/9-oak-lane/"`)

	sitemap, err := os.ReadFile(filepath.Join(config.Site.OutputDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "123-main-street")
}

func TestBuild_FailureIsolation(t *testing.T) {
	config := testConfig(t)
	writeProperty(t, config.Site.DataDir, "bad", map[string]string{
		"building.json": `{"property_type": "Condo"}`,
	})
	writeProperty(t, config.Site.DataDir, "good", map[string]string{
		"building.json": `{"property_type": "Condo", "bedrooms": 2}`,
	})

	// A file squatting on bad's output path makes that property, and only
	// that property, fail its write.
	require.NoError(t, os.MkdirAll(config.Site.OutputDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.Site.OutputDir, "bad"), []byte("in the way"), 0644))

	g, err := New(config, testLogger())
	require.NoError(t, err)

	summary, err := g.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Errors, "bad")

	_, err = os.Stat(filepath.Join(config.Site.OutputDir, "good", "index.html"))
	assert.NoError(t, err)
}

func TestBuild_CopiesAssetsAndPropertyFiles(t *testing.T) {
	config := testConfig(t)
	require.NoError(t, os.MkdirAll(config.Site.AssetsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.Site.AssetsDir, "styles.css"), []byte("body{}"), 0644))

	writeProperty(t, config.Site.DataDir, "prop", map[string]string{
		"building.json": `{"property_type": "Condo"}`,
		"photo.jpg":     "jpegbytes",
	})

	g, err := New(config, testLogger())
	require.NoError(t, err)

	_, err = g.Build(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(config.Site.OutputDir, "assets", "styles.css"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(config.Site.OutputDir, "prop", "photo.jpg"))
	assert.NoError(t, err)
}

func TestBuild_InlineCSSAndDescription(t *testing.T) {
	config := testConfig(t)
	config.Site.InlineCSS = true
	require.NoError(t, os.MkdirAll(config.Site.AssetsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(config.Site.AssetsDir, "styles.css"), []byte(".hero{margin:0}"), 0644))

	writeProperty(t, config.Site.DataDir, "prop", map[string]string{
		"building.json":  `{"property_type": "Condo"}`,
		"description.md": "A **lovely** home.",
	})

	g, err := New(config, testLogger())
	require.NoError(t, err)

	_, err = g.Build(context.Background())
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(config.Site.OutputDir, "prop", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), ".hero{margin:0}")
	assert.Contains(t, string(page), "<strong>lovely</strong>")
	// description.md is source material, not a site artifact
	_, err = os.Stat(filepath.Join(config.Site.OutputDir, "prop", "description.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuild_LiveReloadOnlyInDevelopment(t *testing.T) {
	config := testConfig(t)
	config.Environment = "development"
	writeProperty(t, config.Site.DataDir, "prop", map[string]string{
		"building.json": `{"property_type": "Condo"}`,
	})

	g, err := New(config, testLogger())
	require.NoError(t, err)
	_, err = g.Build(context.Background())
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(config.Site.OutputDir, "prop", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "new WebSocket")

	config.Environment = "production"
	g, err = New(config, testLogger())
	require.NoError(t, err)
	_, err = g.Build(context.Background())
	require.NoError(t, err)

	page, err = os.ReadFile(filepath.Join(config.Site.OutputDir, "prop", "index.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(page), "new WebSocket")
}

func TestBuildOne(t *testing.T) {
	config := testConfig(t)
	writeProperty(t, config.Site.DataDir, "prop", map[string]string{
		"building.json": `{"property_type": "Condo"}`,
	})

	g, err := New(config, testLogger())
	require.NoError(t, err)

	require.NoError(t, g.BuildOne(context.Background(), "prop"))

	_, err = os.Stat(filepath.Join(config.Site.OutputDir, "prop", "index.html"))
	assert.NoError(t, err)
}

func TestBuild_CancelledContext(t *testing.T) {
	config := testConfig(t)
	writeProperty(t, config.Site.DataDir, "prop", map[string]string{
		"building.json": `{"property_type": "Condo"}`,
	})

	g, err := New(config, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
