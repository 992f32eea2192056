package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Site        SiteConfig    `toml:"site"`
	Server      ServerConfig  `toml:"server"`
	Watch       WatchConfig   `toml:"watch"`
	Logging     LoggingConfig `toml:"logging"`
}

// SiteConfig describes the site being generated: where the property data
// lives, where output goes, and how pages are rendered.
type SiteConfig struct {
	Title        string `toml:"title"`
	Domain       string `toml:"domain"` // Base URL for absolute links in sitemap and meta tags
	DataDir      string `toml:"data_dir" validate:"required"`
	OutputDir    string `toml:"output_dir" validate:"required"`
	TemplatesDir string `toml:"templates_dir"` // Optional user template overrides
	AssetsDir    string `toml:"assets_dir"`    // Optional shared static assets
	InlineCSS    bool   `toml:"inline_css"`    // Inline stylesheet into each page instead of linking
	InlineJS     bool   `toml:"inline_js"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=0,lte=65535"`
	Host string `toml:"host"`
}

// WatchConfig tunes the development server's file watching and reload push.
type WatchConfig struct {
	Debounce       string `toml:"debounce"`        // e.g. "300ms" - settle time after a file change before rebuilding
	ReloadThrottle string `toml:"reload_throttle"` // e.g. "500ms" - minimum interval between reload broadcasts
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in factsheet.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Site: SiteConfig{
			Title:     "Property Fact Sheets",
			DataDir:   "./data",
			OutputDir: "./public",
			AssetsDir: "./assets",
		},
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Watch: WatchConfig{
			Debounce:       "300ms",
			ReloadThrottle: "500ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks configuration invariants after all overrides are applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, field := range []struct{ name, value string }{
		{"watch.debounce", c.Watch.Debounce},
		{"watch.reload_throttle", c.Watch.ReloadThrottle},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("invalid configuration: %s: %w", field.name, err)
		}
	}
	return nil
}

// DebounceDuration returns the parsed watch debounce, falling back to the
// default when unset.
func (c *Config) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(c.Watch.Debounce); err == nil && d > 0 {
		return d
	}
	return 300 * time.Millisecond
}

// ReloadThrottleDuration returns the parsed reload throttle interval.
func (c *Config) ReloadThrottleDuration() time.Duration {
	if d, err := time.ParseDuration(c.Watch.ReloadThrottle); err == nil && d > 0 {
		return d
	}
	return 500 * time.Millisecond
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FACTSHEET_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Site configuration
	if title := os.Getenv("FACTSHEET_SITE_TITLE"); title != "" {
		config.Site.Title = title
	}
	if domain := os.Getenv("FACTSHEET_SITE_DOMAIN"); domain != "" {
		config.Site.Domain = domain
	}
	if dataDir := os.Getenv("FACTSHEET_DATA_DIR"); dataDir != "" {
		config.Site.DataDir = dataDir
	}
	if outputDir := os.Getenv("FACTSHEET_OUTPUT_DIR"); outputDir != "" {
		config.Site.OutputDir = outputDir
	}
	if templatesDir := os.Getenv("FACTSHEET_TEMPLATES_DIR"); templatesDir != "" {
		config.Site.TemplatesDir = templatesDir
	}
	if assetsDir := os.Getenv("FACTSHEET_ASSETS_DIR"); assetsDir != "" {
		config.Site.AssetsDir = assetsDir
	}
	if inlineCSS := os.Getenv("FACTSHEET_SITE_INLINE_CSS"); inlineCSS != "" {
		if v, err := strconv.ParseBool(inlineCSS); err == nil {
			config.Site.InlineCSS = v
		}
	}
	if inlineJS := os.Getenv("FACTSHEET_SITE_INLINE_JS"); inlineJS != "" {
		if v, err := strconv.ParseBool(inlineJS); err == nil {
			config.Site.InlineJS = v
		}
	}

	// Server configuration
	if port := os.Getenv("FACTSHEET_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FACTSHEET_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Watch configuration
	if debounce := os.Getenv("FACTSHEET_WATCH_DEBOUNCE"); debounce != "" {
		if _, err := time.ParseDuration(debounce); err == nil {
			config.Watch.Debounce = debounce
		}
	}
	if throttle := os.Getenv("FACTSHEET_WATCH_RELOAD_THROTTLE"); throttle != "" {
		if _, err := time.ParseDuration(throttle); err == nil {
			config.Watch.ReloadThrottle = throttle
		}
	}

	// Logging configuration
	if level := os.Getenv("FACTSHEET_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("FACTSHEET_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("FACTSHEET_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
