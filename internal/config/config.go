// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Render  RenderConfig  `yaml:"render"`
	Build   BuildConfig   `yaml:"build"`
	Parse   ParseConfig   `yaml:"parse"`
	Log     LogConfig     `yaml:"log"`
}

// ContentConfig locates the post sources.
type ContentConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"` // doublestar glob relative to Dir
}

// OutputConfig controls where and how output is written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // renderer name
}

// RenderConfig contains renderer options.
type RenderConfig struct {
	WordWrap     int    `yaml:"word_wrap"`
	Color        bool   `yaml:"color"`
	GlamourStyle string `yaml:"glamour_style"`
	FrontMatter  bool   `yaml:"front_matter"`
}

// BuildConfig contains batch build options.
type BuildConfig struct {
	Concurrency int  `yaml:"concurrency"` // 0 uses the number of CPUs
	Drafts      bool `yaml:"drafts"`
}

// ParseConfig contains post parsing options.
type ParseConfig struct {
	FrontMatter   bool `yaml:"front_matter"`
	ExcerptLength int  `yaml:"excerpt_length"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level string `yaml:"level"`
}

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Dir:     "content",
			Pattern: "**/*.md",
		},
		Output: OutputConfig{
			Dir:    "public",
			Format: "html",
		},
		Render: RenderConfig{
			WordWrap:     80,
			GlamourStyle: "auto",
		},
		Parse: ParseConfig{
			FrontMatter:   true,
			ExcerptLength: 160,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyEnv overrides configuration values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("POSTMD_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if os.Getenv("POSTMD_COLOR") != "" {
		c.Render.Color = GetEnvBool("POSTMD_COLOR")
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Render.Color = false
	}
	if v := os.Getenv("POSTMD_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// Keys returns the keys accepted by Set.
func Keys() []string {
	return []string{
		"content.dir",
		"content.pattern",
		"output.dir",
		"output.format",
		"render.word_wrap",
		"render.color",
		"render.glamour_style",
		"render.front_matter",
		"build.concurrency",
		"build.drafts",
		"parse.front_matter",
		"parse.excerpt_length",
		"log.level",
	}
}

// Set updates a single value addressed by its dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "content.dir":
		c.Content.Dir = value
	case "content.pattern":
		c.Content.Pattern = value
	case "output.dir":
		c.Output.Dir = value
	case "output.format":
		c.Output.Format = value
	case "render.word_wrap":
		return setInt(&c.Render.WordWrap, key, value)
	case "render.color":
		return setBool(&c.Render.Color, key, value)
	case "render.glamour_style":
		c.Render.GlamourStyle = value
	case "render.front_matter":
		return setBool(&c.Render.FrontMatter, key, value)
	case "build.concurrency":
		return setInt(&c.Build.Concurrency, key, value)
	case "build.drafts":
		return setBool(&c.Build.Drafts, key, value)
	case "parse.front_matter":
		return setBool(&c.Parse.FrontMatter, key, value)
	case "parse.excerpt_length":
		return setInt(&c.Parse.ExcerptLength, key, value)
	case "log.level":
		level := strings.ToLower(value)
		if !contains(LogLevels, level) {
			return fmt.Errorf("invalid log level: %s (supported: %s)", value, strings.Join(LogLevels, ", "))
		}
		c.Log.Level = level
	default:
		return fmt.Errorf("unknown config key: %s\nsupported keys: %s", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer for %s: %s", key, value)
	}
	if n < 0 {
		return fmt.Errorf("%s must not be negative: %d", key, n)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for %s: %s", key, value)
	}
	*dst = b
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
