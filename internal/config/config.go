package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix marks environment variables that override book.toml
const EnvPrefix = "GENSUMMARY_"

// BookConfig contains metadata about the book
type BookConfig struct {
	Title       string   `toml:"title"`
	Authors     []string `toml:"authors"`
	Description string   `toml:"description"`
	Language    string   `toml:"language"`
	Src         string   `toml:"src"` // Source directory, defaults to "src"
}

// DefaultBookConfig returns a book config with defaults
func DefaultBookConfig() BookConfig {
	return BookConfig{
		Title:       "My Book",
		Authors:     []string{},
		Description: "",
		Language:    "en",
		Src:         "src",
	}
}

// BuildConfig contains build settings
type BuildConfig struct {
	BuildDir      string `toml:"build-dir"`
	CreateMissing bool   `toml:"create-missing"`
}

// DefaultBuildConfig returns a build config with defaults
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		BuildDir:      "book",
		CreateMissing: false,
	}
}

// Config is the top-level configuration
type Config struct {
	Book         BookConfig             `toml:"book"`
	Build        BuildConfig            `toml:"build"`
	Preprocessor map[string]interface{} `toml:"preprocessor"`
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Book:         DefaultBookConfig(),
		Build:        DefaultBuildConfig(),
		Preprocessor: make(map[string]interface{}),
	}
}

// LoadFromFile loads configuration from a book.toml file. A .env file next
// to it is loaded first; variables already set in the environment win.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := LoadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	return parse(data)
}

// LoadFromString loads configuration from a TOML string
func LoadFromString(content string) (*Config, error) {
	return parse([]byte(content))
}

func parse(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Preprocessor == nil {
		cfg.Preprocessor = make(map[string]interface{})
	}

	cfg.UpdateFromEnv()
	return cfg, nil
}

// LoadDotEnv loads variables from an optional dotenv file
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat '%s': %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load '%s': %w", path, err)
	}
	return nil
}

// UpdateFromEnv updates config from environment variables
// Variables starting with GENSUMMARY_ are used
// GENSUMMARY_FOO_BAR -> foo-bar
// GENSUMMARY_FOO__BAR -> foo.bar
func (c *Config) UpdateFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], EnvPrefix)
		value := parts[1]

		// Convert GENSUMMARY_KEY format to config key
		configKey := strings.ToLower(key)
		configKey = strings.ReplaceAll(configKey, "__", ".")
		configKey = strings.ReplaceAll(configKey, "_", "-")

		c.Set(configKey, value)
	}
}

// Set sets a configuration value using dot notation (e.g., "book.title", "preprocessor.generate-summary.header")
func (c *Config) Set(key, value string) {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "book":
		if len(parts) >= 2 {
			c.setBookValue(parts[1:], value)
		}
	case "build":
		if len(parts) >= 2 {
			c.setBuildValue(parts[1:], value)
		}
	case "preprocessor":
		if len(parts) >= 3 {
			c.setPreprocessorValue(parts[1], parts[2], value)
		}
	}
}

func (c *Config) setBookValue(parts []string, value string) {
	if len(parts) == 0 {
		return
	}

	key := parts[0]
	switch strings.ToLower(key) {
	case "title":
		c.Book.Title = value
	case "authors":
		c.Book.Authors = []string{value}
	case "description":
		c.Book.Description = value
	case "language":
		c.Book.Language = value
	case "src":
		c.Book.Src = value
	}
}

func (c *Config) setBuildValue(parts []string, value string) {
	if len(parts) == 0 {
		return
	}

	key := parts[0]
	switch strings.ToLower(key) {
	case "build-dir":
		c.Build.BuildDir = value
	case "create-missing":
		c.Build.CreateMissing = strings.ToLower(value) == "true"
	}
}

// setPreprocessorValue stores a raw string; typed decoding happens in ParseSummaryConfig.
// A key already present in its underscore spelling is overwritten in place.
func (c *Config) setPreprocessorValue(name, key, value string) {
	if c.Preprocessor == nil {
		c.Preprocessor = make(map[string]interface{})
	}
	table, ok := c.Preprocessor[name].(map[string]interface{})
	if !ok {
		table = make(map[string]interface{})
		c.Preprocessor[name] = table
	}
	if underscored := strings.ReplaceAll(key, "-", "_"); underscored != key {
		if _, exists := table[underscored]; exists {
			table[underscored] = value
			return
		}
	}
	table[key] = value
}

// PreprocessorTable returns the [preprocessor.<name>] table, or nil when absent
func (c *Config) PreprocessorTable(name string) map[string]interface{} {
	if table, ok := c.Preprocessor[name].(map[string]interface{}); ok {
		return table
	}
	return nil
}

// SourceDir returns the book's source directory below root
func (c *Config) SourceDir(root string) string {
	src := c.Book.Src
	if src == "" {
		src = DefaultBookConfig().Src
	}
	return filepath.Join(root, src)
}
