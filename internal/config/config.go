// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for sparkexport.
//
// Configuration file location (in order of precedence):
//   - Environment variables (SPARKEXPORT_*)
//   - ~/.sparkexport/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/util"
)

// ErrInvalidConfig wraps validation failures returned by Load.
var ErrInvalidConfig = errors.New("invalid config")

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete sparkexport configuration.
type Config struct {
	Output   OutputConfig   `toml:"output" json:"output"`
	Storage  StorageConfig  `toml:"storage" json:"storage"`
	Defaults DefaultsConfig `toml:"defaults" json:"defaults"`
	Log      LogConfig      `toml:"log" json:"log"`
	PDF      PDFConfig      `toml:"pdf" json:"pdf"`
}

// OutputConfig controls where exports are written.
type OutputConfig struct {
	// Dir is the directory exports are written into.
	Dir string `toml:"dir" json:"dir"`

	// OpenAfterExport opens the exported file with the system viewer.
	OpenAfterExport bool `toml:"open_after_export" json:"open_after_export"`
}

// StorageConfig locates the preset and history database.
type StorageConfig struct {
	DBPath string `toml:"db_path" json:"db_path"`
}

// DefaultsConfig seeds export options that flags and presets leave unset.
type DefaultsConfig struct {
	Format     string `toml:"format" json:"format"`
	Theme      string `toml:"theme" json:"theme"`
	FontSize   int    `toml:"font_size" json:"font_size"`
	SortBy     string `toml:"sort_by" json:"sort_by"`
	GroupBy    string `toml:"group_by" json:"group_by"`
	DateLayout string `toml:"date_layout" json:"date_layout"`
	Locale     string `toml:"locale" json:"locale"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"` // text or json
}

// PDFConfig configures the headless browser used for PDF output.
type PDFConfig struct {
	// BrowserBin is a Chrome/Chromium binary; empty lets the launcher find
	// or download one.
	BrowserBin  string `toml:"browser_bin" json:"browser_bin"`
	TimeoutSecs int    `toml:"timeout_secs" json:"timeout_secs"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with default values. Paths are left empty and
// resolved by SetDefaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:             ".",
			OpenAfterExport: false,
		},
		Defaults: DefaultsConfig{
			Format:     string(export.FormatHTML),
			Theme:      export.ThemeLight,
			FontSize:   export.DefaultFontSize,
			SortBy:     export.SortNewest,
			GroupBy:    export.GroupNone,
			DateLayout: export.DefaultDateLayout,
			Locale:     export.DefaultLocale,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		PDF: PDFConfig{
			TimeoutSecs: int(export.DefaultPDFTimeout / time.Second),
		},
	}
}

// SetDefaults fills empty values with defaults.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if c.Storage.DBPath == "" {
		if dir, err := ConfigDir(); err == nil {
			c.Storage.DBPath = filepath.Join(dir, "sparkexport.db")
		}
	}
	c.Storage.DBPath = expandHome(c.Storage.DBPath)
	c.Output.Dir = expandHome(c.Output.Dir)

	if c.Defaults.Format == "" {
		c.Defaults.Format = d.Defaults.Format
	}
	if c.Defaults.Theme == "" {
		c.Defaults.Theme = d.Defaults.Theme
	}
	if c.Defaults.FontSize == 0 {
		c.Defaults.FontSize = d.Defaults.FontSize
	}
	if c.Defaults.SortBy == "" {
		c.Defaults.SortBy = d.Defaults.SortBy
	}
	if c.Defaults.GroupBy == "" {
		c.Defaults.GroupBy = d.Defaults.GroupBy
	}
	if c.Defaults.DateLayout == "" {
		c.Defaults.DateLayout = d.Defaults.DateLayout
	}
	if c.Defaults.Locale == "" {
		c.Defaults.Locale = d.Defaults.Locale
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.PDF.TimeoutSecs == 0 {
		c.PDF.TimeoutSecs = d.PDF.TimeoutSecs
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the sparkexport configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".sparkexport"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the default config file when it exists, then applies
// environment overrides, defaults and validation.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads path, or the defaults when path does not exist.
func LoadFile(path string) (*Config, error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("failed to stat config: %w", statErr)
		}
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - SPARKEXPORT_OUTPUT_DIR: overrides output.dir
//   - SPARKEXPORT_DB: overrides storage.db_path
//   - SPARKEXPORT_LOG_LEVEL: overrides log.level
//   - SPARKEXPORT_LOCALE: overrides defaults.locale
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("SPARKEXPORT_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}
	if db := os.Getenv("SPARKEXPORT_DB"); db != "" {
		c.Storage.DBPath = db
	}
	if level := os.Getenv("SPARKEXPORT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if locale := os.Getenv("SPARKEXPORT_LOCALE"); locale != "" {
		c.Defaults.Locale = locale
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default config path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# sparkexport configuration file")
	fmt.Fprintln(&buf, "# Generated by sparkexport - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs ValidateErrors

	oneOf := func(field, value string, allowed ...string) {
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid value '%s', must be one of: %s", value, strings.Join(allowed, ", ")),
		})
	}

	oneOf("defaults.format", c.Defaults.Format, "html", "pdf", "docx", "word", "md", "markdown", "json")
	oneOf("defaults.theme", c.Defaults.Theme, export.ThemeLight, export.ThemeDark)
	oneOf("defaults.sort_by", c.Defaults.SortBy,
		export.SortNewest, export.SortOldest, export.SortAlphabetical, export.SortDifficulty)
	oneOf("defaults.group_by", c.Defaults.GroupBy,
		export.GroupNone, export.GroupRound, export.GroupTag, export.GroupSubject, export.GroupDifficulty)
	oneOf("log.format", c.Log.Format, "text", "json")

	if c.Defaults.FontSize < 8 || c.Defaults.FontSize > 48 {
		errs = append(errs, ValidationError{
			Field:   "defaults.font_size",
			Message: fmt.Sprintf("must be between 8 and 48, got %d", c.Defaults.FontSize),
		})
	}

	if _, err := language.Parse(c.Defaults.Locale); err != nil {
		errs = append(errs, ValidationError{
			Field:   "defaults.locale",
			Message: fmt.Sprintf("invalid locale '%s'", c.Defaults.Locale),
		})
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: err.Error(),
		})
	}

	if c.PDF.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "pdf.timeout_secs",
			Message: "cannot be negative",
		})
	}

	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, ValidationError{
			Field:   "output.dir",
			Message: "cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// ExportDefaults returns the export options seeded from [defaults].
func (c *Config) ExportDefaults() *export.Options {
	return &export.Options{
		Format:     export.ParseFormat(c.Defaults.Format),
		Theme:      strings.ToLower(c.Defaults.Theme),
		FontSize:   c.Defaults.FontSize,
		SortBy:     strings.ToLower(c.Defaults.SortBy),
		GroupBy:    strings.ToLower(c.Defaults.GroupBy),
		DateLayout: c.Defaults.DateLayout,
	}
}

// PDFOptions returns the renderer settings from [pdf].
func (c *Config) PDFOptions() export.PDFConfig {
	return export.PDFConfig{
		BrowserBin: c.PDF.BrowserBin,
		Timeout:    time.Duration(c.PDF.TimeoutSecs) * time.Second,
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "pdf.timeout_secs").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: expected bool: %w", key, err)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: expected integer: %w", key, err)
		}
		field.SetInt(int64(n))
	default:
		return fmt.Errorf("unsupported type %s for %s", field.Kind(), key)
	}
	return nil
}

// lookup walks dotted TOML names to a leaf field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if strings.EqualFold(tag, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns every settable dotted key.
func Keys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		prefix := strings.Split(section.Tag.Get("toml"), ",")[0]
		for j := 0; j < section.Type.NumField(); j++ {
			name := strings.Split(section.Type.Field(j).Tag.Get("toml"), ",")[0]
			keys = append(keys, prefix+"."+name)
		}
	}
	return keys
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err.Error()
	}
	return buf.String()
}
