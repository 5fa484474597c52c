// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
)

// isolate points HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"SPARKEXPORT_OUTPUT_DIR", "SPARKEXPORT_DB", "SPARKEXPORT_LOG_LEVEL", "SPARKEXPORT_LOCALE"} {
		t.Setenv(key, "")
	}
	return home
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "html", cfg.Defaults.Format)
	require.Equal(t, export.DefaultFontSize, cfg.Defaults.FontSize)
	require.Equal(t, 60, cfg.PDF.TimeoutSecs)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"valid default config", func(c *Config) {}, ""},
		{"word alias", func(c *Config) { c.Defaults.Format = "Word" }, ""},
		{"invalid format", func(c *Config) { c.Defaults.Format = "rtf" }, "defaults.format"},
		{"invalid theme", func(c *Config) { c.Defaults.Theme = "sepia" }, "defaults.theme"},
		{"invalid sort", func(c *Config) { c.Defaults.SortBy = "random" }, "defaults.sort_by"},
		{"invalid group", func(c *Config) { c.Defaults.GroupBy = "company" }, "defaults.group_by"},
		{"font too small", func(c *Config) { c.Defaults.FontSize = 4 }, "defaults.font_size"},
		{"invalid locale", func(c *Config) { c.Defaults.Locale = "not a locale!" }, "defaults.locale"},
		{"invalid level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"negative timeout", func(c *Config) { c.PDF.TimeoutSecs = -1 }, "pdf.timeout_secs"},
		{"empty output dir", func(c *Config) { c.Output.Dir = " " }, "output.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			require.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".", cfg.Output.Dir)
	require.Equal(t, filepath.Join(home, ".sparkexport", "sparkexport.db"), cfg.Storage.DBPath)
}

func TestLoadFromPath_FileAndEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[output]
dir = "~/exports"
open_after_export = true

[defaults]
format = "docx"
group_by = "round"

[log]
level = "debug"
`), 0600))

	t.Setenv("SPARKEXPORT_LOCALE", "de")
	t.Setenv("SPARKEXPORT_DB", "/tmp/other.db")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "exports"), cfg.Output.Dir)
	require.True(t, cfg.Output.OpenAfterExport)
	require.Equal(t, "docx", cfg.Defaults.Format)
	require.Equal(t, "round", cfg.Defaults.GroupBy)
	require.Equal(t, "light", cfg.Defaults.Theme)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "de", cfg.Defaults.Locale)
	require.Equal(t, "/tmp/other.db", cfg.Storage.DBPath)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\ntheme = \"neon\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, os.WriteFile(path, []byte("[defaults\n"), 0600))
	_, err = LoadFromPath(path)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Output.Dir = "/srv/exports"
	cfg.Defaults.Theme = "dark"
	cfg.PDF.BrowserBin = "/usr/bin/chromium"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/exports", loaded.Output.Dir)
	require.Equal(t, "dark", loaded.Defaults.Theme)
	require.Equal(t, "/usr/bin/chromium", loaded.PDF.BrowserBin)
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("defaults.theme", "dark"))
	v, err := cfg.Get("defaults.theme")
	require.NoError(t, err)
	require.Equal(t, "dark", v)

	require.NoError(t, cfg.Set("output.open_after_export", "true"))
	require.True(t, cfg.Output.OpenAfterExport)

	require.NoError(t, cfg.Set("pdf.timeout_secs", "90"))
	require.Equal(t, 90, cfg.PDF.TimeoutSecs)

	require.Error(t, cfg.Set("pdf.timeout_secs", "soon"))
	require.Error(t, cfg.Set("defaults.nope", "x"))
	_, err = cfg.Get("defaults")
	require.Error(t, err)
	_, err = cfg.Get("")
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Contains(t, keys, "output.dir")
	require.Contains(t, keys, "defaults.font_size")
	require.Contains(t, keys, "pdf.browser_bin")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		require.NoError(t, err, k)
	}
}

func TestConfig_Derived(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Format = "Markdown"
	cfg.Defaults.GroupBy = "Tag"
	cfg.PDF.TimeoutSecs = 5

	opts := cfg.ExportDefaults()
	require.Equal(t, export.FormatMarkdown, opts.Format)
	require.Equal(t, export.GroupTag, opts.GroupBy)
	require.Equal(t, 5*time.Second, cfg.PDFOptions().Timeout)
}
