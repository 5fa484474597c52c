// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for sparkexport.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - DefaultsConfig: Export option defaults (format, theme, sort, group)
//   - PDFConfig: Headless browser settings for PDF output
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SPARKEXPORT_*)
//   - ~/.sparkexport/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Seed export options:
//
//	opts := cfg.ExportDefaults()
package config
