// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across sparkexport.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - FileTimestamp: Filesystem-safe UTC timestamps for export names
//   - SafeFilename: Restricts names to a portable character set
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth, PadRight: Display-width aware layout for tables
//
// # Usage
//
//	name := "export-" + util.FileTimestamp(time.Now()) + ".html"
//	err := util.AtomicWriteFile(filepath.Join(dir, name), data, 0644)
package util
