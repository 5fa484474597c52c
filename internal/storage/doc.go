// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists export presets and export history behind a
// small key-value capability.
//
// # Key Types
//
//   - KeyValueStore: Get/Set/Delete of raw values by key
//   - SQLiteStore: file-backed store (modernc.org/sqlite, WAL mode)
//   - MemoryStore: process-local store for tests and dry runs
//   - Presets: named export.Options under the "exportPresets" key
//   - History: the last 20 exports under the "exportHistory" key
//
// # Usage
//
//	db, err := storage.OpenSQLite(ctx, path)
//	defer db.Close()
//
//	presets := storage.NewPresets(db)
//	err = presets.Save(ctx, "weekly", opts)
//
//	history := storage.NewHistory(db)
//	exporter := export.New(export.WithHistory(history))
//
// # Storage Location
//
// The default database lives at ~/.sparkexport/sparkexport.db.
package storage
