// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
)

// MaxHistory is the number of export entries kept.
const MaxHistory = 20

// History keeps the most recent exports under KeyHistory, newest first.
// It satisfies export.HistoryRecorder.
type History struct {
	kv KeyValueStore
	mu sync.Mutex
}

// NewHistory creates a history store over kv.
func NewHistory(kv KeyValueStore) *History {
	return &History{kv: kv}
}

// Append prepends e and drops entries beyond MaxHistory. An empty ID is
// replaced with a fresh UUID.
func (h *History) Append(ctx context.Context, e export.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.List(ctx)
	if err != nil {
		return err
	}
	entries = append([]export.HistoryEntry{e}, entries...)
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	return setJSON(ctx, h.kv, KeyHistory, entries)
}

// List returns the stored entries, newest first.
func (h *History) List(ctx context.Context) ([]export.HistoryEntry, error) {
	var entries []export.HistoryEntry
	if _, err := getJSON(ctx, h.kv, KeyHistory, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []export.HistoryEntry{}
	}
	return entries, nil
}

// Clear removes all entries.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kv.Delete(ctx, KeyHistory)
}

var _ export.HistoryRecorder = (*History)(nil)
