// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
)

// stores returns every KeyValueStore implementation under test.
func stores(t *testing.T) map[string]KeyValueStore {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]KeyValueStore{
		"memory": NewMemoryStore(),
		"sqlite": db,
	}
}

// =============================================================================
// KEY-VALUE STORES
// =============================================================================

func TestKeyValueStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, kv.Set(ctx, "k", []byte("one")))
			v, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "one", string(v))

			require.NoError(t, kv.Set(ctx, "k", []byte("two")))
			v, _, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "two", string(v))

			require.NoError(t, kv.Delete(ctx, "k"))
			_, ok, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, kv.Delete(ctx, "k"))
			require.ErrorIs(t, kv.Set(ctx, "", []byte("x")), ErrEmptyKey)
		})
	}
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'z'

	out, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(out))

	out[0] = 'y'
	again, _, _ := m.Get(ctx, "k")
	require.Equal(t, "abc", string(again))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewMemoryStore().Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, KeyPresets, []byte(`{}`)))
	require.NoError(t, db.Close())

	_, _, err = db.Get(ctx, KeyPresets)
	require.ErrorIs(t, err, ErrClosed)

	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.Get(ctx, KeyPresets)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "{}", string(v))
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	require.Error(t, err)
}

// =============================================================================
// PRESETS
// =============================================================================

func TestPresets_SaveGetListDelete(t *testing.T) {
	ctx := context.Background()
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			p := NewPresets(kv)

			names, err := p.List(ctx)
			require.NoError(t, err)
			require.Empty(t, names)

			weekly := &export.Options{
				Format:      export.FormatDOCX,
				Title:       "Weekly",
				IncludeTags: []string{"react"},
				Include:     export.Include{Answer: export.Bool(false)},
				RemoveBlocks: []export.Block{
					{Start: "[SECRET]", End: "[/SECRET]"},
				},
				GroupBy: export.GroupRound,
			}
			require.NoError(t, p.Save(ctx, "weekly", weekly))
			require.NoError(t, p.Save(ctx, "all", &export.Options{}))

			names, err = p.List(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"all", "weekly"}, names)

			got, err := p.Get(ctx, "weekly")
			require.NoError(t, err)
			require.Equal(t, weekly, got)
			require.NotNil(t, got.Include.Answer)
			require.False(t, *got.Include.Answer)
			require.Nil(t, got.Include.Code)

			require.NoError(t, p.Delete(ctx, "weekly"))
			_, err = p.Get(ctx, "weekly")
			require.ErrorIs(t, err, ErrPresetNotFound)
			require.ErrorIs(t, p.Delete(ctx, "weekly"), ErrPresetNotFound)
		})
	}
}

func TestPresets_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	p := NewPresets(NewMemoryStore())

	require.NoError(t, p.Save(ctx, "p", &export.Options{Title: "old"}))
	require.NoError(t, p.Save(ctx, "p", &export.Options{Title: "new"}))

	got, err := p.Get(ctx, "p")
	require.NoError(t, err)
	require.Equal(t, "new", got.Title)
}

func TestPresets_EmptyName(t *testing.T) {
	p := NewPresets(NewMemoryStore())
	require.Error(t, p.Save(context.Background(), "  ", &export.Options{}))
}

func TestPresets_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(ctx, KeyPresets, []byte("not json")))

	_, err := NewPresets(kv).List(ctx)
	require.Error(t, err)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			h := NewHistory(kv)
			for i := 0; i < MaxHistory+5; i++ {
				require.NoError(t, h.Append(ctx, export.HistoryEntry{
					Count:  i,
					Format: export.FormatHTML,
					At:     base.Add(time.Duration(i) * time.Minute),
				}))
			}

			entries, err := h.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, MaxHistory)
			require.Equal(t, MaxHistory+4, entries[0].Count)
			require.Equal(t, 5, entries[MaxHistory-1].Count)

			seen := map[string]bool{}
			for _, e := range entries {
				require.NotEmpty(t, e.ID)
				require.False(t, seen[e.ID], "duplicate id %s", e.ID)
				seen[e.ID] = true
			}
			require.True(t, entries[0].At.Equal(base.Add(time.Duration(MaxHistory+4)*time.Minute)))
		})
	}
}

func TestHistory_KeepsGivenID(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewMemoryStore())

	require.NoError(t, h.Append(ctx, export.HistoryEntry{ID: "fixed", Count: 1}))
	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "fixed", entries[0].ID)
}

func TestHistory_Clear(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewMemoryStore())

	require.NoError(t, h.Append(ctx, export.HistoryEntry{Count: 1}))
	require.NoError(t, h.Clear(ctx))

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NotNil(t, entries)
}

func TestHistory_RecordsExporterRuns(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewMemoryStore())
	sink := &export.MemorySink{}
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	e := export.New(
		export.WithHistory(h),
		export.WithSink(sink),
		export.WithClock(func() time.Time { return at }),
	)
	for i := 0; i < 3; i++ {
		_, err := e.Run(ctx, nil, &export.Options{Format: export.FormatMarkdown, GroupBy: export.GroupRound})
		require.NoError(t, err)
	}

	entries, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, export.FormatMarkdown, entries[0].Format)
	require.Equal(t, export.GroupRound, entries[0].GroupBy)
	require.True(t, entries[0].At.Equal(at))
}

// failingStore rejects writes.
type failingStore struct{ *MemoryStore }

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestHistory_AppendError(t *testing.T) {
	h := NewHistory(failingStore{NewMemoryStore()})
	err := h.Append(context.Background(), export.HistoryEntry{})
	require.EqualError(t, err, "disk full")
}
