// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_DebounceWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	fw, err := New(path, time.Second, nil)
	require.NoError(t, err)

	now := time.Now()
	require.False(t, fw.due(now))

	fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
	require.False(t, fw.due(time.Now()))
	require.True(t, fw.due(time.Now().Add(2*time.Second)))
	require.False(t, fw.due(time.Now().Add(3*time.Second)), "pending change is cleared once due")
}

func TestFileWatcher_IgnoresOtherFilesAndOps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	fw, err := New(path, time.Millisecond, nil)
	require.NoError(t, err)

	fw.handle(fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write})
	fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Chmod})
	fw.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	require.False(t, fw.due(time.Now().Add(time.Hour)))
}

func TestFileWatcher_RunRerunsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	fw, err := New(path, 30*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, func(context.Context) error {
			runs.Add(1)
			cancel()
			return nil
		})
	}()

	// Keep touching the file until the watcher is registered and reacts.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`[{"id":"1"}]`), 0644)
		return runs.Load() > 0
	}, 4*time.Second, 100*time.Millisecond)

	require.NoError(t, <-done)
}
