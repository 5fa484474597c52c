// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs an action when a file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// Action is invoked after each settled change.
type Action func(ctx context.Context) error

// FileWatcher watches one file through its parent directory, so editors
// that replace the file by rename keep triggering events.
type FileWatcher struct {
	path     string
	debounce time.Duration
	log      logrus.FieldLogger

	mu      sync.Mutex
	pending time.Time // zero when nothing is waiting
}

// New creates a watcher for path. A non-positive debounce uses
// DefaultDebounce.
func New(path string, debounce time.Duration, log logrus.FieldLogger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &FileWatcher{path: abs, debounce: debounce, log: log}, nil
}

// Run blocks until ctx is done, calling fn once per settled change to the
// watched file. Action errors are logged and watching continues.
func (fw *FileWatcher) Run(ctx context.Context, fn Action) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(fw.path), err)
	}
	fw.log.WithField("path", fw.path).Info("watching for changes")

	ticker := time.NewTicker(fw.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			fw.handle(event)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fw.log.WithError(err).Warn("watch error")

		case now := <-ticker.C:
			if !fw.due(now) {
				continue
			}
			fw.log.WithField("path", fw.path).Debug("change settled")
			if err := fn(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				fw.log.WithError(err).Error("re-run failed")
			}
		}
	}
}

// handle records a pending change for write and create events on the
// watched file.
func (fw *FileWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	fw.mu.Lock()
	fw.pending = time.Now()
	fw.mu.Unlock()
}

// due reports whether the pending change is older than the debounce
// window, clearing it when so.
func (fw *FileWatcher) due(now time.Time) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.pending.IsZero() || now.Sub(fw.pending) < fw.debounce {
		return false
	}
	fw.pending = time.Time{}
	return true
}
