// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/export"
)

// Presets stores named export option sets as one JSON object under
// KeyPresets.
type Presets struct {
	kv KeyValueStore
	mu sync.Mutex
}

// NewPresets creates a preset store over kv.
func NewPresets(kv KeyValueStore) *Presets {
	return &Presets{kv: kv}
}

func (p *Presets) load(ctx context.Context) (map[string]export.Options, error) {
	all := map[string]export.Options{}
	if _, err := getJSON(ctx, p.kv, KeyPresets, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = map[string]export.Options{}
	}
	return all, nil
}

// List returns preset names in sorted order.
func (p *Presets) List(ctx context.Context) ([]string, error) {
	all, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the named preset or ErrPresetNotFound.
func (p *Presets) Get(ctx context.Context, name string) (*export.Options, error) {
	all, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	opts, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return &opts, nil
}

// Save stores opts under name, replacing any existing preset.
func (p *Presets) Save(ctx context.Context, name string, opts *export.Options) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if opts == nil {
		opts = &export.Options{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	all, err := p.load(ctx)
	if err != nil {
		return err
	}
	all[name] = *opts
	return setJSON(ctx, p.kv, KeyPresets, all)
}

// Delete removes the named preset.
func (p *Presets) Delete(ctx context.Context, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	all, err := p.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[name]; !ok {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	delete(all, name)
	return setJSON(ctx, p.kv, KeyPresets, all)
}
