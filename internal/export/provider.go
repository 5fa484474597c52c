// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// RENDERER PROVIDER
// =============================================================================

// Factory constructs a Renderer on first use.
type Factory func() (Renderer, error)

// Provider resolves renderers by format. Renderers are built lazily, once,
// the first time their format is requested.
type Provider struct {
	mu        sync.Mutex
	factories map[Format]Factory
	instances map[Format]Renderer
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{
		factories: map[Format]Factory{},
		instances: map[Format]Renderer{},
	}
}

// Register adds a factory for format. Registering a format twice panics.
func (p *Provider) Register(format Format, factory Factory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if format == "" || factory == nil {
		panic("invalid renderer registration")
	}
	if _, exists := p.factories[format]; exists {
		panic(fmt.Sprintf("cannot register duplicate renderer for format: %s", format))
	}
	p.factories[format] = factory
}

// Renderer returns the renderer for format. It fails with
// ErrRenderingUnavailable when the format is unknown or its factory errors;
// a failed construction is retried on the next call.
func (p *Provider) Renderer(format Format) (Renderer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r, ok := p.instances[format]; ok {
		return r, nil
	}
	factory, ok := p.factories[format]
	if !ok {
		return nil, fmt.Errorf("%w: no renderer for %q", ErrRenderingUnavailable, format)
	}
	r, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderingUnavailable, format, err)
	}
	p.instances[format] = r
	return r, nil
}

// Formats lists the registered formats in sorted order.
func (p *Provider) Formats() []Format {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Format, 0, len(p.factories))
	for f := range p.factories {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultProvider registers every built-in renderer.
func DefaultProvider(pdf PDFConfig, log logrus.FieldLogger) *Provider {
	p := NewProvider()
	p.Register(FormatHTML, func() (Renderer, error) { return NewHTMLRenderer(log), nil })
	p.Register(FormatMarkdown, func() (Renderer, error) { return NewMarkdownRenderer(), nil })
	p.Register(FormatDOCX, func() (Renderer, error) { return NewDOCXRenderer(), nil })
	p.Register(FormatJSON, func() (Renderer, error) { return NewJSONRenderer(), nil })
	p.Register(FormatPDF, func() (Renderer, error) { return NewPDFRenderer(pdf, log), nil })
	return p
}
