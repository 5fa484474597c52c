// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
	"github.com/ysmood/gson"
)

// =============================================================================
// PDF RENDERER
// =============================================================================

// A4 page size in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// DefaultPDFTimeout bounds a single browser conversion.
const DefaultPDFTimeout = 60 * time.Second

// PDFRenderer prints the HTML rendering through a headless Chrome.
type PDFRenderer struct {
	html    *HTMLRenderer
	bin     string
	timeout time.Duration
	log     logrus.FieldLogger
}

// PDFConfig configures the browser used for conversion.
type PDFConfig struct {
	// BrowserBin is an explicit Chrome/Chromium path. Empty lets the launcher
	// find or download one.
	BrowserBin string
	Timeout    time.Duration
}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer(cfg PDFConfig, log logrus.FieldLogger) *PDFRenderer {
	if log == nil {
		log = discardLogger()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPDFTimeout
	}
	return &PDFRenderer{
		html:    NewHTMLRenderer(log),
		bin:     cfg.BrowserBin,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// Render builds the HTML document and prints it to an A4 PDF with
// backgrounds. Errors wrap ErrPDFConversion.
func (r *PDFRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	markup, err := r.html.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	out, err := r.print(ctx, string(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFConversion, err)
	}
	return out, nil
}

// FileExtension returns the file extension for PDF.
func (r *PDFRenderer) FileExtension() string {
	return ".pdf"
}

// MimeType returns the MIME type for PDF.
func (r *PDFRenderer) MimeType() string {
	return "application/pdf"
}

// browserCloseTimeout bounds the close request sent after a conversion,
// which may run after ctx has expired.
const browserCloseTimeout = 5 * time.Second

// print loads markup into a fresh page and prints it. The browser process is
// killed and its profile directory removed on every path.
func (r *PDFRenderer) print(ctx context.Context, markup string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	l := launcher.New().Context(ctx).Headless(true)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		// Cleanup waits for an exit that never comes if the process did not start.
		l.Kill()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	// Cleanup blocks until the process exits, so it must follow Kill.
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), browserCloseTimeout)
		defer cancel()
		if err := browser.Context(closeCtx).Close(); err != nil {
			r.log.WithError(err).Debug("close browser")
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(markup); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      gson.Num(a4WidthInches),
		PaperHeight:     gson.Num(a4HeightInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return io.ReadAll(stream)
}
