// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/util"
)

// =============================================================================
// HISTORY HOOK
// =============================================================================

// HistoryEntry summarizes one completed export.
type HistoryEntry struct {
	ID      string    `json:"id,omitempty"`
	Count   int       `json:"count"`
	Format  Format    `json:"format"`
	GroupBy string    `json:"groupBy,omitempty"`
	SplitBy string    `json:"splitBy,omitempty"`
	At      time.Time `json:"at"`
}

// HistoryRecorder stores history entries.
type HistoryRecorder interface {
	Append(ctx context.Context, e HistoryEntry) error
}

// =============================================================================
// EXPORTER
// =============================================================================

// Exporter runs the filter, transform, sort, render and deliver pipeline.
// An Exporter holds no per-call state and may be shared.
type Exporter struct {
	provider *Provider
	sink     Sink
	history  HistoryRecorder
	log      logrus.FieldLogger
	now      func() time.Time
	locale   string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithProvider sets the renderer provider.
func WithProvider(p *Provider) ExporterOption {
	return func(e *Exporter) { e.provider = p }
}

// WithSink sets where artifacts are delivered.
func WithSink(s Sink) ExporterOption {
	return func(e *Exporter) { e.sink = s }
}

// WithHistory enables history recording.
func WithHistory(h HistoryRecorder) ExporterOption {
	return func(e *Exporter) { e.history = h }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) ExporterOption {
	return func(e *Exporter) { e.log = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) { e.now = now }
}

// WithLocale sets the collation locale for alphabetical sorting.
func WithLocale(locale string) ExporterOption {
	return func(e *Exporter) { e.locale = locale }
}

// New creates an Exporter. Without options it renders through
// DefaultProvider and delivers into the current directory.
func New(opts ...ExporterOption) *Exporter {
	e := &Exporter{
		now:    time.Now,
		locale: DefaultLocale,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = discardLogger()
	}
	if e.provider == nil {
		e.provider = DefaultProvider(PDFConfig{}, e.log)
	}
	if e.sink == nil {
		e.sink = NewDirSink(".", false)
	}
	return e
}

// Result describes a delivered export.
type Result struct {
	// Location is where the sink put the artifact.
	Location string
	Artifact *Artifact

	// Count is the number of exported questions.
	Count int

	// Entries lists archive member names for split exports.
	Entries []string

	// Fallback is true when PDF conversion failed and a printable HTML
	// page was delivered instead.
	Fallback bool
}

// =============================================================================
// PIPELINE
// =============================================================================

// Prepare filters, limits, transforms and sorts qs. The input is not
// modified.
func (e *Exporter) Prepare(qs []question.Question, opts *Options) []question.Question {
	if opts == nil {
		opts = &Options{}
	}

	filtered := Filter(qs, opts.Criteria())
	// Filter already honours SelectedIDs; re-checking keeps callers that
	// build Criteria by hand consistent with Run.
	filtered = SelectByID(filtered, opts.SelectedIDs)

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	t := NewTransformer(opts.TransformOptions(), e.log)
	out := make([]question.Question, len(filtered))
	for i := range filtered {
		out[i] = t.Apply(filtered[i])
	}

	return Sort(out, opts.SortBy, e.locale)
}

// Preview renders the prepared questions as HTML without delivering or
// recording anything.
func (e *Exporter) Preview(ctx context.Context, qs []question.Question, opts *Options) (string, error) {
	out, err := e.PreviewFormat(ctx, qs, opts, FormatHTML)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// PreviewFormat is Preview for any registered format. Split options are
// ignored.
func (e *Exporter) PreviewFormat(ctx context.Context, qs []question.Question, opts *Options, format Format) ([]byte, error) {
	if opts == nil {
		opts = &Options{}
	}
	r, err := e.provider.Renderer(format)
	if err != nil {
		return nil, err
	}
	prepared := e.Prepare(qs, opts)
	doc := NewDocument(GroupBy(prepared, opts.GroupBy), opts, e.now())
	out, err := r.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return out, nil
}

// Run executes a full export and appends one history entry. History
// failures are logged, not returned.
func (e *Exporter) Run(ctx context.Context, qs []question.Question, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	at := e.now()
	format := ParseFormat(string(opts.Format))

	log := e.log.WithFields(logrus.Fields{
		"format":  format,
		"groupBy": opts.GroupBy,
		"splitBy": opts.SplitBy,
	})

	prepared := e.Prepare(qs, opts)
	log.WithField("count", len(prepared)).Debug("prepared questions")

	var (
		res *Result
		err error
	)
	if isGroupKey(opts.SplitBy) {
		res, err = e.runSplit(ctx, prepared, opts, format, at)
	} else {
		res, err = e.runSingle(ctx, prepared, opts, format, at)
	}
	if err != nil {
		return nil, err
	}
	res.Count = len(prepared)

	log.WithFields(logrus.Fields{
		"location": res.Location,
		"count":    res.Count,
		"fallback": res.Fallback,
	}).Info("export delivered")

	if e.history != nil {
		entry := HistoryEntry{
			Count:   res.Count,
			Format:  format,
			GroupBy: opts.GroupBy,
			SplitBy: opts.SplitBy,
			At:      at,
		}
		if err := e.history.Append(ctx, entry); err != nil {
			log.WithError(err).Warn("could not record export history")
		}
	}

	return res, nil
}

// runSingle renders one document in the requested format.
func (e *Exporter) runSingle(ctx context.Context, qs []question.Question, opts *Options, format Format, at time.Time) (*Result, error) {
	doc := NewDocument(GroupBy(qs, opts.GroupBy), opts, at)

	r, err := e.provider.Renderer(format)
	if err != nil {
		if format == FormatPDF {
			e.log.WithError(err).Warn("pdf renderer unavailable, falling back to print")
			return e.printFallback(ctx, doc, at)
		}
		return nil, err
	}

	data, err := r.Render(ctx, doc)
	if err != nil {
		if format == FormatPDF && ctx.Err() == nil {
			e.log.WithError(err).Warn("pdf conversion failed, falling back to print")
			return e.printFallback(ctx, doc, at)
		}
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	a := &Artifact{
		Name:     exportName(at, r.FileExtension()),
		MimeType: r.MimeType(),
		Data:     data,
	}
	loc, err := e.sink.Deliver(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("deliver %s: %w", a.Name, err)
	}
	return &Result{Location: loc, Artifact: a}, nil
}

// printFallback delivers the HTML rendering with an auto-print script and
// opens it once when the sink supports that.
func (e *Exporter) printFallback(ctx context.Context, doc *Document, at time.Time) (*Result, error) {
	r, err := e.provider.Renderer(FormatHTML)
	if err != nil {
		return nil, err
	}
	markup, err := r.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render print fallback: %w", err)
	}

	a := &Artifact{
		Name:     exportName(at, r.FileExtension()),
		MimeType: r.MimeType(),
		Data:     PrintableHTML(markup),
	}
	loc, err := e.sink.Deliver(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("deliver %s: %w", a.Name, err)
	}
	if !opensOnDeliver(e.sink) {
		if o, ok := e.sink.(Opener); ok {
			if err := o.Open(loc); err != nil {
				e.log.WithError(err).WithField("location", loc).Warn("could not open print page")
			}
		}
	}
	return &Result{Location: loc, Artifact: a, Fallback: true}, nil
}

// runSplit renders one document per split group and delivers them as a zip.
func (e *Exporter) runSplit(ctx context.Context, qs []question.Question, opts *Options, format Format, at time.Time) (*Result, error) {
	entryFormat := splitFormat(format)
	r, err := e.provider.Renderer(entryFormat)
	if err != nil {
		return nil, err
	}

	var (
		entries []*Artifact
		names   []string
		namer   uniqueNamer
	)
	for _, part := range GroupBy(qs, opts.SplitBy) {
		partOpts := *opts
		partOpts.Title = fmt.Sprintf("%s: %s", opts.title(), part.Key)
		doc := NewDocument(GroupBy(part.Questions, opts.GroupBy), &partOpts, at)

		data, err := r.Render(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("render %s entry %q: %w", entryFormat, part.Key, err)
		}
		name := namer.name(util.SafeFilename(part.Key), r.FileExtension())
		entries = append(entries, &Artifact{Name: name, MimeType: r.MimeType(), Data: data})
		names = append(names, name)
	}

	archive, err := bundle(entries)
	if err != nil {
		return nil, err
	}
	a := &Artifact{
		Name:     batchName(at),
		MimeType: "application/zip",
		Data:     archive,
	}
	loc, err := e.sink.Deliver(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("deliver %s: %w", a.Name, err)
	}
	return &Result{Location: loc, Artifact: a, Entries: names}, nil
}

// IsRenderingUnavailable reports whether err means a format has no working
// renderer.
func IsRenderingUnavailable(err error) bool {
	return errors.Is(err, ErrRenderingUnavailable)
}
