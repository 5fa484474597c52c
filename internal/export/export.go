// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// RENDERER INTERFACE
// =============================================================================

// Renderer turns a prepared Document into file content.
type Renderer interface {
	// Render produces the document bytes.
	Render(ctx context.Context, doc *Document) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the rendered content.
	MimeType() string
}

// Errors returned by the pipeline.
var (
	// ErrRenderingUnavailable is returned when no renderer is registered for
	// a format or its construction failed.
	ErrRenderingUnavailable = errors.New("rendering unavailable")

	// ErrPDFConversion is returned when the HTML to PDF step fails.
	ErrPDFConversion = errors.New("pdf conversion failed")
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the input to a Renderer: transformed questions in final order,
// plus the options that shape the output.
type Document struct {
	Title  string
	Groups []Group

	// Grouped is true when Groups came from a real grouping key and group
	// headings should be shown.
	Grouped bool

	ExportedAt time.Time
	Options    *Options
}

// NewDocument builds a document from groups.
func NewDocument(groups []Group, opts *Options, at time.Time) *Document {
	if opts == nil {
		opts = &Options{}
	}
	return &Document{
		Title:      opts.title(),
		Groups:     groups,
		Grouped:    isGroupKey(opts.GroupBy),
		ExportedAt: at,
		Options:    opts,
	}
}

// Questions returns every question in document order.
func (d *Document) Questions() []question.Question {
	var out []question.Question
	for _, g := range d.Groups {
		out = append(out, g.Questions...)
	}
	return out
}

// Count returns the number of questions in the document.
func (d *Document) Count() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Questions)
	}
	return n
}

// Artifact is a named rendered file.
type Artifact struct {
	Name     string
	MimeType string
	Data     []byte
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// DefaultDateLayout matches a short US locale date.
const DefaultDateLayout = "1/2/2006"

// metadataParts returns the displayable round, subject and date of q.
// Placeholder values are suppressed.
func metadataParts(q *question.Question, layout string) []string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	var parts []string
	if !question.IsEmptyValue(q.Round) {
		parts = append(parts, q.Round)
	}
	if !question.IsEmptyValue(q.Subject) {
		parts = append(parts, q.Subject)
	}
	if !q.CreatedAt.IsZero() {
		parts = append(parts, q.CreatedAt.Format(layout))
	}
	return parts
}

// metadataSeparator joins metadata parts in every format.
const metadataSeparator = " • "

func metadataLine(q *question.Question, layout string) string {
	return strings.Join(metadataParts(q, layout), metadataSeparator)
}

// flagBadge is a flag marker with its label.
type flagBadge struct {
	Icon  string
	Label string
}

// flagBadges returns the set flags in display order.
func flagBadges(q *question.Question) []flagBadge {
	var out []flagBadge
	if q.Favorite {
		out = append(out, flagBadge{"⭐", "Favorite"})
	}
	if q.Review {
		out = append(out, flagBadge{"📌", "Review"})
	}
	if q.Hot {
		out = append(out, flagBadge{"🔥", "Hot"})
	}
	return out
}

// formatTimestamp formats the export time for document headers.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
