// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docx builds minimal WordprocessingML (.docx) documents.
//
// It covers what question exports need: styled runs, headings, shaded
// monospace blocks with explicit line breaks, bulleted paragraphs, bottom
// borders as separators, and an optional page header and footer.
//
//	doc := docx.New()
//	doc.Title = "Export"
//	doc.Add(docx.Heading(1, "What is a closure?"))
//	doc.Add(&docx.Paragraph{Runs: []docx.Run{{Text: "Answer", Bold: true}}})
//	data, err := doc.Bytes()
package docx

import (
	"bytes"
	"io"
	"time"
)

// Alignment values for Paragraph.Align.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// MonoFont is the font used for code runs.
const MonoFont = "Consolas"

// Run is a span of text with character formatting. Newlines in Text become
// explicit line breaks.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Font   string
	// Size is in points; zero keeps the style default.
	Size  int
	Color string
	// Shading is a hex fill color such as "F3F4F6".
	Shading string
}

// Paragraph is a block of runs with paragraph formatting.
type Paragraph struct {
	Runs []Run

	// Style is a paragraph style id from styles.xml, e.g. "Heading1".
	Style string
	Align string

	// Shading fills the whole paragraph background.
	Shading string

	// Bullet renders the paragraph as a first-level bulleted list item.
	Bullet bool

	// BorderBottom draws a horizontal rule under the paragraph.
	BorderBottom bool

	// SpacingAfter is in points.
	SpacingAfter int
}

// Heading returns a heading paragraph of the given level (1-3).
func Heading(level int, text string) *Paragraph {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return &Paragraph{
		Style: headingStyles[level-1],
		Runs:  []Run{{Text: text}},
	}
}

var headingStyles = []string{"Heading1", "Heading2", "Heading3"}

// Text returns a plain paragraph.
func Text(text string) *Paragraph {
	return &Paragraph{Runs: []Run{{Text: text}}}
}

// Document is an in-memory .docx document.
type Document struct {
	Title   string
	Created time.Time

	Header *Paragraph
	Footer *Paragraph

	body []*Paragraph
}

// New creates an empty document.
func New() *Document {
	return &Document{Created: time.Now()}
}

// Add appends paragraphs to the body.
func (d *Document) Add(ps ...*Paragraph) {
	for _, p := range ps {
		if p != nil {
			d.body = append(d.body, p)
		}
	}
}

// Paragraphs returns the body paragraphs.
func (d *Document) Paragraphs() []*Paragraph {
	return d.body
}

// Bytes packages the document as a .docx file.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the .docx package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := writePackage(cw, d)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
