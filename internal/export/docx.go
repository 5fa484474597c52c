// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/docx"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/markdown"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// DOCX RENDERER
// =============================================================================

// Colors used in Word output.
const (
	docxCodeShading = "F3F4F6"
	docxMutedColor  = "6B7280"
	docxCodeSize    = 10
)

// DOCXRenderer renders a Word document.
type DOCXRenderer struct{}

// NewDOCXRenderer creates a DOCX renderer.
func NewDOCXRenderer() *DOCXRenderer {
	return &DOCXRenderer{}
}

// Render converts doc to a .docx package.
func (r *DOCXRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	opts := doc.Options
	if opts == nil {
		opts = &Options{}
	}

	out := docx.New()
	out.Title = doc.Title
	out.Created = doc.ExportedAt
	out.Header = docxHeader(opts.Header)
	if opts.Footer.Text != "" {
		out.Footer = &docx.Paragraph{
			Align: docx.AlignCenter,
			Runs:  []docx.Run{{Text: opts.Footer.Text, Size: 9, Color: docxMutedColor}},
		}
	}

	out.Add(docx.Heading(1, doc.Title))
	out.Add(&docx.Paragraph{
		Runs: []docx.Run{{
			Text:   fmt.Sprintf("%d questions • Exported %s", doc.Count(), formatTimestamp(doc.ExportedAt)),
			Italic: true,
			Color:  docxMutedColor,
		}},
		SpacingAfter: 12,
	})

	for _, g := range doc.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if doc.Grouped {
			out.Add(docx.Heading(1, g.Key))
		}
		for i := range g.Questions {
			out.Add(questionParagraphs(&g.Questions[i], opts)...)
		}
	}

	return out.Bytes()
}

// FileExtension returns the file extension for Word documents.
func (r *DOCXRenderer) FileExtension() string {
	return ".docx"
}

// MimeType returns the MIME type for Word documents.
func (r *DOCXRenderer) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func docxHeader(h Header) *docx.Paragraph {
	if h.IsZero() {
		return nil
	}
	p := &docx.Paragraph{Align: docx.AlignRight}
	if h.Project != "" {
		p.Runs = append(p.Runs, docx.Run{Text: h.Project, Bold: true, Size: 9})
	}
	if h.Project != "" && h.Text != "" {
		p.Runs = append(p.Runs, docx.Run{Text: " — ", Size: 9, Color: docxMutedColor})
	}
	if h.Text != "" {
		p.Runs = append(p.Runs, docx.Run{Text: h.Text, Size: 9, Color: docxMutedColor})
	}
	return p
}

// questionParagraphs lays out one question.
func questionParagraphs(q *question.Question, opts *Options) []*docx.Paragraph {
	ps := []*docx.Paragraph{docx.Heading(2, q.Question)}

	if meta := metadataLine(q, opts.DateLayout); meta != "" {
		ps = append(ps, &docx.Paragraph{
			Runs: []docx.Run{{Text: meta, Italic: true, Color: docxMutedColor, Size: 9}},
		})
	}

	if q.Answer != "" {
		ps = append(ps, label("Answer"))
		ps = append(ps, markdownParagraphs(q.Answer)...)
	}

	if q.Code != "" {
		title := "Code"
		if q.CodeLanguage != "" {
			title = fmt.Sprintf("Code (%s)", q.CodeLanguage)
		}
		ps = append(ps, label(title), codeParagraph(q.Code))
	}

	if q.Notes != "" {
		ps = append(ps, label("Notes"))
		ps = append(ps, markdownParagraphs(q.Notes)...)
	}

	if len(q.Tags) > 0 {
		ps = append(ps, &docx.Paragraph{Runs: []docx.Run{
			{Text: "Tags: ", Bold: true},
			{Text: strings.Join(q.TagNames(), ", ")},
		}})
	}

	if badges := flagBadges(q); len(badges) > 0 {
		parts := make([]string, len(badges))
		for i, b := range badges {
			parts[i] = b.Icon + " " + b.Label
		}
		ps = append(ps, &docx.Paragraph{Runs: []docx.Run{
			{Text: "Flags: ", Bold: true},
			{Text: strings.Join(parts, "  ")},
		}})
	}

	ps = append(ps, &docx.Paragraph{BorderBottom: true, SpacingAfter: 12})
	return ps
}

func label(text string) *docx.Paragraph {
	return &docx.Paragraph{Runs: []docx.Run{{Text: text, Bold: true}}}
}

func codeParagraph(code string) *docx.Paragraph {
	return &docx.Paragraph{
		Shading: docxCodeShading,
		Runs: []docx.Run{{
			Text: strings.TrimRight(code, "\n"),
			Font: docx.MonoFont,
			Size: docxCodeSize,
		}},
	}
}

// markdownParagraphs maps parsed Markdown blocks onto Word paragraphs.
func markdownParagraphs(text string) []*docx.Paragraph {
	var ps []*docx.Paragraph
	for _, n := range markdown.Parse(text) {
		switch n.Kind {
		case markdown.KindCodeBlock:
			ps = append(ps, codeParagraph(n.Code))
		case markdown.KindHeading:
			runs := inlineRuns(n.Runs)
			for i := range runs {
				runs[i].Bold = true
				runs[i].Size = headingSize(n.Level)
			}
			ps = append(ps, &docx.Paragraph{Runs: runs})
		case markdown.KindListItem:
			ps = append(ps, &docx.Paragraph{Bullet: true, Runs: inlineRuns(n.Runs)})
		case markdown.KindQuote:
			runs := inlineRuns(n.Runs)
			for i := range runs {
				runs[i].Italic = true
				runs[i].Color = docxMutedColor
			}
			ps = append(ps, &docx.Paragraph{Runs: runs})
		case markdown.KindBlank:
			ps = append(ps, &docx.Paragraph{})
		default:
			ps = append(ps, &docx.Paragraph{Runs: inlineRuns(n.Runs)})
		}
	}
	return ps
}

func headingSize(level int) int {
	switch level {
	case 2:
		return 14
	case 3:
		return 13
	default:
		return 12
	}
}

func inlineRuns(runs []markdown.Run) []docx.Run {
	out := make([]docx.Run, 0, len(runs))
	for _, r := range runs {
		dr := docx.Run{Text: r.Text}
		switch r.Style {
		case markdown.StyleBold:
			dr.Bold = true
		case markdown.StyleItalic:
			dr.Italic = true
		case markdown.StyleCode:
			dr.Font = docx.MonoFont
			dr.Shading = docxCodeShading
		}
		out = append(out, dr)
	}
	return out
}
