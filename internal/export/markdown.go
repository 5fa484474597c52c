// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MarkdownRenderer renders a Markdown document with YAML front matter.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a Markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts doc to Markdown. Answers and notes are already Markdown and
// are emitted as-is.
func (r *MarkdownRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	opts := doc.Options
	if opts == nil {
		opts = &Options{}
	}
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(doc.Title)))
	sb.WriteString(fmt.Sprintf("exported: %s\n", doc.ExportedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("questions: %d\n", doc.Count()))
	sb.WriteString("generator: sparkexport\n")
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
	sb.WriteString(fmt.Sprintf("_Exported: %s_\n\n", formatTimestamp(doc.ExportedAt)))

	// Markdown output is flat; groups only contribute their order.
	for _, q := range doc.Questions() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sb.WriteString(r.renderQuestion(&q, opts))
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (r *MarkdownRenderer) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (r *MarkdownRenderer) MimeType() string {
	return "text/markdown"
}

func (r *MarkdownRenderer) renderQuestion(q *question.Question, opts *Options) string {
	var sb strings.Builder

	title := q.Question
	if badges := flagBadges(q); len(badges) > 0 {
		icons := make([]string, len(badges))
		for i, b := range badges {
			icons[i] = b.Icon
		}
		title += " " + strings.Join(icons, "")
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))

	if meta := metadataLine(q, opts.DateLayout); meta != "" {
		sb.WriteString(fmt.Sprintf("*%s*\n\n", meta))
	}

	if len(q.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(q.TagNames(), ", ")))
	}

	if q.Answer != "" {
		sb.WriteString(strings.TrimRight(q.Answer, "\n"))
		sb.WriteString("\n\n")
	}

	if q.Code != "" {
		sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n\n", q.CodeLanguage, strings.TrimRight(q.Code, "\n")))
	}

	if q.Notes != "" {
		lines := strings.Split(strings.TrimRight(q.Notes, "\n"), "\n")
		sb.WriteString("> **Notes:** ")
		sb.WriteString(strings.Join(lines, "\n> "))
		sb.WriteString("\n\n")
	}

	for _, src := range embeddableImages(q.Images) {
		if strings.HasPrefix(src, "http") {
			sb.WriteString(fmt.Sprintf("![](%s)\n\n", src))
		}
	}

	sb.WriteString("---\n\n")
	return sb.String()
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeYAML quotes values that would break front matter.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
