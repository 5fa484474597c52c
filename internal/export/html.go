// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/markdown"
	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/question"
)

// =============================================================================
// HTML RENDERER
// =============================================================================

// HTMLRenderer renders a self-contained HTML document with embedded CSS.
type HTMLRenderer struct {
	log logrus.FieldLogger
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(log logrus.FieldLogger) *HTMLRenderer {
	if log == nil {
		log = discardLogger()
	}
	return &HTMLRenderer{log: log}
}

// Render converts doc to HTML.
func (r *HTMLRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	opts := doc.Options
	if opts == nil {
		opts = &Options{}
	}
	theme := opts.theme()

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(doc.Title)))
	sb.WriteString("    <meta name=\"generator\" content=\"sparkexport\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", doc.ExportedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("    <style>\n        :root { --base-font: %dpx; }\n    </style>\n", opts.fontSize()))
	sb.WriteString(documentCSS)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))

	if opts.Watermark != "" {
		sb.WriteString(fmt.Sprintf("    <div class=\"watermark\" aria-hidden=\"true\">%s</div>\n", html.EscapeString(opts.Watermark)))
	}

	sb.WriteString("    <div class=\"container\">\n")
	sb.WriteString(r.renderHeader(doc))

	if opts.TOC {
		sb.WriteString(r.renderTOC(doc))
	}

	sb.WriteString("        <main class=\"questions\">\n")
	n := 0
	for _, g := range doc.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if doc.Grouped {
			sb.WriteString("            <section class=\"group\">\n")
			sb.WriteString(fmt.Sprintf("                <h2 class=\"group-title\">%s <span class=\"group-count\">(%d)</span></h2>\n",
				html.EscapeString(g.Key), len(g.Questions)))
		}
		for i := range g.Questions {
			n++
			sb.WriteString(r.renderQuestion(&g.Questions[i], n, opts))
		}
		if doc.Grouped {
			sb.WriteString("            </section>\n")
		}
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	if opts.Footer.Text != "" {
		sb.WriteString(fmt.Sprintf("            <p>%s</p>\n", html.EscapeString(opts.Footer.Text)))
	} else {
		sb.WriteString(fmt.Sprintf("            <p>Exported with <strong>sparkexport</strong> on %s</p>\n",
			doc.ExportedAt.Format("January 2, 2006 at 3:04 PM")))
	}
	sb.WriteString("        </footer>\n")

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (r *HTMLRenderer) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (r *HTMLRenderer) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// renderHeader renders the page header with title and counts.
func (r *HTMLRenderer) renderHeader(doc *Document) string {
	var sb strings.Builder
	opts := doc.Options

	sb.WriteString("        <header class=\"header\">\n")
	if !opts.Header.IsZero() {
		sb.WriteString("            <div class=\"doc-header\">")
		if opts.Header.Project != "" {
			sb.WriteString(fmt.Sprintf("<strong>%s</strong>", html.EscapeString(opts.Header.Project)))
		}
		if opts.Header.Project != "" && opts.Header.Text != "" {
			sb.WriteString(" ")
		}
		if opts.Header.Text != "" {
			sb.WriteString(fmt.Sprintf("<span>%s</span>", html.EscapeString(opts.Header.Text)))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(doc.Title)))
	sb.WriteString("            <div class=\"metadata\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Questions:</strong> %d</span>\n", doc.Count()))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Exported:</strong> %s</span>\n", formatTimestamp(doc.ExportedAt)))
	if doc.Grouped {
		sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Grouped by:</strong> %s</span>\n", html.EscapeString(opts.GroupBy)))
	}
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")

	return sb.String()
}

// renderTOC renders an ordered list of links to every question.
func (r *HTMLRenderer) renderTOC(doc *Document) string {
	var sb strings.Builder
	sb.WriteString("        <nav class=\"toc\">\n")
	sb.WriteString("            <h2>Contents</h2>\n")
	sb.WriteString("            <ol>\n")
	n := 0
	for _, g := range doc.Groups {
		for _, q := range g.Questions {
			n++
			sb.WriteString(fmt.Sprintf("                <li><a href=\"#%s\">%s</a></li>\n",
				anchorID(n), html.EscapeString(q.Question)))
		}
	}
	sb.WriteString("            </ol>\n")
	sb.WriteString("        </nav>\n")
	return sb.String()
}

func anchorID(n int) string {
	return fmt.Sprintf("q-%d", n)
}

// renderQuestion renders one question card.
func (r *HTMLRenderer) renderQuestion(q *question.Question, n int, opts *Options) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("            <article class=\"question\" id=\"%s\">\n", anchorID(n)))

	sb.WriteString("                <div class=\"question-header\">\n")
	sb.WriteString(fmt.Sprintf("                    <h3 class=\"question-title\">%s</h3>\n", html.EscapeString(q.Question)))
	if badges := flagBadges(q); len(badges) > 0 {
		sb.WriteString("                    <span class=\"badges\">")
		for _, b := range badges {
			sb.WriteString(fmt.Sprintf("<span class=\"badge\" title=\"%s\">%s</span>", b.Label, b.Icon))
		}
		sb.WriteString("</span>\n")
	}
	sb.WriteString("                </div>\n")

	if meta := metadataParts(q, opts.DateLayout); len(meta) > 0 {
		escaped := make([]string, len(meta))
		for i, m := range meta {
			escaped[i] = html.EscapeString(m)
		}
		sb.WriteString(fmt.Sprintf("                <div class=\"question-meta\">%s</div>\n",
			strings.Join(escaped, metadataSeparator)))
	}

	if q.Answer != "" {
		sb.WriteString("                <div class=\"answer\">\n")
		sb.WriteString(markdown.ToHTML(q.Answer))
		sb.WriteString("\n                </div>\n")
	}

	if q.Code != "" {
		sb.WriteString(r.renderCode(q, opts))
	}

	if len(q.Tags) > 0 {
		sb.WriteString("                <div class=\"tags\">")
		for i, t := range q.Tags {
			sb.WriteString(fmt.Sprintf("<span class=\"tag\" style=\"background: %s\">%s</span>",
				tagColor(t, i), html.EscapeString(t.Name())))
		}
		sb.WriteString("</div>\n")
	}

	if q.Notes != "" {
		sb.WriteString("                <div class=\"notes\"><strong>Notes:</strong> ")
		sb.WriteString(markdown.ToHTML(q.Notes))
		sb.WriteString("</div>\n")
	}

	if imgs := embeddableImages(q.Images); len(imgs) > 0 {
		sb.WriteString("                <div class=\"images\">")
		for _, src := range imgs {
			sb.WriteString(fmt.Sprintf("<img class=\"q-image\" src=\"%s\" alt=\"\">", html.EscapeString(src)))
		}
		sb.WriteString("</div>\n")
	}

	sb.WriteString("            </article>\n")
	return sb.String()
}

// renderCode renders the code snippet, highlighted when requested.
func (r *HTMLRenderer) renderCode(q *question.Question, opts *Options) string {
	var sb strings.Builder
	sb.WriteString("                <div class=\"code-block\">")
	if q.CodeLanguage != "" {
		sb.WriteString(fmt.Sprintf("<div class=\"code-lang\">%s</div>", html.EscapeString(q.CodeLanguage)))
	}

	plain := fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>",
		html.EscapeString(q.CodeLanguage), html.EscapeString(q.Code))
	if opts.SyntaxHighlight {
		highlighted, err := highlightHTML(q.Code, q.CodeLanguage, opts.theme())
		if err != nil {
			r.log.WithError(err).WithField("language", q.CodeLanguage).Debug("highlighting failed, using plain code")
			sb.WriteString(plain)
		} else {
			sb.WriteString(highlighted)
		}
	} else {
		sb.WriteString(plain)
	}
	sb.WriteString("</div>\n")
	return sb.String()
}

// =============================================================================
// TAGS AND IMAGES
// =============================================================================

// tagPalette colors unstyled tags by position.
var tagPalette = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#14b8a6", "#6366f1",
}

var cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

// tagColor returns a CSS color for the i-th tag. Styled tags keep their color
// when it is a plain hex value or color name.
func tagColor(t question.TagRef, i int) string {
	if c := strings.TrimSpace(t.Color()); c != "" && cssColorPattern.MatchString(c) {
		return c
	}
	return tagPalette[i%len(tagPalette)]
}

// embeddableImages keeps inline data images and http(s) URLs.
func embeddableImages(srcs []string) []string {
	var out []string
	for _, s := range srcs {
		switch {
		case strings.HasPrefix(s, "data:image/"),
			strings.HasPrefix(s, "https://"),
			strings.HasPrefix(s, "http://"):
			out = append(out, s)
		}
	}
	return out
}

// =============================================================================
// PRINT FALLBACK
// =============================================================================

const printScript = `    <script>
        window.addEventListener('load', function () {
            setTimeout(function () { window.print(); }, 500);
        });
    </script>
`

// PrintableHTML injects a script that opens the print dialog once the page
// has loaded.
func PrintableHTML(doc []byte) []byte {
	marker := []byte("</body>")
	i := bytes.LastIndex(doc, marker)
	if i < 0 {
		return append(append([]byte(nil), doc...), []byte(printScript)...)
	}
	out := make([]byte, 0, len(doc)+len(printScript))
	out = append(out, doc[:i]...)
	out = append(out, printScript...)
	out = append(out, doc[i:]...)
	return out
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const documentCSS = `    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-secondary: #a9b1d6;
            --text-muted: #565f89;
            --border-color: #414868;
            --card-bg: #1f2335;
            --code-bg: #1a1b26;
            --accent: #7aa2f7;
            --watermark: rgba(255, 255, 255, 0.06);
        }

        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-secondary: #586069;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --card-bg: #ffffff;
            --code-bg: #f6f8fa;
            --accent: #0366d6;
            --watermark: rgba(0, 0, 0, 0.06);
        }

        body {
            font-family: var(--font-sans);
            font-size: var(--base-font);
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 900px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
            overflow: hidden;
            position: relative;
            z-index: 1;
        }

        .watermark {
            position: fixed;
            top: 50%;
            left: 50%;
            transform: translate(-50%, -50%) rotate(-30deg);
            font-size: 96px;
            font-weight: 700;
            color: var(--watermark);
            white-space: nowrap;
            pointer-events: none;
            z-index: 0;
        }

        .header {
            padding: 32px;
            background: var(--bg-tertiary);
            border-bottom: 2px solid var(--border-color);
        }

        .doc-header {
            font-size: 0.85em;
            color: var(--text-secondary);
            margin-bottom: 8px;
        }

        .header h1 {
            font-size: 2em;
            font-weight: 700;
            margin-bottom: 16px;
        }

        .metadata {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            font-size: 0.9em;
            color: var(--text-secondary);
        }

        .toc {
            padding: 24px 32px;
            border-bottom: 1px solid var(--border-color);
        }

        .toc h2 {
            font-size: 1.2em;
            margin-bottom: 8px;
        }

        .toc ol {
            padding-left: 24px;
        }

        .toc a {
            color: var(--accent);
            text-decoration: none;
        }

        .questions {
            padding: 24px 32px;
        }

        .group-title {
            font-size: 1.4em;
            margin: 16px 0;
            padding-bottom: 4px;
            border-bottom: 2px solid var(--accent);
        }

        .group-count {
            font-size: 0.7em;
            color: var(--text-muted);
        }

        .question {
            margin-bottom: 24px;
            padding: 20px;
            border-radius: 8px;
            background: var(--card-bg);
            border-left: 4px solid var(--accent);
            page-break-inside: avoid;
        }

        .question-header {
            display: flex;
            justify-content: space-between;
            align-items: flex-start;
            gap: 12px;
        }

        .question-title {
            font-size: 1.15em;
            font-weight: 600;
        }

        .badge {
            margin-left: 4px;
        }

        .question-meta {
            margin-top: 4px;
            font-size: 0.85em;
            color: var(--text-muted);
        }

        .tags {
            margin-top: 8px;
            display: flex;
            flex-wrap: wrap;
            gap: 6px;
        }

        .tag {
            color: #ffffff;
            font-size: 0.75em;
            padding: 2px 10px;
            border-radius: 999px;
        }

        .answer {
            margin-top: 12px;
            line-height: 1.7;
        }

        .answer ul, .answer ol, .notes ul, .notes ol {
            padding-left: 24px;
        }

        .answer blockquote, .notes blockquote {
            border-left: 3px solid var(--border-color);
            padding-left: 12px;
            color: var(--text-secondary);
        }

        .answer code, .notes code {
            font-family: var(--font-mono);
            font-size: 0.9em;
            padding: 1px 5px;
            background: var(--code-bg);
            border-radius: 4px;
        }

        .code-block {
            margin: 16px 0;
            border-radius: 8px;
            overflow: hidden;
            background: var(--code-bg);
            border: 1px solid var(--border-color);
        }

        .code-lang {
            padding: 8px 16px;
            background: var(--bg-tertiary);
            font-size: 0.75em;
            font-weight: 600;
            color: var(--text-secondary);
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .code-block pre {
            margin: 0;
            padding: 16px;
            overflow-x: auto;
            font-family: var(--font-mono);
            font-size: 0.9em;
            line-height: 1.5;
        }

        .notes {
            margin-top: 12px;
            padding: 12px;
            border-radius: 6px;
            background: var(--bg-secondary);
            font-size: 0.95em;
        }

        .images {
            margin-top: 12px;
            display: flex;
            flex-wrap: wrap;
            gap: 8px;
        }

        .q-image {
            max-width: 100%;
            border-radius: 6px;
            border: 1px solid var(--border-color);
        }

        .footer {
            padding: 20px 32px;
            text-align: center;
            font-size: 0.9em;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
        }

        @media print {
            body {
                padding: 0;
            }

            .container {
                box-shadow: none;
                border-radius: 0;
            }

            .question {
                page-break-inside: avoid;
            }
        }

        @media (max-width: 768px) {
            body {
                padding: 10px;
            }

            .header, .questions, .toc, .footer {
                padding: 16px;
            }
        }
    </style>
`
