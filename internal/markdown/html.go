// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"fmt"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML encodes & < > and " as entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ToHTML converts markdown text to an HTML fragment. Text is escaped before
// any markup is produced, and code block bodies are escaped exactly once.
// Consecutive list items share a single <ul> or <ol>. Paragraph lines and
// blank lines are separated by <br> so source line breaks stay visible.
func ToHTML(text string) string {
	return NodesToHTML(Parse(text))
}

// NodesToHTML renders an already parsed node list.
func NodesToHTML(nodes []Node) string {
	if len(nodes) == 0 {
		return ""
	}

	var sb strings.Builder
	prevInline := false
	openList := ""

	closeList := func() {
		if openList != "" {
			sb.WriteString("</" + openList + ">\n")
			openList = ""
		}
	}

	for _, n := range nodes {
		if n.Kind != KindListItem {
			closeList()
		}

		switch n.Kind {
		case KindParagraph, KindBlank:
			if prevInline {
				sb.WriteString("<br>\n")
			}
			sb.WriteString(RunsToHTML(n.Runs))
			prevInline = true
			continue

		case KindListItem:
			tag := "ul"
			if n.Ordered {
				tag = "ol"
			}
			if openList != tag {
				closeList()
				if prevInline {
					sb.WriteString("\n")
				}
				sb.WriteString("<" + tag + ">\n")
				openList = tag
			}
			sb.WriteString("<li>" + RunsToHTML(n.Runs) + "</li>\n")

		case KindHeading:
			if prevInline {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("<h%d>%s</h%d>\n", n.Level, RunsToHTML(n.Runs), n.Level))

		case KindQuote:
			if prevInline {
				sb.WriteString("\n")
			}
			sb.WriteString("<blockquote>" + RunsToHTML(n.Runs) + "</blockquote>\n")

		case KindCodeBlock:
			if prevInline {
				sb.WriteString("\n")
			}
			class := ""
			if n.Lang != "" {
				class = fmt.Sprintf(` class="language-%s"`, EscapeHTML(n.Lang))
			}
			sb.WriteString(fmt.Sprintf("<pre><code%s>%s</code></pre>\n", class, EscapeHTML(n.Code)))
		}
		prevInline = false
	}
	closeList()

	return strings.TrimRight(sb.String(), "\n")
}

// RunsToHTML renders inline runs, escaping their text.
func RunsToHTML(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		text := EscapeHTML(r.Text)
		switch r.Style {
		case StyleBold:
			sb.WriteString("<strong>" + text + "</strong>")
		case StyleItalic:
			sb.WriteString("<em>" + text + "</em>")
		case StyleCode:
			sb.WriteString("<code>" + text + "</code>")
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}
