// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown parses the small markdown subset used in interview
// answers into a flat node list that each renderer walks on its own.
//
// Supported: fenced code blocks, inline code, bold, italic, #/##/### headers,
// unordered and ordered list items, blockquotes, and line breaks. Anything
// else is treated as paragraph text.
package markdown

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// =============================================================================
// NODES
// =============================================================================

// Kind is the block type of a Node.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindListItem
	KindQuote
	KindCodeBlock
	KindBlank
)

// Style is the inline style of a Run.
type Style int

const (
	StyleText Style = iota
	StyleBold
	StyleItalic
	StyleCode
)

// Run is a span of inline text with a single style.
type Run struct {
	Text  string
	Style Style
}

// Node is one block of parsed text. Source lines map one-to-one onto nodes,
// except fenced code which collapses into a single KindCodeBlock.
type Node struct {
	Kind Kind

	// Level is 2, 3 or 4 for headings (# maps to h2).
	Level int

	// Ordered and Number describe list items.
	Ordered bool
	Number  int

	// Lang and Code hold fenced block content; Runs is empty for code.
	Lang string
	Code string

	Runs []Run
}

var (
	headingPattern = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
	bulletPattern  = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
	orderedPattern = regexp.MustCompile(`^\s*(\d+)\.\s+(.*)$`)
	quotePattern   = regexp.MustCompile(`^\s*>\s?(.*)$`)
)

// =============================================================================
// BLOCK SCANNER
// =============================================================================

// Parse splits text into nodes. Empty input yields nil.
func Parse(text string) []Node {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	nodes := make([]Node, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			var body []string
			i++
			for ; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
				body = append(body, lines[i])
			}
			nodes = append(nodes, Node{Kind: KindCodeBlock, Lang: lang, Code: strings.Join(body, "\n")})
			continue
		}

		if trimmed == "" {
			nodes = append(nodes, Node{Kind: KindBlank})
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, Node{Kind: KindHeading, Level: len(m[1]) + 1, Runs: ParseInline(m[2])})
			continue
		}
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, Node{Kind: KindListItem, Runs: ParseInline(m[1])})
			continue
		}
		if m := orderedPattern.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			nodes = append(nodes, Node{Kind: KindListItem, Ordered: true, Number: n, Runs: ParseInline(m[2])})
			continue
		}
		if m := quotePattern.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, Node{Kind: KindQuote, Runs: ParseInline(m[1])})
			continue
		}

		nodes = append(nodes, Node{Kind: KindParagraph, Runs: ParseInline(line)})
	}
	return nodes
}

// =============================================================================
// INLINE SCANNER
// =============================================================================

// ParseInline splits a single line into styled runs. Unmatched delimiters are
// kept as literal text.
func ParseInline(line string) []Run {
	if line == "" {
		return nil
	}
	src := []rune(line)
	var runs []Run
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			runs = append(runs, Run{Text: text.String(), Style: StyleText})
			text.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]

		if c == '`' {
			if j := indexRune(src, '`', i+1); j > i+1 {
				flush()
				runs = append(runs, Run{Text: string(src[i+1 : j]), Style: StyleCode})
				i = j + 1
				continue
			}
		}

		if (c == '*' || c == '_') && i+1 < len(src) && src[i+1] == c {
			if j := indexPair(src, c, i+2); j > i+2 {
				flush()
				runs = append(runs, Run{Text: string(src[i+2 : j]), Style: StyleBold})
				i = j + 2
				continue
			}
		}

		if (c == '*' || c == '_') && !wordRune(src, i-1) {
			if j := closeItalic(src, c, i+1); j > 0 {
				flush()
				runs = append(runs, Run{Text: string(src[i+1 : j]), Style: StyleItalic})
				i = j + 1
				continue
			}
		}

		text.WriteRune(c)
		i++
	}
	flush()
	return runs
}

// PlainText joins runs without styling.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func indexRune(src []rune, r rune, from int) int {
	for j := from; j < len(src); j++ {
		if src[j] == r {
			return j
		}
	}
	return -1
}

func indexPair(src []rune, r rune, from int) int {
	for j := from; j+1 < len(src); j++ {
		if src[j] == r && src[j+1] == r {
			return j
		}
	}
	return -1
}

// closeItalic finds the closing delimiter for an italic span opened before
// from. The span must be non-empty, must not start or end with a space, and
// the closing delimiter must not be followed by a word character, so that
// identifiers like snake_case_name stay intact.
func closeItalic(src []rune, r rune, from int) int {
	if from >= len(src) || src[from] == r || unicode.IsSpace(src[from]) {
		return -1
	}
	for j := from + 1; j < len(src); j++ {
		if src[j] != r {
			continue
		}
		if j+1 < len(src) && src[j+1] == r {
			return -1
		}
		if unicode.IsSpace(src[j-1]) || wordRune(src, j+1) {
			continue
		}
		return j
	}
	return -1
}

func wordRune(src []rune, i int) bool {
	if i < 0 || i >= len(src) {
		return false
	}
	r := src[i]
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
