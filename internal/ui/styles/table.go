// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/util"
)

// Table is a plain column table measured in display cells, so emoji and
// CJK text line up.
type Table struct {
	Headers []string
	Rows    [][]string

	// MaxWidths caps each column; zero means uncapped.
	MaxWidths []int
}

// widths returns the display width of each column after capping.
func (t *Table) widths() []int {
	w := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		w[i] = util.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(w); i++ {
			if n := util.StringWidth(row[i]); n > w[i] {
				w[i] = n
			}
		}
	}
	for i := range w {
		if i < len(t.MaxWidths) && t.MaxWidths[i] > 0 && w[i] > t.MaxWidths[i] {
			w[i] = t.MaxWidths[i]
		}
	}
	return w
}

// Render lays the table out with two spaces between columns.
func (t *Table) Render() string {
	widths := t.widths()
	var sb strings.Builder

	line := func(cells []string, header bool) {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = util.PadRight(cell, w)
		}
		text := strings.TrimRight(strings.Join(parts, "  "), " ")
		if header {
			text = Render(TableHeader, text)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	line(t.Headers, true)
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	sb.WriteString(RenderSeparator(total))
	sb.WriteString("\n")
	for _, row := range t.Rows {
		line(row, false)
	}
	return sb.String()
}
