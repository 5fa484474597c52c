// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_PlainWithoutColors(t *testing.T) {
	ForceColorsEnabled(false)
	require.Equal(t, "ok", Render(Success, "ok"))
	require.Equal(t, "Format: pdf", RenderField("Format", "pdf"))
	require.Equal(t, strings.Repeat("─", 3), RenderSeparator(3))
	require.Equal(t, 70, len([]rune(RenderSeparator(0))))
}

func TestTable_AlignsWideCharacters(t *testing.T) {
	ForceColorsEnabled(false)
	tbl := &Table{
		Headers: []string{"Name", "Count"},
		Rows: [][]string{
			{"日本語", "1"},
			{"go", "22"},
		},
	}
	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "Name    Count", lines[0])
	require.Equal(t, "日本語  1", lines[2])
	require.Equal(t, "go      22", lines[3])
}

func TestTable_TruncatesToMaxWidth(t *testing.T) {
	ForceColorsEnabled(false)
	tbl := &Table{
		Headers:   []string{"Title", "N"},
		Rows:      [][]string{{"a very long export title", "3"}},
		MaxWidths: []int{10},
	}
	lines := strings.Split(tbl.Render(), "\n")
	require.Equal(t, "a very ...  3", lines[2])
}
