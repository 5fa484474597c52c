// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pager

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown_KeepsText(t *testing.T) {
	out := RenderMarkdown("# Title\n\nSome **bold** answer", 60)
	require.Contains(t, out, "Title")
	require.Contains(t, out, "bold")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, "plain words", 40))
	require.Contains(t, buf.String(), "plain words")
	require.False(t, strings.HasPrefix(buf.String(), "\n"))
}

func TestModel_SizesAndQuits(t *testing.T) {
	m := New("Preview", strings.Repeat("line\n", 100))
	require.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m = next.(Model)
	require.True(t, m.ready)
	require.Contains(t, m.View(), "Preview")
	require.Contains(t, m.View(), "0%")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	m = next.(Model)
	require.True(t, m.viewport.AtBottom())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
