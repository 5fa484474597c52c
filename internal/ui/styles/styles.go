// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles for command output.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginTop(1)

	Label = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(16)

	Value = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Location = lipgloss.NewStyle().
			Foreground(Cyan).
			Underline(true)

	Success = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Dim = lipgloss.NewStyle().
		Foreground(TextMuted)

	Separator = lipgloss.NewStyle().
			Foreground(Overlay)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)
)

// Render applies style when colors are enabled and returns text unchanged
// otherwise.
func Render(style lipgloss.Style, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return style.Render(text)
}

// RenderSeparator renders a horizontal rule of width w (70 when w <= 0).
func RenderSeparator(w int) string {
	if w <= 0 {
		w = 70
	}
	return Render(Separator, strings.Repeat("─", w))
}

// RenderField renders a "label value" line.
func RenderField(label, value string) string {
	if !ColorsEnabled() {
		return label + ": " + value
	}
	return Label.Render(label) + Value.Render(value)
}
