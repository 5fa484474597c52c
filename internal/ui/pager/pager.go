// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pager shows rendered Markdown in a scrollable terminal view.
package pager

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/ui/styles"
)

// RenderMarkdown renders md for a terminal of the given width. It returns
// md unchanged when glamour cannot build a renderer.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = styles.DefaultTerminalWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// =============================================================================
// MODEL
// =============================================================================

// Model is a bubbletea model paging through pre-rendered content.
type Model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

// New creates a pager for already rendered content.
func New(title, content string) Model {
	return Model{title: title, content: content}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Padding(0, 1)
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.header() + "\n" + m.viewport.View() + "\n" + m.footer()
}

func (m Model) header() string {
	return headerStyle.Render(m.title)
}

func (m Model) footer() string {
	pct := 100.0
	if m.ready {
		pct = m.viewport.ScrollPercent() * 100
	}
	return footerStyle.Render(fmt.Sprintf("%3.0f%%  q quit  g/G top/bottom", pct))
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Show renders md and pages it on the terminal until the user quits.
func Show(title, md string) error {
	width, _ := styles.TerminalSize()
	p := tea.NewProgram(
		New(title, RenderMarkdown(md, width-2)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// Print writes md rendered for a terminal of the given width without paging.
func Print(w io.Writer, md string, width int) error {
	_, err := io.WriteString(w, strings.TrimLeft(RenderMarkdown(md, width), "\n"))
	return err
}
