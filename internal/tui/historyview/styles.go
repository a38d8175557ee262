// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     historyview
// Description: Styles for the history viewer
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package historyview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/lox/internal/history/store"
)

var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// Entry line styles
var (
	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	SessionStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			PaddingLeft(4)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusSyntaxStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StatusRuntimeStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

var (
	ListPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Logo
const Logo = "Lox History"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderStatusBadge renders a fixed width status badge
func RenderStatusBadge(status store.Status) string {
	switch status {
	case store.StatusOK:
		return StatusOKStyle.Render("[OK]     ")
	case store.StatusSyntaxError:
		return StatusSyntaxStyle.Render("[SYNTAX] ")
	case store.StatusRuntimeError:
		return StatusRuntimeStyle.Render("[RUNTIME]")
	default:
		return HelpDescStyle.Render("[" + string(status) + "]")
	}
}

// RenderFilterStatus renders a filter toggle
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}
