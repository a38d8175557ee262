// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the full-screen REPL
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package repl

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwlox "github.com/msto63/lox/foundation/lox"
	"github.com/msto63/lox/foundation/lox/diag"
	"github.com/msto63/lox/internal/history/store"
	"github.com/msto63/lox/internal/tui"
)

const maxInputHistory = 100

// Config holds TUI REPL configuration
type Config struct {
	Prompt          string
	MaxSourceLength int
	StopOnError     bool
	Logger          *mdwlog.Logger
	History         store.Store // Optional persistent history
}

// Model is the Bubbletea model of the TUI REPL
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	lastStatus string
	lastRun    time.Duration

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Interpreter state
	session *mdwlox.Session
	output  *bytes.Buffer

	transcript []Entry

	// Input history
	inputHistory []string
	historyIndex int    // -1 means not navigating
	currentInput string // input saved while navigating

	history store.Store
	logger  *mdwlog.Logger
}

// New creates a TUI REPL model with a fresh session
func New(cfg Config) (Model, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}

	output := &bytes.Buffer{}
	engine, err := mdwlox.NewEngine(mdwlox.Options{
		Logger:             cfg.Logger,
		Stdout:             output,
		MaxSourceLength:    cfg.MaxSourceLength,
		StopOnRuntimeError: cfg.StopOnError,
	})
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Placeholder = "lox statement, :help for commands"
	ti.CharLimit = 4000
	ti.Width = 76
	ti.Focus()

	session := engine.NewSession(uuid.NewString())

	return Model{
		input:        ti,
		session:      session,
		output:       output,
		historyIndex: -1,
		history:      cfg.History,
		logger:       cfg.Logger.WithField("component", "tui-repl"),
		transcript: []Entry{{
			Kind:      EntrySystem,
			Text:      "Session " + session.ID() + ". Type :help for commands.",
			Timestamp: time.Now(),
		}},
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + blank line
		footerHeight := 5 // Input box + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 6
		m.updateViewportContent()

	case historyRecordedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to record history", mdwlog.Fields{"error": msg.err.Error()})
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+l":
		m.transcript = nil
		m.updateViewportContent()
		return m, nil
	case "ctrl+r":
		m.resetSession()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		if input == "" {
			return m, nil
		}
		m.pushHistory(input)
		m.input.Reset()

		var cmd tea.Cmd
		if strings.HasPrefix(input, ":") {
			if m.meta(input) {
				return m, tea.Quit
			}
		} else {
			cmd = m.eval(input)
		}
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, cmd

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) pushHistory(input string) {
	if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != input {
		m.inputHistory = append(m.inputHistory, input)
		if len(m.inputHistory) > maxInputHistory {
			m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
		}
	}
	m.historyIndex = -1
	m.currentInput = ""
}

// eval runs one input and returns the command persisting it
func (m *Model) eval(source string) tea.Cmd {
	now := time.Now()
	m.output.Reset()
	m.append(EntryInput, source)

	result, err := m.session.Run(context.Background(), source)
	if result == nil {
		m.append(EntryCompileError, err.Error())
		m.lastStatus = "rejected"
		return nil
	}

	output := m.output.String()
	if output != "" {
		for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
			m.append(EntryOutput, line)
		}
	}
	for _, d := range result.Diagnostics {
		switch d.Kind {
		case diag.KindRuntime, diag.KindNotImplemented:
			m.append(EntryRuntimeError, d.String())
		default:
			m.append(EntryCompileError, d.String())
		}
	}
	status := string(result.Status)
	m.lastStatus = status
	m.lastRun = result.Duration

	if m.history == nil {
		return nil
	}
	entry := &store.Entry{
		SessionID: m.session.ID(),
		Timestamp: now,
		Source:    source,
		Output:    output,
		Status:    store.Status(status),
	}
	history := m.history
	return func() tea.Msg {
		return historyRecordedMsg{err: history.Append(context.Background(), entry)}
	}
}

// meta handles a :command and reports whether the program should quit
func (m *Model) meta(input string) bool {
	m.append(EntryInput, input)

	switch strings.Fields(input)[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		m.append(EntrySystem, ":env list bindings, :reset clear bindings, :clear clear screen, :quit leave")
		m.append(EntrySystem, "up/down history, pgup/pgdown scroll, ctrl+l clear, ctrl+r reset, esc quit")
	case ":env":
		bindings := m.session.Bindings()
		if len(bindings) == 0 {
			m.append(EntrySystem, "no bindings")
		}
		for _, b := range bindings {
			m.append(EntryOutput, fmt.Sprintf("%s = %s", b.Name, b.Value))
		}
	case ":reset":
		m.resetSession()
	case ":clear":
		m.transcript = nil
	default:
		m.append(EntrySystem, "unknown command "+input)
	}
	return false
}

func (m *Model) resetSession() {
	m.session.Reset()
	m.append(EntrySystem, "environment cleared")
	m.updateViewportContent()
}

func (m *Model) append(kind EntryKind, text string) {
	m.transcript = append(m.transcript, Entry{Kind: kind, Text: text, Timestamp: time.Now()})
}

// Transcript returns a copy of the transcript
func (m Model) Transcript() []Entry {
	out := make([]Entry, len(m.transcript))
	copy(out, m.transcript)
	return out
}

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Starting Lox..."
	}

	var b strings.Builder

	b.WriteString(tui.RenderTitle("Lox") + "  " + tui.SubtitleStyle.Render("session "+m.session.ID()))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(tui.FocusedInputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(tui.RenderHelp("enter run • ↑/↓ history • ctrl+l clear • ctrl+r reset • esc quit"))

	return b.String()
}

func (m Model) renderStatusBar() string {
	parts := []string{fmt.Sprintf("runs: %d", m.session.Runs())}
	parts = append(parts, fmt.Sprintf("bindings: %d", m.session.Environment().Len()))
	if m.lastStatus != "" {
		parts = append(parts, "last: "+tui.RenderStatus(m.lastStatus)+fmt.Sprintf(" (%s)", m.lastRun.Round(time.Microsecond)))
	}
	return tui.StatusBarStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	var content strings.Builder
	for _, e := range m.transcript {
		switch e.Kind {
		case EntryInput:
			content.WriteString(tui.InputEchoStyle.Render(m.input.Prompt + e.Text))
		case EntryOutput:
			content.WriteString(tui.OutputStyle.Render(e.Text))
		case EntryCompileError:
			content.WriteString(tui.CompileErrorStyle.Render(e.Text))
		case EntryRuntimeError:
			content.WriteString(tui.ErrorMessageStyle.Render(e.Text))
		case EntrySystem:
			content.WriteString(tui.SystemMessageStyle.Render(e.Text))
		}
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
}

// Run starts the TUI REPL
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
