// ============================================================================
// Lox - Tree-Walking Interpreter
// ============================================================================
//
// Package:     historyview
// Description: Bubbletea model browsing recorded REPL and server runs
// Author:      msto63
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package historyview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	"github.com/msto63/lox/internal/history/store"
)

// StatusFilter tracks which run statuses are shown
type StatusFilter struct {
	OK      bool
	Syntax  bool
	Runtime bool
}

func allStatuses() StatusFilter {
	return StatusFilter{OK: true, Syntax: true, Runtime: true}
}

// Allows reports whether entries with status s pass the filter
func (f StatusFilter) Allows(s store.Status) bool {
	switch s {
	case store.StatusOK:
		return f.OK
	case store.StatusSyntaxError:
		return f.Syntax
	case store.StatusRuntimeError:
		return f.Runtime
	}
	return true
}

// Config holds history viewer configuration
type Config struct {
	Store           store.Store
	SessionID       string
	Limit           int
	RefreshInterval time.Duration
	Version         string
}

// DefaultConfig returns default configuration without a store
func DefaultConfig() Config {
	return Config{
		Limit:           500,
		RefreshInterval: 2 * time.Second,
	}
}

// Model is the Bubbletea model for the history viewer
type Model struct {
	width      int
	height     int
	ready      bool
	loading    bool
	paused     bool
	autoScroll bool
	showOutput bool
	err        error

	viewport viewport.Model
	spinner  spinner.Model

	all          []*store.Entry
	filtered     []*store.Entry
	statusFilter StatusFilter

	store     store.Store
	sessionID string
	limit     int
	interval  time.Duration
	version   string
}

// New creates a history viewer over cfg.Store
func New(cfg Config) (Model, error) {
	if cfg.Store == nil {
		return Model{}, mdwerror.New("history viewer needs a store").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("historyview.New")
	}
	defaults := DefaultConfig()
	if cfg.Limit <= 0 {
		cfg.Limit = defaults.Limit
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaults.RefreshInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return Model{
		spinner:      sp,
		loading:      true,
		autoScroll:   true,
		statusFilter: allStatuses(),
		store:        cfg.Store,
		sessionID:    cfg.SessionID,
		limit:        cfg.Limit,
		interval:     cfg.RefreshInterval,
		version:      cfg.Version,
	}, nil
}

// Init loads the first page and starts the refresh ticker
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.load,
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
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

		headerHeight := 4
		footerHeight := 4
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.all = msg.entries
			m.applyFilters()
			m.updateViewportContent()
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
		}

	case tickMsg:
		if !m.paused {
			cmds = append(cmds, m.load)
		}
		cmds = append(cmds, m.tick())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "1":
			m.statusFilter.OK = !m.statusFilter.OK
		case "2":
			m.statusFilter.Syntax = !m.statusFilter.Syntax
		case "3":
			m.statusFilter.Runtime = !m.statusFilter.Runtime
		case "0":
			m.statusFilter = allStatuses()
		case "o":
			m.showOutput = !m.showOutput
		case "p":
			m.paused = !m.paused
			return m, nil
		case "r":
			m.loading = true
			return m, m.load
		case "a":
			m.autoScroll = !m.autoScroll
			if m.autoScroll {
				m.viewport.GotoBottom()
			}
			return m, nil
		case "g":
			m.viewport.GotoTop()
			m.autoScroll = false
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			m.autoScroll = true
			return m, nil
		default:
			return m, nil
		}
		m.applyFilters()
		m.updateViewportContent()
		return m, nil

	case tea.KeySpace:
		m.paused = !m.paused
	case tea.KeyPgUp:
		m.viewport.ViewUp()
		m.autoScroll = false
	case tea.KeyPgDown:
		m.viewport.ViewDown()
	case tea.KeyUp:
		m.viewport.LineUp(1)
		m.autoScroll = false
	case tea.KeyDown:
		m.viewport.LineDown(1)
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading history..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(ListPanelStyle.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	scope := "all sessions"
	if m.sessionID != "" {
		scope = "session " + shortID(m.sessionID)
	}

	header := LogoStyle.Render(Logo) + "   " + HelpDescStyle.Render(scope)
	if m.paused {
		header += "  " + PausedStyle.Render("PAUSED")
	}
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderFilterBar() string {
	filters := []string{
		"1:" + RenderFilterStatus("OK", m.statusFilter.OK),
		"2:" + RenderFilterStatus("SYNTAX", m.statusFilter.Syntax),
		"3:" + RenderFilterStatus("RUNTIME", m.statusFilter.Runtime),
	}
	content := strings.Join(filters, "  ") + "  " +
		HelpDescStyle.Render(fmt.Sprintf("[%d/%d runs]", len(m.filtered), len(m.all)))
	if m.autoScroll {
		content += "  " + FilterActiveStyle.Render("[auto-scroll]")
	}
	return FilterBarStyle.Width(m.width - 2).Render(content)
}

func (m Model) renderStatusBar() string {
	left := HelpDescStyle.Render(fmt.Sprintf("limit: %d", m.limit))
	if m.version != "" {
		left += HelpDescStyle.Render("  v" + m.version)
	}

	var right string
	switch {
	case m.loading:
		right = m.spinner.View() + " loading..."
	case m.err != nil:
		right = ErrorStyle.Render(m.err.Error())
	default:
		right = StatusOKStyle.Render("store ok")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 2 {
		gap = 2
	}
	return StatusBarStyle.Width(m.width - 2).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("1-3", "status"),
		RenderKeyHint("0", "all"),
		RenderKeyHint("o", "output"),
		RenderKeyHint("p", "pause"),
		RenderKeyHint("r", "refresh"),
		RenderKeyHint("g/G", "top/bottom"),
		RenderKeyHint("q", "quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

func (m *Model) updateViewportContent() {
	m.viewport.SetContent(m.renderEntries())
}

// renderEntries renders the filtered entries, one line each plus their
// output when enabled
func (m Model) renderEntries() string {
	var content strings.Builder
	for _, e := range m.filtered {
		fmt.Fprintf(&content, "%s %s %s %s\n",
			TimestampStyle.Render(e.Timestamp.Format("01-02 15:04:05")),
			RenderStatusBadge(e.Status),
			SessionStyle.Render(shortID(e.SessionID)),
			SourceStyle.Render(strings.ReplaceAll(e.Source, "\n", " ")))
		if m.showOutput && e.Output != "" {
			for _, line := range strings.Split(strings.TrimRight(e.Output, "\n"), "\n") {
				content.WriteString(OutputStyle.Render(line))
				content.WriteString("\n")
			}
		}
	}
	return content.String()
}

func (m *Model) applyFilters() {
	m.filtered = make([]*store.Entry, 0, len(m.all))
	for _, e := range m.all {
		if m.statusFilter.Allows(e.Status) {
			m.filtered = append(m.filtered, e)
		}
	}
}

// Visible returns the entries passing the current filter, oldest first
func (m Model) Visible() []*store.Entry {
	out := make([]*store.Entry, len(m.filtered))
	copy(out, m.filtered)
	return out
}

// load queries the store. Entries arrive newest first and are reversed so
// the list reads top to bottom in time order.
func (m Model) load() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := m.store.Query(ctx, store.Filter{
		SessionID: m.sessionID,
		Limit:     m.limit,
	})
	if err != nil {
		return entriesLoadedMsg{err: err}
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entriesLoadedMsg{entries: entries}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the history viewer
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
