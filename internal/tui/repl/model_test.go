package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/lox/foundation/core/log"
	"github.com/msto63/lox/internal/history/store"
)

func newModel(t *testing.T, history store.Store) Model {
	t.Helper()

	m, err := New(Config{Logger: mdwlog.NewNop(), History: history})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func submit(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()

	m.input.SetValue(input)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func texts(m Model, kind EntryKind) []string {
	var out []string
	for _, e := range m.Transcript() {
		if e.Kind == kind {
			out = append(out, e.Text)
		}
	}
	return out
}

func TestModel_Eval(t *testing.T) {
	m := newModel(t, nil)

	m, _ = submit(t, m, "var a = 20;")
	m, _ = submit(t, m, "print a + 22; print -nil;")
	m, _ = submit(t, m, "print (a;")

	if got := texts(m, EntryInput); len(got) != 3 || got[1] != "print a + 22; print -nil;" {
		t.Errorf("inputs = %q", got)
	}
	if got := texts(m, EntryOutput); len(got) != 1 || got[0] != "42" {
		t.Errorf("outputs = %q", got)
	}
	if got := texts(m, EntryRuntimeError); len(got) != 1 || got[0] != "[line 1] Runtime error: Not a valid operand" {
		t.Errorf("runtime errors = %q", got)
	}
	if got := texts(m, EntryCompileError); len(got) != 1 || !strings.Contains(got[0], "Expect ')' after expression.") {
		t.Errorf("compile errors = %q", got)
	}
	if m.lastStatus != "syntax_error" {
		t.Errorf("lastStatus = %q", m.lastStatus)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "runs: 3") {
		t.Errorf("status bar missing run count:\n%s", m.View())
	}
}

func TestModel_MetaCommands(t *testing.T) {
	m := newModel(t, nil)

	m, _ = submit(t, m, "var x = true;")
	m, _ = submit(t, m, ":env")
	if got := texts(m, EntryOutput); len(got) != 1 || got[0] != "x = true" {
		t.Errorf(":env outputs = %q", got)
	}

	m, _ = submit(t, m, ":reset")
	if m.session.Environment().Len() != 0 {
		t.Error(":reset kept bindings")
	}

	m, _ = submit(t, m, ":clear")
	if len(m.Transcript()) != 0 {
		t.Errorf("transcript after :clear = %+v", m.Transcript())
	}

	_, cmd := submit(t, m, ":quit")
	if cmd == nil {
		t.Fatal(":quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error(":quit did not quit")
	}
}

func TestModel_InputHistoryNavigation(t *testing.T) {
	m := newModel(t, nil)
	m, _ = submit(t, m, "print 1;")
	m, _ = submit(t, m, "print 2;")

	m.input.SetValue("draft")
	up := func(m Model) Model {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		return updated.(Model)
	}
	down := func(m Model) Model {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		return updated.(Model)
	}

	m = up(m)
	if m.input.Value() != "print 2;" {
		t.Errorf("first up = %q", m.input.Value())
	}
	m = up(m)
	m = up(m)
	if m.input.Value() != "print 1;" {
		t.Errorf("up at oldest = %q", m.input.Value())
	}
	m = down(m)
	m = down(m)
	if m.input.Value() != "draft" {
		t.Errorf("down past newest = %q, want draft restored", m.input.Value())
	}
}

func TestModel_RecordsHistory(t *testing.T) {
	history := store.NewMemoryStore()
	m := newModel(t, history)

	m, cmd := submit(t, m, "print \"hi\";")
	if cmd == nil {
		t.Fatal("expected a history command")
	}
	msg := cmd()
	if rec, ok := msg.(historyRecordedMsg); !ok || rec.err != nil {
		t.Fatalf("history command returned %#v", msg)
	}
	m.Update(msg)

	entries, _ := history.Query(context.Background(), store.Filter{SessionID: m.session.ID()})
	if len(entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(entries))
	}
	if entries[0].Output != "hi\n" || entries[0].Status != store.StatusOK {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newModel(t, nil)
	for _, key := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s returned no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", key)
		}
	}
}
