package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/lox/foundation/core/error"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func seed(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	entries := []*Entry{
		{SessionID: "a", Timestamp: now.Add(-3 * time.Minute), Source: "var x = 1;"},
		{SessionID: "a", Timestamp: now.Add(-2 * time.Minute), Source: "print x;", Output: "1\n"},
		{SessionID: "b", Timestamp: now.Add(-1 * time.Minute), Source: "print y;", Status: StatusRuntimeError},
		{SessionID: "b", Timestamp: now.Add(-72 * time.Hour), Source: "print (;", Status: StatusSyntaxError},
	}
	for _, e := range entries {
		if err := s.Append(ctx, e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if e.ID == "" {
			t.Fatal("Append() did not assign an id")
		}
	}
}

func TestStore_Query(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)
			ctx := context.Background()

			tests := []struct {
				name       string
				filter     Filter
				wantSource []string
			}{
				{"all newest first", Filter{}, []string{"print y;", "print x;", "var x = 1;", "print (;"}},
				{"by session", Filter{SessionID: "a"}, []string{"print x;", "var x = 1;"}},
				{"by status", Filter{Status: StatusRuntimeError}, []string{"print y;"}},
				{"limit", Filter{Limit: 2}, []string{"print y;", "print x;"}},
				{"limit and offset", Filter{Limit: 2, Offset: 1}, []string{"print x;", "var x = 1;"}},
				{"since", Filter{Since: time.Now().Add(-time.Hour)}, []string{"print y;", "print x;", "var x = 1;"}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					entries, err := s.Query(ctx, tt.filter)
					if err != nil {
						t.Fatalf("Query() error = %v", err)
					}
					if len(entries) != len(tt.wantSource) {
						t.Fatalf("Query() returned %d entries, want %d", len(entries), len(tt.wantSource))
					}
					for i, e := range entries {
						if e.Source != tt.wantSource[i] {
							t.Errorf("entry %d source = %q, want %q", i, e.Source, tt.wantSource[i])
						}
					}
				})
			}

			entries, _ := s.Query(ctx, Filter{SessionID: "a", Limit: 1})
			if len(entries) != 1 || entries[0].Output != "1\n" || entries[0].Status != StatusOK {
				t.Errorf("round trip lost fields: %+v", entries)
			}
		})
	}
}

func TestStore_Prune(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)
			ctx := context.Background()

			deleted, err := s.Prune(ctx, 24*time.Hour)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != 1 {
				t.Errorf("Prune() deleted %d, want 1", deleted)
			}
			entries, _ := s.Query(ctx, Filter{})
			if len(entries) != 3 {
				t.Errorf("%d entries left, want 3", len(entries))
			}
		})
	}
}

func TestStore_AppendValidation(t *testing.T) {
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Append(context.Background(), &Entry{Source: "print 1;"})
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
				t.Errorf("Append() without session error = %v, want INVALID_INPUT", err)
			}
			if err := s.Append(context.Background(), nil); err == nil {
				t.Error("Append(nil) should fail")
			}
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(Config{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Append(ctx, &Entry{SessionID: "s", Source: "print 1;"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	entries, err := s.Query(ctx, Filter{})
	if err != nil || len(entries) != 1 {
		t.Fatalf("Query() after reopen = %d entries, err = %v", len(entries), err)
	}
}
