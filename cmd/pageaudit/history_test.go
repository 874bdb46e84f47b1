package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/pageaudit/internal/history"
)

// TestNewHistoryCmd tests the history command flags.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	for _, name := range []string{"list-urls", "limit", "json", "db-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if flag := cmd.Flags().Lookup("list-urls"); flag != nil && flag.Shorthand != "L" {
		t.Errorf("expected shorthand 'L', got %q", flag.Shorthand)
	}
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("requires a url", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, "history", "--db-dir", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "page url is required") {
			t.Errorf("expected missing url error, got %v", err)
		}
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCommand(t, "history", "--db-dir", t.TempDir(), "-n", "-1", "https://shop.example.com/")
		if err == nil {
			t.Error("expected error for negative limit")
		}
	})

	t.Run("empty database directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "db")
		stdout, _, err := executeCommand(t, "history", "--db-dir", dbDir, "https://shop.example.com/")
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(stdout, "No audit history found.") {
			t.Errorf("unexpected output: %q", stdout)
		}
	})

	t.Run("audits are compared across runs", func(t *testing.T) {
		t.Parallel()

		dir, configPath := setupSite(t)
		dbDir := filepath.Join(dir, "db")
		page := filepath.Join(dir, "site", "index.html")

		for range 2 {
			if _, _, err := executeCommand(t, "audit", "-c", configPath, "--db-dir", dbDir,
				"-u", "https://shop.example.com", page); err != nil {
				t.Fatalf("audit failed: %v", err)
			}
		}

		stdout, _, err := executeCommand(t, "history", "--db-dir", dbDir, "--list-urls")
		if err != nil {
			t.Fatalf("history --list-urls failed: %v", err)
		}
		if !strings.Contains(stdout, "https://shop.example.com/index.html") {
			t.Errorf("expected url listing, got %q", stdout)
		}

		stdout, _, err = executeCommand(t, "history", "--db-dir", dbDir, "--json",
			"https://shop.example.com/index.html")
		if err != nil {
			t.Fatalf("history --json failed: %v", err)
		}

		var changes []history.Change
		if err := json.Unmarshal([]byte(stdout), &changes); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(changes) != 2 {
			t.Fatalf("got %d changes, want 2", len(changes))
		}
		if changes[0].First || changes[0].Trend != history.TrendUnchanged || changes[0].MarkupChanged {
			t.Errorf("unexpected newest change: %+v", changes[0])
		}
		if !changes[1].First {
			t.Error("expected oldest audit to be marked first")
		}

		stdout, _, err = executeCommand(t, "history", "--db-dir", dbDir, "-n", "1",
			"https://shop.example.com/index.html")
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(stdout, "+0 unchanged") {
			t.Errorf("expected unchanged row, got %q", stdout)
		}
		if strings.Contains(stdout, "first audit") {
			t.Errorf("limit should hide the oldest audit, got %q", stdout)
		}
	})
}
