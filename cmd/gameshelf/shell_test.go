package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inudochi/gameshelf/internal/adapter/shelfpresenter"
	"github.com/inudochi/gameshelf/internal/msgcat"
	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/internal/source"
	"github.com/inudochi/gameshelf/internal/store"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	coord := source.New(store.Options{FilePath: filepath.Join(t.TempDir(), "games.json")}, collection.Config{}, nil)
	t.Cleanup(func() { _ = coord.Close() })
	var out bytes.Buffer
	return newShell(coord, shelfpresenter.NewFormatter(cat), &out, nil), &out
}

func TestShellRequiresBackend(t *testing.T) {
	sh, out := newTestShell(t)
	sh.exec(context.Background(), "list")
	if !strings.Contains(out.String(), "No storage backend is active") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestShellSession(t *testing.T) {
	sh, out := newTestShell(t)
	future := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	past := time.Now().AddDate(0, 0, -5).Format("2006-01-02")
	script := strings.Join([]string{
		"source memory",
		"add Catan|Strategy|3|4",
		"add Onirim|Card|1|2",
		"add Broken|Nope|1|2",
		"list single",
		"play 1 " + future,
		"play 1 " + past,
		"edit 2|Onirim 2e|Card|1|2",
		"delete 9",
		"stats",
		"bogus",
		"quit",
		"list",
	}, "\n")
	sh.run(context.Background(), strings.NewReader(script))

	text := out.String()
	for _, want := range []string{
		"Switched to memory storage.",
		"Added #1 Catan.",
		"Added #2 Onirim.",
		"That doesn't look right",
		"Single-player games (1)",
		"Logged a session of Catan on " + future + ".",
		"Updated #2 Onirim 2e.",
		"That game no longer exists.",
		"Source: memory",
		"2 games in the collection.",
		"Unknown command bogus.",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Count(text, "Logged a session") != 1 {
		t.Fatalf("past date must be rejected:\n%s", text)
	}
	if strings.Contains(text, "All games") {
		t.Fatalf("commands after quit must not run:\n%s", text)
	}
}

func TestShellSourceErrors(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()
	sh.exec(ctx, "source xml")
	sh.exec(ctx, "source redis")
	sh.exec(ctx, "source")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected output %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "That doesn't look right") {
		t.Fatalf("unknown kind should be a validation error: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Storage problem") {
		t.Fatalf("unreachable backend should be a persistence error: %q", lines[1])
	}
	if lines[2] != "Source: none" {
		t.Fatalf("unexpected label %q", lines[2])
	}
}
