package shelfpresenter

import (
	"strings"
	"testing"
	"time"

	"github.com/inudochi/gameshelf/internal/msgcat"
	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/pkg/gamedto"
)

func newTestFormatter(t *testing.T) *Formatter {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return NewFormatter(cat)
}

func TestGames(t *testing.T) {
	f := newTestFormatter(t)
	played := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	out := f.Games(ListMulti, []gamedto.GameView{
		{ID: 1, Title: "Catan", Genre: "Strategy", MinPlayers: 3, MaxPlayers: 4, Status: "Active", LastPlayed: &played},
		{ID: 2, Title: "Hive", Genre: "Strategy", MinPlayers: 2, MaxPlayers: 2, Status: "Inactive"},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", out)
	}
	if lines[0] != "Multiplayer games (2)" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "3-4 players") || !strings.Contains(lines[1], "2024-05-01") {
		t.Fatalf("unexpected row %q", lines[1])
	}
	if !strings.Contains(lines[2], "2 players") || !strings.Contains(lines[2], "never") {
		t.Fatalf("unexpected row %q", lines[2])
	}
	if got := f.Games(ListAll, nil); !strings.HasPrefix(got, "No games yet") {
		t.Fatalf("unexpected empty list %q", got)
	}
}

func TestStats(t *testing.T) {
	f := newTestFormatter(t)
	full := f.Stats(collection.Summary{Total: 3, Active: 2, Inactive: 1, HasStatusCounts: true})
	if full != "3 games in the collection.\n2 active, 1 inactive." {
		t.Fatalf("unexpected stats %q", full)
	}
	partial := f.Stats(collection.Summary{Total: 3})
	if partial != "3 games in the collection." {
		t.Fatalf("counts must be omitted, got %q", partial)
	}
}

func TestErrorAndRandom(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.Error(gamedto.DomainError{Code: gamedto.CodeNotFound}); !strings.Contains(got, "no longer exists") {
		t.Fatalf("unexpected not found text %q", got)
	}
	if got := f.Error(gamedto.DomainError{Code: gamedto.CodePersistence, Message: "disk full"}); got != "Storage problem: disk full" {
		t.Fatalf("unexpected persistence text %q", got)
	}
	if got := f.Random(nil); got != "Your collection is empty." {
		t.Fatalf("unexpected empty pick %q", got)
	}
	if got := f.Random(&gamedto.GameView{Title: "Azul", MinPlayers: 2, MaxPlayers: 4}); got != "How about Azul (2-4 players)?" {
		t.Fatalf("unexpected pick %q", got)
	}
	if got := f.Help(); !strings.Contains(got, "Wargame") || !strings.Contains(got, "play id") {
		t.Fatalf("help should list commands and genres: %q", got)
	}
}
