package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/internal/store"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := New(store.Options{FilePath: filepath.Join(t.TempDir(), "games.json")}, collection.Config{}, nil)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestServiceBeforeFirstSwitch(t *testing.T) {
	c := newTestCoordinator(t)
	if _, err := c.Service(); !errors.Is(err, ErrNoActiveBackend) {
		t.Fatalf("expected ErrNoActiveBackend, got %v", err)
	}
	if c.Active() != nil {
		t.Fatalf("expected no active pair")
	}
	if c.Label() != "Source: none" {
		t.Fatalf("unexpected label %q", c.Label())
	}
}

func TestSwitchBackend(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)

	pair, err := c.SwitchBackend(ctx, store.KindFile)
	if err != nil {
		t.Fatalf("SwitchBackend: %v", err)
	}
	if pair.Kind != store.KindFile || c.Label() != "Source: json" {
		t.Fatalf("unexpected pair %+v label %q", pair, c.Label())
	}
	svc, err := c.Service()
	if err != nil || svc != pair.Service {
		t.Fatalf("Service: %v", err)
	}
	if _, err := svc.AddGame(ctx, domain.Game{Title: "Catan", Genre: "Strategy", MinPlayers: 3, MaxPlayers: 4}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	mem, err := c.SwitchBackend(ctx, store.KindMemory)
	if err != nil {
		t.Fatalf("SwitchBackend memory: %v", err)
	}
	games, err := mem.Service.GetAllGames(ctx)
	if err != nil || len(games) != 0 {
		t.Fatalf("memory backend should start empty: %v %v", games, err)
	}

	// switching back reads the file written earlier
	back, err := c.SwitchBackend(ctx, store.KindFile)
	if err != nil {
		t.Fatalf("SwitchBackend file: %v", err)
	}
	games, err = back.Service.GetAllGames(ctx)
	if err != nil || len(games) != 1 || games[0].Title != "Catan" {
		t.Fatalf("unexpected games after switching back: %v %v", games, err)
	}
}

func TestSwitchBackendFailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)

	first, err := c.SwitchBackend(ctx, store.KindMemory)
	if err != nil {
		t.Fatalf("SwitchBackend: %v", err)
	}

	// no REDIS_URL configured
	if _, err := c.SwitchBackend(ctx, store.KindRedis); !errors.Is(err, store.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if c.Active() != first {
		t.Fatalf("failed switch must keep the previous pair")
	}

	_, err = c.SwitchBackend(ctx, store.Kind("xml"))
	if !errors.Is(err, store.ErrPersistence) || !errors.Is(err, store.ErrUnknownBackend) {
		t.Fatalf("expected wrapped ErrUnknownBackend, got %v", err)
	}
	if c.Label() != "Source: memory" {
		t.Fatalf("unexpected label %q", c.Label())
	}
}

func TestCloseClearsActivePair(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	if _, err := c.SwitchBackend(ctx, store.KindMemory); err != nil {
		t.Fatalf("SwitchBackend: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := c.Service(); !errors.Is(err, ErrNoActiveBackend) {
		t.Fatalf("expected ErrNoActiveBackend after Close, got %v", err)
	}
}
