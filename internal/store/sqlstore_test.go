package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/inudochi/gameshelf/internal/domain"
)

func TestSQLStoreRebind(t *testing.T) {
	pg := &SQLStore{driver: DriverPostgres}
	got := pg.rebind(`UPDATE games SET title = ?, genre = ? WHERE id = ?`)
	want := `UPDATE games SET title = $1, genre = $2 WHERE id = $3`
	if got != want {
		t.Fatalf("rebind postgres: got %q want %q", got, want)
	}
	lite := &SQLStore{driver: DriverSQLite}
	if q := `DELETE FROM games WHERE id = ?`; lite.rebind(q) != q {
		t.Fatalf("sqlite query must keep ? placeholders")
	}
}

func TestSQLStoreTitleIsBoundNotInterpolated(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	evil := domain.Game{Title: `x'); DROP TABLE games; --`, Genre: "Party", MinPlayers: 2, MaxPlayers: 4}
	g, err := s.Add(ctx, evil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.FindByID(ctx, g.ID)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %v %v", got, err)
	}
	if got.Title != evil.Title {
		t.Fatalf("title mangled: %q", got.Title)
	}
}

func TestSQLStoreCountByStatus(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	for _, st := range []domain.Status{domain.StatusActive, domain.StatusInactive, domain.StatusInactive} {
		g := catan()
		g.Status = st
		if _, err := s.Add(ctx, g); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	counter, ok := s.(StatusCounter)
	if !ok {
		t.Fatalf("sql store must implement StatusCounter")
	}
	counts, err := counter.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[domain.StatusActive] != 1 || counts[domain.StatusInactive] != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestSQLStorePersistsAcrossReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "games.db")
	ctx := context.Background()
	opts := SQLOptions{Driver: "sqlite3", DSN: dsn, AutoCreate: true}
	s, err := NewSQLStore(ctx, opts)
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	in := catan()
	in.LastPlayed = ts("2026-09-30T18:45:00+02:00")
	g, err := s.Add(ctx, in)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewSQLStore(ctx, opts)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	games, err := s2.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(games) != 1 || !sameGame(games[0], g) {
		t.Fatalf("expected %+v, got %+v", g, games)
	}
}

func TestSQLStoreConstructionErrors(t *testing.T) {
	ctx := context.Background()
	cases := map[string]SQLOptions{
		"missing dsn":    {Driver: DriverSQLite},
		"unknown driver": {Driver: "oracle", DSN: "x"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewSQLStore(ctx, opts)
			if !errors.Is(err, ErrPersistence) {
				t.Fatalf("expected ErrPersistence, got %v", err)
			}
		})
	}
}

func TestSQLStoreWithoutTable(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLStore(ctx, SQLOptions{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "bare.db")})
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	defer s.Close()
	if _, err := s.GetAll(ctx); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence for missing table, got %v", err)
	}
}
