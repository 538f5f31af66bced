package shelfpresenter

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/inudochi/gameshelf/internal/source"
	"github.com/inudochi/gameshelf/internal/store"
	"github.com/inudochi/gameshelf/internal/validation"
	"github.com/inudochi/gameshelf/pkg/gamedto"
)

func TestRequestConversions(t *testing.T) {
	g := ToGame(gamedto.AddGameRequest{Title: " Catan ", Genre: " Strategy", MinPlayers: 3, MaxPlayers: 4})
	if g.Title != "Catan" || g.Genre != "Strategy" || g.MinPlayers != 3 || g.MaxPlayers != 4 || g.ID != 0 || g.Status != "" {
		t.Fatalf("unexpected game: %+v", g)
	}
	f := ToFields(gamedto.EditGameRequest{ID: 7, Title: "Root ", Genre: "Wargame", MinPlayers: 2, MaxPlayers: 4})
	if f.Title != "Root" || f.Genre != "Wargame" || f.MinPlayers != 2 || f.MaxPlayers != 4 {
		t.Fatalf("unexpected fields: %+v", f)
	}
}

func TestToGameViewCopiesLastPlayed(t *testing.T) {
	played := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	g := domain.Game{ID: 1, Title: "Azul", Status: domain.StatusActive, LastPlayed: &played}
	v := ToGameView(g)
	if v.Status != "Active" || v.LastPlayed == nil || !v.LastPlayed.Equal(played) {
		t.Fatalf("unexpected view: %+v", v)
	}
	*v.LastPlayed = v.LastPlayed.AddDate(1, 0, 0)
	if !g.LastPlayed.Equal(played) {
		t.Fatalf("view shares LastPlayed with the record")
	}
	if views := ToGameViews([]domain.Game{g, g}); len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
}

func TestToDomainError(t *testing.T) {
	cases := []struct {
		err       error
		code      string
		retryable bool
	}{
		{fmt.Errorf("add game: %w", validation.ErrInvalid), gamedto.CodeValidation, false},
		{fmt.Errorf("parse: %w", gamedto.ErrMalformedRequest), gamedto.CodeValidation, false},
		{fmt.Errorf("update game 3: %w", store.ErrNotFound), gamedto.CodeNotFound, true},
		{&store.PersistenceError{Backend: store.KindSQL, Op: "open", Err: errors.New("refused")}, gamedto.CodePersistence, false},
		{source.ErrNoActiveBackend, gamedto.CodeNoBackend, false},
		{errors.New("boom"), gamedto.CodeInternal, false},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		if de.Code != tc.code || de.Retryable != tc.retryable {
			t.Fatalf("ToDomainError(%v) = %+v; want code %s retryable %v", tc.err, de, tc.code, tc.retryable)
		}
		if de.Message == "" {
			t.Fatalf("ToDomainError(%v) lost the message", tc.err)
		}
	}

	orig := gamedto.DomainError{Code: gamedto.CodeNotFound, Message: "gone", Retryable: true}
	if got := ToDomainError(fmt.Errorf("wrap: %w", orig)); got != orig {
		t.Fatalf("existing DomainError should pass through, got %+v", got)
	}
	if got := ToDomainError(nil); got != (gamedto.DomainError{}) {
		t.Fatalf("nil error should map to zero value, got %+v", got)
	}
}
