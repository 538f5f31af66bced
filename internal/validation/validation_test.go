package validation

import (
	"sync"
	"testing"
	"time"

	"github.com/inudochi/gameshelf/internal/domain"
)

func TestValidateGameInput(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		genre    string
		min, max int
		want     bool
	}{
		{"valid", "Catan", "Strategy", 3, 4, true},
		{"equal bounds", "Patience", "Card", 1, 1, true},
		{"no upper bound", "Werewolf", "Party", 5, 75, true},
		{"empty title", "", "Strategy", 1, 2, false},
		{"blank title", "   \t", "Strategy", 1, 2, false},
		{"empty genre", "Catan", "", 1, 2, false},
		{"unknown genre", "Catan", "Knitting", 1, 2, false},
		{"genre case matters", "Catan", "strategy", 1, 2, false},
		{"min zero", "Catan", "Strategy", 0, 2, false},
		{"negative", "Catan", "Strategy", -1, -1, false},
		{"min above max", "Catan", "Strategy", 4, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateGameInput(tc.title, tc.genre, tc.min, tc.max); got != tc.want {
				t.Fatalf("ValidateGameInput(%q,%q,%d,%d)=%v want %v", tc.title, tc.genre, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestEveryGenreAccepted(t *testing.T) {
	for _, g := range domain.Genres() {
		if !ValidateGameInput("x", g, 1, 2) {
			t.Fatalf("genre %q rejected", g)
		}
	}
}

func TestValidateGame(t *testing.T) {
	g := domain.Game{Title: " Azul ", Genre: "Family", MinPlayers: 2, MaxPlayers: 4}
	if !ValidateGame(g) {
		t.Fatalf("expected valid game")
	}
	g.MaxPlayers = 1
	if ValidateGame(g) {
		t.Fatalf("expected min>max to be rejected")
	}
}

func TestValidateDateAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 30, 0, 0, time.Local)
	if !ValidateDateAt(now, now) {
		t.Fatalf("today must be valid")
	}
	startOfToday := time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local)
	if !ValidateDateAt(startOfToday, now) {
		t.Fatalf("earlier time today must be valid")
	}
	if ValidateDateAt(now.AddDate(0, 0, -1), now) {
		t.Fatalf("yesterday must be invalid")
	}
	for _, n := range []int{0, 1, 7, 365} {
		if !ValidateDateAt(now.AddDate(0, 0, n), now) {
			t.Fatalf("today+%d must be valid", n)
		}
	}
	if ValidateDateAt(time.Time{}, now) {
		t.Fatalf("zero date must be invalid")
	}
}

func TestValidateDateToday(t *testing.T) {
	if !ValidateDate(time.Now()) {
		t.Fatalf("today must be valid")
	}
	if ValidateDate(time.Now().AddDate(0, 0, -1)) {
		t.Fatalf("yesterday must be invalid")
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !ValidateGameInput("Catan", "Strategy", 3, 4) {
				t.Errorf("unexpected rejection")
			}
		}()
	}
	wg.Wait()
}

func TestGenreRuleRegistered(t *testing.T) {
	v := getValidator()
	if err := v.Var("Strategy", "genre"); err != nil {
		t.Fatalf("known genre rejected by the genre rule: %v", err)
	}
	if err := v.Var("Chess", "genre"); err == nil {
		t.Fatalf("unknown genre accepted by the genre rule")
	}
}
