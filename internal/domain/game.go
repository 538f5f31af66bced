package domain

import (
	"sort"
	"strings"
	"time"
)

// Status is the cached activity marker of a catalogued game.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, true
	case "inactive":
		return StatusInactive, true
	default:
		return "", false
	}
}

var genres = []string{
	"Strategy",
	"Party",
	"Cooperative",
	"Family",
	"Card",
	"Deckbuilding",
	"Puzzle",
	"Trivia",
	"Word",
	"Dexterity",
	"Roleplaying",
	"Wargame",
	"Adventure",
	"Action",
	"Shooter",
	"Platformer",
	"Racing",
	"Sports",
	"Simulation",
	"Fighting",
	"Horror",
	"Sandbox",
}

var genreSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		m[g] = struct{}{}
	}
	return m
}()

// Genres returns the recognized genres in display order.
func Genres() []string {
	return append([]string(nil), genres...)
}

// SortedGenres returns the recognized genres alphabetically.
func SortedGenres() []string {
	out := Genres()
	sort.Strings(out)
	return out
}

// IsGenre reports whether g is a recognized genre. Matching is exact.
func IsGenre(g string) bool {
	_, ok := genreSet[g]
	return ok
}

// Game is one catalogued game.
type Game struct {
	ID         int64
	Title      string
	Genre      string
	MinPlayers int
	MaxPlayers int
	Status     Status
	LastPlayed *time.Time
}

// Clone returns a deep copy, so callers never share the LastPlayed pointer.
func (g Game) Clone() Game {
	out := g
	if g.LastPlayed != nil {
		t := *g.LastPlayed
		out.LastPlayed = &t
	}
	return out
}

// Played reports whether the game has ever been played.
func (g Game) Played() bool { return g.LastPlayed != nil }

// PlayedSince reports whether the game was played at or after t.
func (g Game) PlayedSince(t time.Time) bool {
	return g.LastPlayed != nil && !g.LastPlayed.Before(t)
}

// IsSinglePlayer classifies by the minimum player count only.
func (g Game) IsSinglePlayer() bool { return g.MinPlayers == 1 }

// IsMultiplayer classifies by the minimum player count only.
func (g Game) IsMultiplayer() bool { return g.MinPlayers >= 2 }

// WithDefaults fills the status of a freshly created record.
func (g Game) WithDefaults() Game {
	if g.Status == "" {
		g.Status = StatusActive
	}
	return g
}
