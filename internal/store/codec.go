package store

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/inudochi/gameshelf/internal/domain"
)

// record is the on-disk and in-redis shape of a game.
type record struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Genre      string     `json:"genre"`
	MinPlayers int        `json:"minPlayers"`
	MaxPlayers int        `json:"maxPlayers"`
	Status     string     `json:"status"`
	LastPlayed *time.Time `json:"lastPlayed"`
}

func toRecord(g domain.Game) record {
	r := record{
		ID:         g.ID,
		Title:      g.Title,
		Genre:      g.Genre,
		MinPlayers: g.MinPlayers,
		MaxPlayers: g.MaxPlayers,
		Status:     string(g.Status),
	}
	if g.LastPlayed != nil {
		t := *g.LastPlayed
		r.LastPlayed = &t
	}
	return r
}

func (r record) toGame() (domain.Game, error) {
	status, ok := domain.ParseStatus(r.Status)
	if !ok {
		return domain.Game{}, fmt.Errorf("record %d: unknown status %q", r.ID, r.Status)
	}
	g := domain.Game{
		ID:         r.ID,
		Title:      r.Title,
		Genre:      r.Genre,
		MinPlayers: r.MinPlayers,
		MaxPlayers: r.MaxPlayers,
		Status:     status,
	}
	if r.LastPlayed != nil {
		t := *r.LastPlayed
		g.LastPlayed = &t
	}
	return g, nil
}

func encodeCollection(games []domain.Game) ([]byte, error) {
	recs := make([]record, 0, len(games))
	for _, g := range games {
		recs = append(recs, toRecord(g))
	}
	return json.MarshalIndent(recs, "", "  ")
}

func decodeCollection(raw []byte) ([]domain.Game, error) {
	var recs []record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	games := make([]domain.Game, 0, len(recs))
	seen := make(map[int64]struct{}, len(recs))
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
		g, err := r.toGame()
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

func encodeGame(g domain.Game) ([]byte, error) {
	return json.Marshal(toRecord(g))
}

func decodeGame(raw []byte) (domain.Game, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Game{}, fmt.Errorf("decode game: %w", err)
	}
	return r.toGame()
}
