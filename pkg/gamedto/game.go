package gamedto

import "time"

// GameView is the display shape of a stored game.
type GameView struct {
	ID         int64
	Title      string
	Genre      string
	MinPlayers int
	MaxPlayers int
	Status     string
	LastPlayed *time.Time
}
