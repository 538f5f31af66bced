package gamedto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedRequest = errors.New("malformed request")

// DateLayout is the calendar-date form accepted for play sessions.
const DateLayout = "2006-01-02"

type AddGameRequest struct {
	Title      string
	Genre      string
	MinPlayers int
	MaxPlayers int
}

type EditGameRequest struct {
	ID         int64
	Title      string
	Genre      string
	MinPlayers int
	MaxPlayers int
}

type PlaySessionRequest struct {
	ID   int64
	Date time.Time
}

// ParseAddGame reads "title|genre|min|max".
func ParseAddGame(s string) (AddGameRequest, error) {
	parts := splitFields(s)
	if len(parts) != 4 {
		return AddGameRequest{}, fmt.Errorf("%w: want title|genre|min|max", ErrMalformedRequest)
	}
	minP, maxP, err := parsePlayers(parts[2], parts[3])
	if err != nil {
		return AddGameRequest{}, err
	}
	return AddGameRequest{Title: parts[0], Genre: parts[1], MinPlayers: minP, MaxPlayers: maxP}, nil
}

// ParseEditGame reads "id|title|genre|min|max".
func ParseEditGame(s string) (EditGameRequest, error) {
	parts := splitFields(s)
	if len(parts) != 5 {
		return EditGameRequest{}, fmt.Errorf("%w: want id|title|genre|min|max", ErrMalformedRequest)
	}
	id, err := ParseID(parts[0])
	if err != nil {
		return EditGameRequest{}, err
	}
	minP, maxP, err := parsePlayers(parts[3], parts[4])
	if err != nil {
		return EditGameRequest{}, err
	}
	return EditGameRequest{ID: id, Title: parts[1], Genre: parts[2], MinPlayers: minP, MaxPlayers: maxP}, nil
}

// ParsePlaySession reads "id [YYYY-MM-DD]". A missing date means today in
// now's location.
func ParsePlaySession(args []string, now time.Time) (PlaySessionRequest, error) {
	if len(args) == 0 || len(args) > 2 {
		return PlaySessionRequest{}, fmt.Errorf("%w: want id [YYYY-MM-DD]", ErrMalformedRequest)
	}
	id, err := ParseID(args[0])
	if err != nil {
		return PlaySessionRequest{}, err
	}
	if len(args) == 1 {
		return PlaySessionRequest{ID: id, Date: now}, nil
	}
	date, err := time.ParseInLocation(DateLayout, args[1], now.Location())
	if err != nil {
		return PlaySessionRequest{}, fmt.Errorf("%w: date %q", ErrMalformedRequest, args[1])
	}
	return PlaySessionRequest{ID: id, Date: date}, nil
}

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", ErrMalformedRequest, s)
	}
	return id, nil
}

func parsePlayers(minS, maxS string) (int, int, error) {
	minP, err := strconv.Atoi(strings.TrimSpace(minS))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: min players %q", ErrMalformedRequest, minS)
	}
	maxP, err := strconv.Atoi(strings.TrimSpace(maxS))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: max players %q", ErrMalformedRequest, maxS)
	}
	return minP, maxP, nil
}

func splitFields(s string) []string {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
