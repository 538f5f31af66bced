package shelfpresenter

import (
	"errors"
	"strings"

	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/internal/source"
	"github.com/inudochi/gameshelf/internal/store"
	"github.com/inudochi/gameshelf/internal/validation"
	"github.com/inudochi/gameshelf/pkg/gamedto"
)

func ToGame(r gamedto.AddGameRequest) domain.Game {
	return domain.Game{
		Title:      strings.TrimSpace(r.Title),
		Genre:      strings.TrimSpace(r.Genre),
		MinPlayers: r.MinPlayers,
		MaxPlayers: r.MaxPlayers,
	}
}

func ToFields(r gamedto.EditGameRequest) collection.Fields {
	return collection.Fields{
		Title:      strings.TrimSpace(r.Title),
		Genre:      strings.TrimSpace(r.Genre),
		MinPlayers: r.MinPlayers,
		MaxPlayers: r.MaxPlayers,
	}
}

func ToGameView(g domain.Game) gamedto.GameView {
	v := gamedto.GameView{
		ID:         g.ID,
		Title:      g.Title,
		Genre:      g.Genre,
		MinPlayers: g.MinPlayers,
		MaxPlayers: g.MaxPlayers,
		Status:     string(g.Status),
	}
	if g.LastPlayed != nil {
		t := *g.LastPlayed
		v.LastPlayed = &t
	}
	return v
}

func ToGameViews(games []domain.Game) []gamedto.GameView {
	out := make([]gamedto.GameView, 0, len(games))
	for _, g := range games {
		out = append(out, ToGameView(g))
	}
	return out
}

// ToDomainError classifies err for callers. A missing record is retryable
// after the caller refreshes its view.
func ToDomainError(err error) gamedto.DomainError {
	if err == nil {
		return gamedto.DomainError{}
	}
	var de gamedto.DomainError
	if errors.As(err, &de) {
		return de
	}
	out := gamedto.DomainError{Code: gamedto.CodeInternal, Message: err.Error()}
	switch {
	case errors.Is(err, validation.ErrInvalid), errors.Is(err, gamedto.ErrMalformedRequest):
		out.Code = gamedto.CodeValidation
	case errors.Is(err, store.ErrNotFound):
		out.Code = gamedto.CodeNotFound
		out.Retryable = true
	case errors.Is(err, source.ErrNoActiveBackend):
		out.Code = gamedto.CodeNoBackend
	case errors.Is(err, store.ErrPersistence):
		out.Code = gamedto.CodePersistence
	}
	return out
}
