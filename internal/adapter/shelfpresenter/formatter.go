package shelfpresenter

import (
	"fmt"
	"strings"

	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/inudochi/gameshelf/internal/msgcat"
	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/pkg/gamedto"
)

const lastPlayedLayout = "2006-01-02"

// ListKind selects the heading of a game list.
type ListKind string

const (
	ListAll    ListKind = "all"
	ListSingle ListKind = "single"
	ListMulti  ListKind = "multi"
)

// Formatter renders collection results as plain text.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

func (f *Formatter) render(key string, data map[string]any, fallback string) string {
	return f.cat.RenderOr(key, data, fallback)
}

func (f *Formatter) Help() string {
	return f.render("help", map[string]any{"Genres": strings.Join(domain.SortedGenres(), ", ")}, "help unavailable")
}

func (f *Formatter) Games(kind ListKind, games []gamedto.GameView) string {
	if len(games) == 0 {
		return f.render("list.empty", nil, "No games.")
	}
	title := f.render("list."+string(kind), nil, string(kind))
	var sb strings.Builder
	sb.WriteString(f.render("list.header", map[string]any{"Title": title, "Count": len(games)}, title))
	for _, g := range games {
		sb.WriteString("\n")
		sb.WriteString(f.row(g))
	}
	return sb.String()
}

func (f *Formatter) row(g gamedto.GameView) string {
	last := f.render("list.never", nil, "never")
	if g.LastPlayed != nil {
		last = g.LastPlayed.Format(lastPlayedLayout)
	}
	data := map[string]any{
		"ID":         g.ID,
		"Title":      g.Title,
		"Genre":      g.Genre,
		"Players":    players(g),
		"Status":     g.Status,
		"LastPlayed": last,
	}
	return f.render("list.row", data, fmt.Sprintf("#%d %s", g.ID, g.Title))
}

func players(g gamedto.GameView) string {
	if g.MinPlayers == g.MaxPlayers {
		return fmt.Sprintf("%d", g.MinPlayers)
	}
	return fmt.Sprintf("%d-%d", g.MinPlayers, g.MaxPlayers)
}

func (f *Formatter) Added(g gamedto.GameView) string {
	return f.render("game.added", map[string]any{"ID": g.ID, "Title": g.Title}, g.Title)
}

func (f *Formatter) Edited(g gamedto.GameView) string {
	return f.render("game.edited", map[string]any{"ID": g.ID, "Title": g.Title}, g.Title)
}

func (f *Formatter) Deleted(id int64) string {
	return f.render("game.deleted", map[string]any{"ID": id}, fmt.Sprintf("deleted %d", id))
}

func (f *Formatter) Played(g gamedto.GameView) string {
	date := ""
	if g.LastPlayed != nil {
		date = g.LastPlayed.Format(lastPlayedLayout)
	}
	return f.render("game.played", map[string]any{"Title": g.Title, "Date": date}, g.Title)
}

// Random renders a pick; nil means the collection was empty.
func (f *Formatter) Random(g *gamedto.GameView) string {
	if g == nil {
		return f.render("random.empty", nil, "Your collection is empty.")
	}
	return f.render("random.pick", map[string]any{"Title": g.Title, "Players": players(*g)}, g.Title)
}

func (f *Formatter) Refreshed(changed int) string {
	return f.render("status.refreshed", map[string]any{"Changed": changed}, fmt.Sprintf("%d changed", changed))
}

// Stats always shows the total; status counts only when they were derived.
func (f *Formatter) Stats(sum collection.Summary) string {
	out := f.render("stats.total", map[string]any{"Total": sum.Total}, fmt.Sprintf("%d games", sum.Total))
	if sum.HasStatusCounts {
		out += "\n" + f.render("stats.counts", map[string]any{"Active": sum.Active, "Inactive": sum.Inactive}, "")
	}
	return out
}

func (f *Formatter) Switched(kind string) string {
	return f.render("source.switched", map[string]any{"Kind": kind}, "Switched to "+kind)
}

func (f *Formatter) UnknownCommand(cmd string) string {
	return f.render("error.unknown_command", map[string]any{"Command": cmd}, "unknown command "+cmd)
}

func (f *Formatter) Error(err gamedto.DomainError) string {
	code := err.Code
	if code == "" {
		code = gamedto.CodeInternal
	}
	return f.render("error."+code, map[string]any{"Message": err.Message}, err.Error())
}
