package collection

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/inudochi/gameshelf/internal/store"
	"github.com/inudochi/gameshelf/internal/validation"
	"go.uber.org/zap"
)

const (
	defaultStaleAfter          = 14 * 24 * time.Hour
	defaultInactiveAfterMonths = 3
)

// Config holds the collection rules.
type Config struct {
	// StaleAfter is the random-pick window: games not played within it are
	// preferred.
	StaleAfter time.Duration
	// InactiveAfterMonths is counted in calendar months back from now.
	InactiveAfterMonths int
	// RecomputeStatusOnPlay makes LogPlaySession refresh the played game's
	// status right away instead of waiting for UpdateAllGamesStatus.
	RecomputeStatusOnPlay bool
}

func (c Config) withDefaults() Config {
	if c.StaleAfter <= 0 {
		c.StaleAfter = defaultStaleAfter
	}
	if c.InactiveAfterMonths <= 0 {
		c.InactiveAfterMonths = defaultInactiveAfterMonths
	}
	return c
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand replaces the package-level random source.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.intn = r.IntN
		}
	}
}

// Service applies the collection rules on top of one store.
type Service struct {
	store  store.Store
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	intn   func(n int) int
}

// NewService wraps st with the collection rules in cfg.
func NewService(st store.Store, cfg Config, logger *zap.Logger, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("nil store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  st,
		cfg:    cfg.withDefaults(),
		logger: logger,
		now:    time.Now,
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the effective rules.
func (s *Service) Config() Config { return s.cfg }

func (s *Service) GetAllGames(ctx context.Context) ([]domain.Game, error) {
	games, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *Service) FindGame(ctx context.Context, id int64) (*domain.Game, error) {
	g, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find game %d: %w", id, err)
	}
	return g, nil
}

func (s *Service) AddGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	game.Title = strings.TrimSpace(game.Title)
	if !validation.ValidateGame(game) || (game.Status != "" && !game.Status.Valid()) {
		return domain.Game{}, fmt.Errorf("add game %q: %w", game.Title, validation.ErrInvalid)
	}
	stored, err := s.store.Add(ctx, game)
	if err != nil {
		return domain.Game{}, fmt.Errorf("add game %q: %w", game.Title, err)
	}
	s.logger.Info("game_added", zap.Int64("id", stored.ID), zap.String("title", stored.Title))
	return stored, nil
}

// UpdateGame replaces the stored record. An empty status keeps the stored one.
func (s *Service) UpdateGame(ctx context.Context, game domain.Game) error {
	if err := s.prepareReplace(ctx, &game); err != nil {
		return fmt.Errorf("update game %d: %w", game.ID, err)
	}
	if err := s.store.Update(ctx, game); err != nil {
		return fmt.Errorf("update game %d: %w", game.ID, err)
	}
	s.logger.Info("game_updated", zap.Int64("id", game.ID), zap.String("title", game.Title))
	return nil
}

// prepareReplace validates a full replacement of a stored record. An empty
// status is taken from the stored record; an unknown one is invalid.
func (s *Service) prepareReplace(ctx context.Context, game *domain.Game) error {
	game.Title = strings.TrimSpace(game.Title)
	if !validation.ValidateGame(*game) {
		return validation.ErrInvalid
	}
	if game.Status != "" {
		if !game.Status.Valid() {
			return fmt.Errorf("%w: status %q", validation.ErrInvalid, game.Status)
		}
		return nil
	}
	current, err := s.store.FindByID(ctx, game.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return store.ErrNotFound
	}
	game.Status = current.Status
	return nil
}

// Fields are the user-editable parts of a game.
type Fields struct {
	Title      string
	Genre      string
	MinPlayers int
	MaxPlayers int
}

// EditGame replaces the descriptive fields of a stored game and keeps its
// status and play history.
func (s *Service) EditGame(ctx context.Context, id int64, f Fields) (domain.Game, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Game{}, fmt.Errorf("edit game %d: %w", id, err)
	}
	if current == nil {
		return domain.Game{}, fmt.Errorf("edit game %d: %w", id, store.ErrNotFound)
	}
	edited := current.Clone()
	edited.Title = strings.TrimSpace(f.Title)
	edited.Genre = f.Genre
	edited.MinPlayers = f.MinPlayers
	edited.MaxPlayers = f.MaxPlayers
	if err := s.UpdateGame(ctx, edited); err != nil {
		return domain.Game{}, err
	}
	return edited, nil
}

func (s *Service) DeleteGame(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	s.logger.Info("game_deleted", zap.Int64("id", id))
	return nil
}

// GetSinglePlayerGames returns games whose minimum player count is 1, even
// when they also support groups.
func (s *Service) GetSinglePlayerGames(ctx context.Context) ([]domain.Game, error) {
	return s.filter(ctx, "list single-player games", domain.Game.IsSinglePlayer)
}

// GetMultiplayerGames returns games that need at least two players.
func (s *Service) GetMultiplayerGames(ctx context.Context) ([]domain.Game, error) {
	return s.filter(ctx, "list multiplayer games", domain.Game.IsMultiplayer)
}

func (s *Service) filter(ctx context.Context, op string, keep func(domain.Game) bool) ([]domain.Game, error) {
	games, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

// GetRandomGame picks uniformly among games not played within the stale
// window, falling back to the whole collection when every game is recent.
// It returns nil for an empty collection.
func (s *Service) GetRandomGame(ctx context.Context) (*domain.Game, error) {
	games, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("pick random game: %w", err)
	}
	if len(games) == 0 {
		s.logger.Warn("random_pick_empty")
		return nil, nil
	}

	cutoff := s.now().Add(-s.cfg.StaleAfter)
	stale := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if !g.PlayedSince(cutoff) {
			stale = append(stale, g)
		}
	}
	pool := stale
	if len(pool) == 0 {
		pool = games
	}
	picked := pool[s.intn(len(pool))]
	s.logger.Debug("random_pick",
		zap.Int64("id", picked.ID),
		zap.Int("stale", len(stale)),
		zap.Int("total", len(games)),
	)
	return &picked, nil
}

// statusAt derives the status of g as of now.
func (s *Service) statusAt(g domain.Game, now time.Time) domain.Status {
	cutoff := now.AddDate(0, -s.cfg.InactiveAfterMonths, 0)
	if g.LastPlayed == nil || g.LastPlayed.Before(cutoff) {
		return domain.StatusInactive
	}
	return domain.StatusActive
}

// UpdateAllGamesStatus recomputes every status and persists the changed
// records. It returns how many records changed.
func (s *Service) UpdateAllGamesStatus(ctx context.Context) (int, error) {
	games, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("recompute statuses: %w", err)
	}
	now := s.now()
	changed := 0
	for _, g := range games {
		next := s.statusAt(g, now)
		if next == g.Status {
			continue
		}
		g.Status = next
		if err := s.store.Update(ctx, g); err != nil {
			return changed, fmt.Errorf("recompute status of game %d: %w", g.ID, err)
		}
		changed++
	}
	s.logger.Info("status_recomputed", zap.Int("games", len(games)), zap.Int("changed", changed))
	return changed, nil
}

// LogPlaySession records date as the last play of game. The record is
// validated like UpdateGame and an empty status keeps the stored one. The
// status is left for the next UpdateAllGamesStatus unless
// RecomputeStatusOnPlay is set.
func (s *Service) LogPlaySession(ctx context.Context, game domain.Game, date time.Time) (domain.Game, error) {
	played := game.Clone()
	played.LastPlayed = &date
	if err := s.prepareReplace(ctx, &played); err != nil {
		return domain.Game{}, fmt.Errorf("log play session for game %d: %w", game.ID, err)
	}
	if s.cfg.RecomputeStatusOnPlay {
		played.Status = s.statusAt(played, s.now())
	}
	if err := s.store.Update(ctx, played); err != nil {
		return domain.Game{}, fmt.Errorf("log play session for game %d: %w", game.ID, err)
	}
	s.logger.Info("play_logged", zap.Int64("id", played.ID), zap.Time("date", date))
	return played, nil
}

// PlanSession validates the date, then logs it as a play of the stored game.
func (s *Service) PlanSession(ctx context.Context, id int64, date time.Time) (domain.Game, error) {
	if !validation.ValidateDateAt(date, s.now()) {
		return domain.Game{}, fmt.Errorf("plan session for game %d: date %s is in the past: %w", id, date.Format("2006-01-02"), validation.ErrInvalid)
	}
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Game{}, fmt.Errorf("plan session for game %d: %w", id, err)
	}
	if current == nil {
		return domain.Game{}, fmt.Errorf("plan session for game %d: %w", id, store.ErrNotFound)
	}
	return s.LogPlaySession(ctx, *current, date)
}

// Summary describes the collection size. Status counts are best effort.
type Summary struct {
	Total           int
	Active          int
	Inactive        int
	HasStatusCounts bool
}

// Summary lists the collection for the total and derives status counts from
// the store when it can count, otherwise from the listed records. A failure
// while counting only drops the counts.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	games, err := s.store.GetAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize collection: %w", err)
	}
	sum := Summary{Total: len(games)}

	if counter, ok := s.store.(store.StatusCounter); ok {
		counts, err := counter.CountByStatus(ctx)
		if err != nil {
			s.logger.Debug("status_count_failed", zap.Error(err))
			return sum, nil
		}
		sum.Active = counts[domain.StatusActive]
		sum.Inactive = counts[domain.StatusInactive]
		sum.HasStatusCounts = true
		return sum, nil
	}

	for _, g := range games {
		switch g.Status {
		case domain.StatusActive:
			sum.Active++
		case domain.StatusInactive:
			sum.Inactive++
		}
	}
	sum.HasStatusCounts = true
	return sum, nil
}
