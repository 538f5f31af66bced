package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inudochi/gameshelf/internal/adapter/shelfpresenter"
	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/internal/source"
	"github.com/inudochi/gameshelf/internal/store"
	"github.com/inudochi/gameshelf/pkg/gamedto"
	"go.uber.org/zap"
)

// shell runs one text command at a time against the active backend.
type shell struct {
	coord  *source.Coordinator
	view   *shelfpresenter.Formatter
	out    io.Writer
	logger *zap.Logger
	now    func() time.Time
}

func newShell(coord *source.Coordinator, f *shelfpresenter.Formatter, out io.Writer, logger *zap.Logger) *shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &shell{coord: coord, view: f, out: out, logger: logger, now: time.Now}
}

// run reads commands line by line until EOF, quit or ctx is done.
func (s *shell) run(ctx context.Context, in io.Reader) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		if !s.exec(ctx, sc.Text()) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		s.logger.Warn("stdin_read_failed", zap.Error(err))
	}
}

// exec runs one command line. It returns false when the shell should stop.
func (s *shell) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		s.println(s.view.Help())
		return true
	case "source":
		s.switchSource(ctx, rest)
		return true
	}

	svc, err := s.coord.Service()
	if err != nil {
		s.printError(err)
		return true
	}

	switch cmd {
	case "list":
		err = s.list(ctx, svc, rest)
	case "add":
		err = s.add(ctx, svc, rest)
	case "edit":
		err = s.edit(ctx, svc, rest)
	case "delete":
		err = s.delete(ctx, svc, rest)
	case "play":
		err = s.play(ctx, svc, strings.Fields(rest))
	case "random":
		err = s.random(ctx, svc)
	case "refresh":
		err = s.refresh(ctx, svc)
	case "stats":
		err = s.stats(ctx, svc)
	default:
		s.println(s.view.UnknownCommand(cmd))
		return true
	}
	if err != nil {
		s.printError(err)
	}
	return true
}

func (s *shell) switchSource(ctx context.Context, arg string) {
	if arg == "" {
		s.println(s.coord.Label())
		return
	}
	kind, err := store.ParseKind(arg)
	if err != nil {
		s.printError(fmt.Errorf("%w: %v", gamedto.ErrMalformedRequest, err))
		return
	}
	if _, err := s.coord.SwitchBackend(ctx, kind); err != nil {
		s.printError(err)
		return
	}
	s.println(s.view.Switched(string(kind)))
}

func (s *shell) list(ctx context.Context, svc *collection.Service, arg string) error {
	var (
		games []domain.Game
		err   error
		kind  = shelfpresenter.ListKind(strings.ToLower(arg))
	)
	switch kind {
	case "", shelfpresenter.ListAll:
		kind = shelfpresenter.ListAll
		games, err = svc.GetAllGames(ctx)
	case shelfpresenter.ListSingle:
		games, err = svc.GetSinglePlayerGames(ctx)
	case shelfpresenter.ListMulti:
		games, err = svc.GetMultiplayerGames(ctx)
	default:
		return fmt.Errorf("%w: list %q", gamedto.ErrMalformedRequest, arg)
	}
	if err != nil {
		return err
	}
	s.println(s.view.Games(kind, shelfpresenter.ToGameViews(games)))
	return nil
}

func (s *shell) add(ctx context.Context, svc *collection.Service, arg string) error {
	req, err := gamedto.ParseAddGame(arg)
	if err != nil {
		return err
	}
	stored, err := svc.AddGame(ctx, shelfpresenter.ToGame(req))
	if err != nil {
		return err
	}
	s.println(s.view.Added(shelfpresenter.ToGameView(stored)))
	return nil
}

func (s *shell) edit(ctx context.Context, svc *collection.Service, arg string) error {
	req, err := gamedto.ParseEditGame(arg)
	if err != nil {
		return err
	}
	edited, err := svc.EditGame(ctx, req.ID, shelfpresenter.ToFields(req))
	if err != nil {
		return err
	}
	s.println(s.view.Edited(shelfpresenter.ToGameView(edited)))
	return nil
}

func (s *shell) delete(ctx context.Context, svc *collection.Service, arg string) error {
	id, err := gamedto.ParseID(arg)
	if err != nil {
		return err
	}
	if err := svc.DeleteGame(ctx, id); err != nil {
		return err
	}
	s.println(s.view.Deleted(id))
	return nil
}

func (s *shell) play(ctx context.Context, svc *collection.Service, args []string) error {
	req, err := gamedto.ParsePlaySession(args, s.now())
	if err != nil {
		return err
	}
	played, err := svc.PlanSession(ctx, req.ID, req.Date)
	if err != nil {
		return err
	}
	s.println(s.view.Played(shelfpresenter.ToGameView(played)))
	return nil
}

func (s *shell) random(ctx context.Context, svc *collection.Service) error {
	g, err := svc.GetRandomGame(ctx)
	if err != nil {
		return err
	}
	if g == nil {
		s.println(s.view.Random(nil))
		return nil
	}
	v := shelfpresenter.ToGameView(*g)
	s.println(s.view.Random(&v))
	return nil
}

func (s *shell) refresh(ctx context.Context, svc *collection.Service) error {
	changed, err := svc.UpdateAllGamesStatus(ctx)
	if err != nil {
		return err
	}
	s.println(s.view.Refreshed(changed))
	return nil
}

func (s *shell) stats(ctx context.Context, svc *collection.Service) error {
	sum, err := svc.Summary(ctx)
	if err != nil {
		return err
	}
	s.println(s.coord.Label())
	s.println(s.view.Stats(sum))
	return nil
}

func (s *shell) printError(err error) {
	de := shelfpresenter.ToDomainError(err)
	s.logger.Debug("command_failed", zap.String("code", de.Code), zap.Error(err))
	s.println(s.view.Error(de))
}

func (s *shell) println(text string) {
	fmt.Fprintln(s.out, text)
}
