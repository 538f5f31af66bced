package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/inudochi/gameshelf/internal/adapter/shelfpresenter"
	appcfg "github.com/inudochi/gameshelf/internal/config"
	"github.com/inudochi/gameshelf/internal/msgcat"
	"github.com/inudochi/gameshelf/internal/obslog"
	"github.com/inudochi/gameshelf/internal/source"
	"go.uber.org/zap"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	logger := obslog.L()

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("messages init error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	coord := source.New(cfg.StoreOptions(), cfg.ServiceConfig(), logger)
	defer func() {
		if err := coord.Close(); err != nil {
			logger.Warn("backend_close_failed", zap.Error(err))
		}
	}()

	sh := newShell(coord, shelfpresenter.NewFormatter(cat), os.Stdout, logger)
	if _, err := coord.SwitchBackend(ctx, cfg.Backend); err != nil {
		// keep running; the user can pick another backend with "source"
		logger.Error("initial_backend_failed", zap.String("kind", string(cfg.Backend)), zap.Error(err))
		sh.printError(err)
	} else if cfg.RefreshStatusOnStart {
		refreshOnStart(ctx, coord, logger)
	}

	if args := os.Args[1:]; len(args) > 0 {
		sh.exec(ctx, strings.Join(args, " "))
		return
	}
	sh.run(ctx, os.Stdin)
}

func refreshOnStart(ctx context.Context, coord *source.Coordinator, logger *zap.Logger) {
	svc, err := coord.Service()
	if err != nil {
		return
	}
	if _, err := svc.UpdateAllGamesStatus(ctx); err != nil {
		logger.Warn("startup_refresh_failed", zap.Error(err))
	}
}
