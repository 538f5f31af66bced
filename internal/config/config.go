package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/internal/store"
)

type AppConfig struct {
	Backend store.Kind

	FilePath string

	DatabaseDriver string
	DatabaseURL    string
	DBAutoCreate   bool
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisURL       string
	RedisKeyPrefix string

	ConnectTimeoutSec int

	StaleAfterDays        int
	InactiveAfterMonths   int
	RecomputeStatusOnPlay bool
	RefreshStatusOnStart  bool

	MessagesDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Backend:              store.KindFile,
		FilePath:             "data/games.json",
		DatabaseDriver:       store.DriverPostgres,
		DBAutoCreate:         true,
		DBMaxOpenConns:       16,
		DBMaxIdleConns:       8,
		RedisKeyPrefix:       "gameshelf",
		ConnectTimeoutSec:    5,
		StaleAfterDays:       14,
		InactiveAfterMonths:  3,
		RefreshStatusOnStart: true,
	}

	if v := strings.TrimSpace(os.Getenv("GAMESHELF_BACKEND")); v != "" {
		kind, err := store.ParseKind(v)
		if err != nil {
			return nil, fmt.Errorf("GAMESHELF_BACKEND: %w", err)
		}
		cfg.Backend = kind
	}
	if v := strings.TrimSpace(os.Getenv("GAMESHELF_FILE")); v != "" {
		cfg.FilePath = v
	}

	if v := strings.TrimSpace(os.Getenv("DATABASE_DRIVER")); v != "" {
		cfg.DatabaseDriver = strings.ToLower(v)
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DBAutoCreate = envBool("DB_AUTO_CREATE", cfg.DBAutoCreate)
	cfg.DBMaxOpenConns = envPositiveInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = envPositiveInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	if v := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX")); v != "" {
		cfg.RedisKeyPrefix = v
	}

	cfg.ConnectTimeoutSec = envPositiveInt("CONNECT_TIMEOUT_SEC", cfg.ConnectTimeoutSec)
	cfg.StaleAfterDays = envPositiveInt("STALE_AFTER_DAYS", cfg.StaleAfterDays)
	cfg.InactiveAfterMonths = envPositiveInt("INACTIVE_AFTER_MONTHS", cfg.InactiveAfterMonths)
	cfg.RecomputeStatusOnPlay = envBool("RECOMPUTE_STATUS_ON_PLAY", cfg.RecomputeStatusOnPlay)
	cfg.RefreshStatusOnStart = envBool("REFRESH_STATUS_ON_START", cfg.RefreshStatusOnStart)

	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	switch cfg.Backend {
	case store.KindSQL:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the sql backend")
		}
	case store.KindRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required for the redis backend")
		}
	}

	return cfg, nil
}

// StoreOptions maps the configuration onto factory parameters.
func (c *AppConfig) StoreOptions() store.Options {
	timeout := time.Duration(c.ConnectTimeoutSec) * time.Second
	return store.Options{
		FilePath: c.FilePath,
		SQL: store.SQLOptions{
			Driver:         c.DatabaseDriver,
			DSN:            c.DatabaseURL,
			AutoCreate:     c.DBAutoCreate,
			MaxOpenConns:   c.DBMaxOpenConns,
			MaxIdleConns:   c.DBMaxIdleConns,
			ConnectTimeout: timeout,
		},
		RedisURL:       c.RedisURL,
		RedisKeyPrefix: c.RedisKeyPrefix,
		ConnectTimeout: timeout,
	}
}

func (c *AppConfig) ServiceConfig() collection.Config {
	return collection.Config{
		StaleAfter:            time.Duration(c.StaleAfterDays) * 24 * time.Hour,
		InactiveAfterMonths:   c.InactiveAfterMonths,
		RecomputeStatusOnPlay: c.RecomputeStatusOnPlay,
	}
}

func envBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envPositiveInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
