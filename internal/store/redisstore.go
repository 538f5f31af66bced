package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/inudochi/gameshelf/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps games as JSON values in one hash, keyed by id.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore connects to url (redis://...) and pings within timeout.
func NewRedisStore(ctx context.Context, url, prefix string, timeout time.Duration) (*RedisStore, error) {
	if strings.TrimSpace(url) == "" {
		return nil, persistErr(KindRedis, "open", errors.New("REDIS_URL is required"))
	}
	opt, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, persistErr(KindRedis, "open", err)
	}
	rdb := redis.NewClient(opt)
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, persistErr(KindRedis, "ping", err)
	}
	return NewRedisStoreFromClient(rdb, prefix), nil
}

// NewRedisStoreFromClient wraps an existing client; Close closes it.
func NewRedisStoreFromClient(rdb *redis.Client, prefix string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "gameshelf"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) keyGames() string { return s.prefix + ":games" }
func (s *RedisStore) keySeq() string   { return s.keyGames() + ":seq" }

func (s *RedisStore) GetAll(ctx context.Context) ([]domain.Game, error) {
	raw, err := s.rdb.HGetAll(ctx, s.keyGames()).Result()
	if err != nil {
		return nil, persistErr(KindRedis, "load games", err)
	}
	games := make([]domain.Game, 0, len(raw))
	for field, v := range raw {
		g, err := decodeGame([]byte(v))
		if err != nil {
			return nil, persistErr(KindRedis, "decode game "+field, err)
		}
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	raw, err := s.rdb.HGet(ctx, s.keyGames(), idField(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr(KindRedis, "load game", err)
	}
	g, err := decodeGame(raw)
	if err != nil {
		return nil, persistErr(KindRedis, "decode game", err)
	}
	return &g, nil
}

func (s *RedisStore) Add(ctx context.Context, game domain.Game) (domain.Game, error) {
	stored := game.Clone().WithDefaults()
	if err := checkWritable(KindRedis, "add game", stored); err != nil {
		return domain.Game{}, err
	}
	id, err := s.rdb.Incr(ctx, s.keySeq()).Result()
	if err != nil {
		return domain.Game{}, persistErr(KindRedis, "allocate id", err)
	}
	stored.ID = id
	if err := s.put(ctx, stored); err != nil {
		return domain.Game{}, err
	}
	return stored, nil
}

func (s *RedisStore) Update(ctx context.Context, game domain.Game) error {
	if err := checkWritable(KindRedis, "update game", game); err != nil {
		return err
	}
	ok, err := s.rdb.HExists(ctx, s.keyGames(), idField(game.ID)).Result()
	if err != nil {
		return persistErr(KindRedis, "update game", err)
	}
	if !ok {
		return notFound(game.ID)
	}
	return s.put(ctx, game)
}

func (s *RedisStore) Delete(ctx context.Context, id int64) error {
	n, err := s.rdb.HDel(ctx, s.keyGames(), idField(id)).Result()
	if err != nil {
		return persistErr(KindRedis, "delete game", err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *RedisStore) put(ctx context.Context, g domain.Game) error {
	raw, err := encodeGame(g)
	if err != nil {
		return persistErr(KindRedis, "encode game", err)
	}
	if err := s.rdb.HSet(ctx, s.keyGames(), idField(g.ID), raw).Err(); err != nil {
		return persistErr(KindRedis, "store game", err)
	}
	return nil
}

func idField(id int64) string { return strconv.FormatInt(id, 10) }
