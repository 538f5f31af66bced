package store

import (
	"context"
	"fmt"
	"time"
)

// Options carries every backend's externally supplied parameters; each
// backend reads only its own fields.
type Options struct {
	FilePath string

	SQL SQLOptions

	RedisURL       string
	RedisKeyPrefix string

	ConnectTimeout time.Duration
}

// New builds a fresh store for kind. It never caches instances.
func New(ctx context.Context, kind Kind, opts Options) (Store, error) {
	switch kind {
	case KindFile:
		s, err := NewFileStore(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindSQL:
		sqlOpts := opts.SQL
		if sqlOpts.ConnectTimeout <= 0 {
			sqlOpts.ConnectTimeout = opts.ConnectTimeout
		}
		s, err := NewSQLStore(ctx, sqlOpts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindRedis:
		s, err := NewRedisStore(ctx, opts.RedisURL, opts.RedisKeyPrefix, opts.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
