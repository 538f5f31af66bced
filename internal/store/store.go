package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inudochi/gameshelf/internal/domain"
)

var (
	ErrNotFound       = errors.New("game not found")
	ErrPersistence    = errors.New("persistence failure")
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrUnwritable marks a record the store refuses to persist because it
	// could not be read back.
	ErrUnwritable = errors.New("record cannot be stored")
)

// Kind selects a storage backend.
type Kind string

const (
	KindFile   Kind = "json"
	KindSQL    Kind = "sql"
	KindRedis  Kind = "redis"
	KindMemory Kind = "memory"
)

// ParseKind maps user-facing backend names onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "file":
		return KindFile, nil
	case "sql", "relational", "postgres", "postgresql", "sqlite":
		return KindSQL, nil
	case "redis":
		return KindRedis, nil
	case "memory", "mem":
		return KindMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Store persists the game collection. Implementations own id assignment and
// the authoritative copy; every returned Game is a copy.
type Store interface {
	GetAll(ctx context.Context) ([]domain.Game, error)
	Add(ctx context.Context, game domain.Game) (domain.Game, error)
	Update(ctx context.Context, game domain.Game) error
	Delete(ctx context.Context, id int64) error
	// FindByID returns nil, nil when no record has the id.
	FindByID(ctx context.Context, id int64) (*domain.Game, error)
	Close() error
}

// StatusCounter is implemented by stores that can count statuses without
// loading every record.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

// PersistenceError reports a failure of the underlying medium.
type PersistenceError struct {
	Backend Kind
	Op      string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s store: %s failed", e.Backend, e.Op)
	}
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func persistErr(kind Kind, op string, err error) error {
	return &PersistenceError{Backend: kind, Op: op, Err: err}
}

// checkWritable rejects records whose status the decoders would refuse, so a
// bad write never makes the collection unreadable.
func checkWritable(kind Kind, op string, g domain.Game) error {
	if !g.Status.Valid() {
		return persistErr(kind, op, fmt.Errorf("%w: game %d: unknown status %q", ErrUnwritable, g.ID, g.Status))
	}
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}
