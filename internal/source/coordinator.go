package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/inudochi/gameshelf/internal/service/collection"
	"github.com/inudochi/gameshelf/internal/store"
	"go.uber.org/zap"
)

var ErrNoActiveBackend = errors.New("no active storage backend")

// Pair is the active backend. It is never mutated after publication.
type Pair struct {
	Kind    store.Kind
	Store   store.Store
	Service *collection.Service
}

// Coordinator owns the active store/service pair and swaps it on request.
type Coordinator struct {
	opts    store.Options
	svcCfg  collection.Config
	svcOpts []collection.Option
	logger  *zap.Logger

	switchMu sync.Mutex
	active   atomic.Pointer[Pair]
}

// New returns a Coordinator with no active backend.
func New(opts store.Options, svcCfg collection.Config, logger *zap.Logger, svcOpts ...collection.Option) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		opts:    opts,
		svcCfg:  svcCfg,
		svcOpts: svcOpts,
		logger:  logger,
	}
}

// SwitchBackend builds a new store and service for kind and makes them
// active. On failure the previous pair stays in place.
func (c *Coordinator) SwitchBackend(ctx context.Context, kind store.Kind) (*Pair, error) {
	c.switchMu.Lock()
	defer c.switchMu.Unlock()

	st, err := store.New(ctx, kind, c.opts)
	if err != nil {
		c.logger.Warn("backend_switch_failed", zap.String("kind", string(kind)), zap.Error(err))
		if !errors.Is(err, store.ErrPersistence) {
			err = &store.PersistenceError{Backend: kind, Op: "switch", Err: err}
		}
		return nil, err
	}
	svc, err := collection.NewService(st, c.svcCfg, c.logger.With(zap.String("backend", string(kind))), c.svcOpts...)
	if err != nil {
		_ = st.Close()
		return nil, &store.PersistenceError{Backend: kind, Op: "switch", Err: err}
	}

	next := &Pair{Kind: kind, Store: st, Service: svc}
	prev := c.active.Swap(next)
	if prev != nil {
		if err := prev.Store.Close(); err != nil {
			c.logger.Warn("backend_close_failed", zap.String("kind", string(prev.Kind)), zap.Error(err))
		}
	}
	c.logger.Info("backend_switched", zap.String("kind", string(kind)))
	return next, nil
}

// Active returns the current pair or nil.
func (c *Coordinator) Active() *Pair { return c.active.Load() }

func (c *Coordinator) Service() (*collection.Service, error) {
	p := c.active.Load()
	if p == nil {
		return nil, ErrNoActiveBackend
	}
	return p.Service, nil
}

// Label describes the active backend for display.
func (c *Coordinator) Label() string {
	p := c.active.Load()
	if p == nil {
		return "Source: none"
	}
	return fmt.Sprintf("Source: %s", p.Kind)
}

// Close releases the active store. The coordinator is unusable afterwards
// until the next SwitchBackend.
func (c *Coordinator) Close() error {
	c.switchMu.Lock()
	defer c.switchMu.Unlock()
	p := c.active.Swap(nil)
	if p == nil {
		return nil
	}
	return p.Store.Close()
}
