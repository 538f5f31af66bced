package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/inudochi/gameshelf/internal/domain"
)

// FileStore keeps the whole collection as a JSON array in one file. Each
// mutation rewrites a complete snapshot through a temp file and a rename.
type FileStore struct {
	mu     sync.Mutex
	path   string
	rename func(oldpath, newpath string) error
}

// NewFileStore reads path once so unreadable or malformed files fail early.
// A missing file is an empty collection.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, persistErr(KindFile, "open", errors.New("file path is required"))
	}
	s := &FileStore{path: path, rename: os.Rename}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the snapshot location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) GetAll(ctx context.Context) ([]domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	games, err := s.load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(games, id); i >= 0 {
		g := games[i]
		return &g, nil
	}
	return nil, nil
}

func (s *FileStore) Add(ctx context.Context, game domain.Game) (domain.Game, error) {
	stored := game.Clone().WithDefaults()
	if err := checkWritable(KindFile, "add", stored); err != nil {
		return domain.Game{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	games, err := s.load()
	if err != nil {
		return domain.Game{}, err
	}
	stored.ID = nextID(games)
	games = append(games, stored)
	if err := s.write(games); err != nil {
		return domain.Game{}, err
	}
	return stored.Clone(), nil
}

func (s *FileStore) Update(ctx context.Context, game domain.Game) error {
	if err := checkWritable(KindFile, "update", game); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	games, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(games, game.ID)
	if i < 0 {
		return notFound(game.ID)
	}
	games[i] = game.Clone()
	return s.write(games)
}

func (s *FileStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	games, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(games, id)
	if i < 0 {
		return notFound(id)
	}
	games = append(games[:i], games[i+1:]...)
	return s.write(games)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() ([]domain.Game, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Game{}, nil
	}
	if err != nil {
		return nil, persistErr(KindFile, "read", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Game{}, nil
	}
	games, err := decodeCollection(raw)
	if err != nil {
		return nil, persistErr(KindFile, "read", err)
	}
	return games, nil
}

// write replaces the snapshot atomically: the target is only touched by the
// final rename.
func (s *FileStore) write(games []domain.Game) (err error) {
	raw, err := encodeCollection(games)
	if err != nil {
		return persistErr(KindFile, "encode", err)
	}
	dir := filepath.Dir(s.path)
	if err := ensureDir(dir); err != nil {
		return persistErr(KindFile, "write", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(s.path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return persistErr(KindFile, "write", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(raw); err != nil {
		return persistErr(KindFile, "write", err)
	}
	if err = f.Sync(); err != nil {
		return persistErr(KindFile, "sync", err)
	}
	if err = f.Close(); err != nil {
		return persistErr(KindFile, "close", err)
	}
	if err = s.rename(tmp, s.path); err != nil {
		return persistErr(KindFile, "rename", err)
	}
	return nil
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func indexOf(games []domain.Game, id int64) int {
	for i := range games {
		if games[i].ID == id {
			return i
		}
	}
	return -1
}

func nextID(games []domain.Game) int64 {
	var top int64
	for _, g := range games {
		if g.ID > top {
			top = g.ID
		}
	}
	return top + 1
}
