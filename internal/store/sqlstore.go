package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inudochi/gameshelf/internal/domain"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const gameColumns = `id, title, genre, min_players, max_players, status, last_played`

var schema = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS games (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			genre TEXT NOT NULL,
			min_players INTEGER NOT NULL,
			max_players INTEGER NOT NULL,
			status TEXT NOT NULL,
			last_played TIMESTAMPTZ NULL
		)`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			genre TEXT NOT NULL,
			min_players INTEGER NOT NULL,
			max_players INTEGER NOT NULL,
			status TEXT NOT NULL,
			last_played DATETIME NULL
		)`,
}

// SQLOptions configures the relational backend.
type SQLOptions struct {
	Driver         string
	DSN            string
	AutoCreate     bool
	MaxOpenConns   int
	MaxIdleConns   int
	ConnectTimeout time.Duration
}

// SQLStore keeps games in a single table. Statements are written with `?`
// placeholders and rebound for drivers that number them.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore opens and pings the database described by opts.
func NewSQLStore(ctx context.Context, opts SQLOptions) (*SQLStore, error) {
	driver := normalizeDriver(opts.Driver)
	if _, ok := schema[driver]; !ok {
		return nil, persistErr(KindSQL, "open", fmt.Errorf("unsupported database driver %q", opts.Driver))
	}
	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" {
		return nil, persistErr(KindSQL, "open", errors.New("DATABASE_URL is required"))
	}
	if driver == DriverSQLite && strings.HasPrefix(dsn, "sqlite:///") {
		dsn = "file:" + strings.TrimPrefix(dsn, "sqlite:///")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, persistErr(KindSQL, "open", err)
	}
	maxOpen, maxIdle := opts.MaxOpenConns, opts.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 16
	}
	if maxIdle <= 0 {
		maxIdle = 8
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, persistErr(KindSQL, "ping", err)
	}

	s := &SQLStore{db: db, driver: driver}
	if opts.AutoCreate {
		if _, err := db.ExecContext(pctx, schema[driver]); err != nil {
			_ = db.Close()
			return nil, persistErr(KindSQL, "create table", err)
		}
	}
	return s, nil
}

func normalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "", "postgres", "postgresql", "pq":
		return DriverPostgres
	case "sqlite", "sqlite3":
		return DriverSQLite
	default:
		return strings.ToLower(strings.TrimSpace(d))
	}
}

// Driver reports the database/sql driver in use.
func (s *SQLStore) Driver() string { return s.driver }

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rebind turns `?` placeholders into `$1..$n` for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) GetAll(ctx context.Context) ([]domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, persistErr(KindSQL, "select games", err)
	}
	defer rows.Close()

	games := make([]domain.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, persistErr(KindSQL, "scan game", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(KindSQL, "select games", err)
	}
	return games, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	query := s.rebind(`SELECT ` + gameColumns + ` FROM games WHERE id = ?`)
	g, err := scanGame(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr(KindSQL, "select game", err)
	}
	return &g, nil
}

func (s *SQLStore) Add(ctx context.Context, game domain.Game) (domain.Game, error) {
	stored := game.Clone().WithDefaults()
	if err := checkWritable(KindSQL, "insert game", stored); err != nil {
		return domain.Game{}, err
	}
	query := s.rebind(`
		INSERT INTO games (title, genre, min_players, max_players, status, last_played)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		stored.Title,
		stored.Genre,
		stored.MinPlayers,
		stored.MaxPlayers,
		string(stored.Status),
		nullTime(stored.LastPlayed),
	).Scan(&id)
	if err != nil {
		return domain.Game{}, persistErr(KindSQL, "insert game", err)
	}
	stored.ID = id
	return stored, nil
}

func (s *SQLStore) Update(ctx context.Context, game domain.Game) error {
	if err := checkWritable(KindSQL, "update game", game); err != nil {
		return err
	}
	query := s.rebind(`
		UPDATE games
		SET title = ?, genre = ?, min_players = ?, max_players = ?, status = ?, last_played = ?
		WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		game.Title,
		game.Genre,
		game.MinPlayers,
		game.MaxPlayers,
		string(game.Status),
		nullTime(game.LastPlayed),
		game.ID,
	)
	if err != nil {
		return persistErr(KindSQL, "update game", err)
	}
	return affectedOne(res, game.ID, "update game")
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM games WHERE id = ?`), id)
	if err != nil {
		return persistErr(KindSQL, "delete game", err)
	}
	return affectedOne(res, id, "delete game")
}

func (s *SQLStore) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM games GROUP BY status`)
	if err != nil {
		return nil, persistErr(KindSQL, "count games", err)
	}
	defer rows.Close()

	out := make(map[domain.Status]int, 2)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, persistErr(KindSQL, "count games", err)
		}
		st, ok := domain.ParseStatus(status)
		if !ok {
			return nil, persistErr(KindSQL, "count games", fmt.Errorf("unknown status %q", status))
		}
		out[st] += n
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr(KindSQL, "count games", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (domain.Game, error) {
	var (
		g          domain.Game
		status     string
		lastPlayed sql.NullTime
	)
	if err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Genre,
		&g.MinPlayers,
		&g.MaxPlayers,
		&status,
		&lastPlayed,
	); err != nil {
		return domain.Game{}, err
	}
	st, ok := domain.ParseStatus(status)
	if !ok {
		return domain.Game{}, fmt.Errorf("game %d: unknown status %q", g.ID, status)
	}
	g.Status = st
	if lastPlayed.Valid {
		t := lastPlayed.Time
		g.LastPlayed = &t
	}
	return g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func affectedOne(res sql.Result, id int64, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return persistErr(KindSQL, op, err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}
