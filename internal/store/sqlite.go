package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/playbook-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, nowFunc: time.Now}, nil
}

// saved_at is unix milliseconds.
const sqliteMigration = `
CREATE TABLE IF NOT EXISTS playbook_cache (
	cache_key TEXT PRIMARY KEY,
	id        TEXT NOT NULL,
	playbook  TEXT NOT NULL,
	saved_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_playbook_cache_saved_at ON playbook_cache(saved_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveLast(ctx context.Context, pb model.CSPlaybook) (*CachedPlaybook, error) {
	data, err := marshalPlaybook(pb)
	if err != nil {
		return nil, err
	}

	entry := &CachedPlaybook{
		ID:       uuid.New().String(),
		Key:      LastPlaybookKey,
		Playbook: pb,
		SavedAt:  s.nowFunc().UTC().Truncate(time.Millisecond),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO playbook_cache (cache_key, id, playbook, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (cache_key) DO UPDATE SET id = excluded.id, playbook = excluded.playbook, saved_at = excluded.saved_at`,
		entry.Key, entry.ID, string(data), entry.SavedAt.UnixMilli(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: save last playbook")
	}
	return entry, nil
}

func (s *SQLiteStore) LoadLast(ctx context.Context, ttl time.Duration) (*CachedPlaybook, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, playbook, saved_at FROM playbook_cache WHERE cache_key = ?`,
		LastPlaybookKey,
	)

	var (
		entry   = CachedPlaybook{Key: LastPlaybookKey}
		data    string
		savedMs int64
	)
	err := row.Scan(&entry.ID, &data, &savedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPlaybook
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load last playbook")
	}

	entry.SavedAt = time.UnixMilli(savedMs).UTC()
	if !entry.Fresh(s.nowFunc(), ttl) {
		return nil, ErrNoPlaybook
	}
	if entry.Playbook, err = unmarshalPlaybook([]byte(data)); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *SQLiteStore) Prune(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.nowFunc().Add(-ttl).UnixMilli()
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM playbook_cache WHERE saved_at <= ?`,
		cutoff,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prune playbook cache")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}
