package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/playbook-cli/internal/db"
	"github.com/sells-group/playbook-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresStore(pool), nil
}

func newPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: pool.Close, nowFunc: time.Now}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS playbook_cache (
	cache_key TEXT PRIMARY KEY,
	id        TEXT NOT NULL,
	playbook  JSONB NOT NULL,
	saved_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_playbook_cache_saved_at ON playbook_cache(saved_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveLast(ctx context.Context, pb model.CSPlaybook) (*CachedPlaybook, error) {
	data, err := marshalPlaybook(pb)
	if err != nil {
		return nil, err
	}

	entry := &CachedPlaybook{
		ID:       uuid.New().String(),
		Key:      LastPlaybookKey,
		Playbook: pb,
		SavedAt:  s.nowFunc().UTC().Truncate(time.Microsecond),
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO playbook_cache (cache_key, id, playbook, saved_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (cache_key) DO UPDATE SET id = EXCLUDED.id, playbook = EXCLUDED.playbook, saved_at = EXCLUDED.saved_at`,
		entry.Key, entry.ID, data, entry.SavedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: save last playbook")
	}
	return entry, nil
}

func (s *PostgresStore) LoadLast(ctx context.Context, ttl time.Duration) (*CachedPlaybook, error) {
	entry := CachedPlaybook{Key: LastPlaybookKey}
	var data []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, playbook, saved_at FROM playbook_cache WHERE cache_key = $1`,
		LastPlaybookKey,
	).Scan(&entry.ID, &data, &entry.SavedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoPlaybook
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load last playbook")
	}

	if !entry.Fresh(s.nowFunc(), ttl) {
		return nil, ErrNoPlaybook
	}
	if entry.Playbook, err = unmarshalPlaybook(data); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *PostgresStore) Prune(ctx context.Context, ttl time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM playbook_cache WHERE saved_at <= $1`,
		s.nowFunc().Add(-ttl),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: prune playbook cache")
	}
	return int(tag.RowsAffected()), nil
}
