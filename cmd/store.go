package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/playbook-cli/internal/resilience"
	"github.com/sells-group/playbook-cli/internal/store"
)

// initStore opens the configured cache backend, applies its migration and
// wraps it with the configured retry policy.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "playbook-cache.db"
		}
		st, err = store.NewSQLite(dsn)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return store.WithRetry(st, resilience.FromSettings(cfg.Store.RetryAttempts, cfg.Store.RetryBackoffMs)), nil
}
