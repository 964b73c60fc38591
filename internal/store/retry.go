package store

import (
	"context"
	"time"

	"github.com/sells-group/playbook-cli/internal/model"
	"github.com/sells-group/playbook-cli/internal/resilience"
)

// retryingStore retries transient failures of the wrapped store.
type retryingStore struct {
	inner Store
	cfg   resilience.RetryConfig
}

// WithRetry wraps st so that SaveLast, LoadLast, Prune and Ping retry
// transient database errors. ErrNoPlaybook is never retried.
func WithRetry(st Store, cfg resilience.RetryConfig) Store {
	return &retryingStore{inner: st, cfg: cfg}
}

func (r *retryingStore) config(op string) resilience.RetryConfig {
	cfg := r.cfg
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(op)
	}
	return cfg
}

func (r *retryingStore) SaveLast(ctx context.Context, pb model.CSPlaybook) (*CachedPlaybook, error) {
	return resilience.DoVal(ctx, r.config("save_last"), func(ctx context.Context) (*CachedPlaybook, error) {
		return r.inner.SaveLast(ctx, pb)
	})
}

func (r *retryingStore) LoadLast(ctx context.Context, ttl time.Duration) (*CachedPlaybook, error) {
	return resilience.DoVal(ctx, r.config("load_last"), func(ctx context.Context) (*CachedPlaybook, error) {
		return r.inner.LoadLast(ctx, ttl)
	})
}

func (r *retryingStore) Prune(ctx context.Context, ttl time.Duration) (int, error) {
	return resilience.DoVal(ctx, r.config("prune"), func(ctx context.Context) (int, error) {
		return r.inner.Prune(ctx, ttl)
	})
}

func (r *retryingStore) Ping(ctx context.Context) error {
	return resilience.Do(ctx, r.config("ping"), r.inner.Ping)
}

func (r *retryingStore) Migrate(ctx context.Context) error {
	return r.inner.Migrate(ctx)
}

func (r *retryingStore) Close() error {
	return r.inner.Close()
}
