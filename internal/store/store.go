// Package store caches the most recently generated playbook.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/playbook-cli/internal/model"
)

// LastPlaybookKey is the fixed key the last playbook is cached under.
const LastPlaybookKey = "lastPlaybook"

// DefaultTTL is how long a cached playbook stays fresh.
const DefaultTTL = 24 * time.Hour

// ErrNoPlaybook is returned by LoadLast when nothing fresh is cached.
var ErrNoPlaybook = eris.New("store: no cached playbook")

// CachedPlaybook is a cached playbook and the time it was saved.
type CachedPlaybook struct {
	ID       string           `json:"id"`
	Key      string           `json:"key"`
	Playbook model.CSPlaybook `json:"playbook"`
	SavedAt  time.Time        `json:"savedAt"`
}

// Fresh reports whether the entry is younger than ttl at now.
func (c CachedPlaybook) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.SavedAt) < ttl
}

// Store persists the last generated playbook. Writes are last-write-wins.
type Store interface {
	SaveLast(ctx context.Context, pb model.CSPlaybook) (*CachedPlaybook, error)
	LoadLast(ctx context.Context, ttl time.Duration) (*CachedPlaybook, error)
	Prune(ctx context.Context, ttl time.Duration) (int, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

func marshalPlaybook(pb model.CSPlaybook) ([]byte, error) {
	data, err := json.Marshal(pb)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal playbook")
	}
	return data, nil
}

func unmarshalPlaybook(data []byte) (model.CSPlaybook, error) {
	var pb model.CSPlaybook
	if err := json.Unmarshal(data, &pb); err != nil {
		return pb, eris.Wrap(err, "store: unmarshal playbook")
	}
	return pb, nil
}
