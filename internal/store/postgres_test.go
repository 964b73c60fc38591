package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := newPostgresStore(mock)
	s.nowFunc = func() time.Time { return baseTime }
	return s, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS playbook_cache`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveLast(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO playbook_cache .* ON CONFLICT \(cache_key\) DO UPDATE`).
		WithArgs(LastPlaybookKey, pgxmock.AnyArg(), pgxmock.AnyArg(), baseTime).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry, err := s.SaveLast(context.Background(), testPlaybook("Acme"))
	require.NoError(t, err)
	assert.Equal(t, baseTime, entry.SavedAt)
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadLast(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	pb := testPlaybook("Acme")
	data, err := json.Marshal(pb)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, playbook, saved_at FROM playbook_cache WHERE cache_key = \$1`).
		WithArgs(LastPlaybookKey).
		WillReturnRows(pgxmock.NewRows([]string{"id", "playbook", "saved_at"}).
			AddRow("entry-1", data, baseTime.Add(-time.Hour)))

	got, err := s.LoadLast(context.Background(), DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, "entry-1", got.ID)
	assert.Equal(t, pb, got.Playbook)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadLast_Stale(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, playbook, saved_at FROM playbook_cache`).
		WithArgs(LastPlaybookKey).
		WillReturnRows(pgxmock.NewRows([]string{"id", "playbook", "saved_at"}).
			AddRow("entry-1", []byte(`{}`), baseTime.Add(-25*time.Hour)))

	_, err := s.LoadLast(context.Background(), DefaultTTL)
	assert.True(t, eris.Is(err, ErrNoPlaybook))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadLast_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, playbook, saved_at FROM playbook_cache`).
		WithArgs(LastPlaybookKey).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.LoadLast(context.Background(), DefaultTTL)
	assert.True(t, eris.Is(err, ErrNoPlaybook))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadLast_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, playbook, saved_at FROM playbook_cache`).
		WithArgs(LastPlaybookKey).
		WillReturnError(eris.New("connection reset"))

	_, err := s.LoadLast(context.Background(), DefaultTTL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load last playbook")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Prune(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM playbook_cache WHERE saved_at <= \$1`).
		WithArgs(baseTime.Add(-DefaultTTL)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	n, err := s.Prune(context.Background(), DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Close(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	mock.ExpectClose()

	s := newPostgresStore(mock)
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
