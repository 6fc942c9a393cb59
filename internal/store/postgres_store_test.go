package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionkey/internal/domain"
)

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

type fakePG struct {
	rows    map[string][]byte
	execErr error
	execs   []string
}

func (f *fakePG) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if len(args) == 0 {
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
	key := args[0].(string)
	switch sql {
	case upsertKVSQL:
		f.rows[key] = args[1].([]byte)
	case insertKVSQL:
		if _, ok := f.rows[key]; ok {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		f.rows[key] = args[1].([]byte)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakePG) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	v, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func TestPostgresStore_GetSet(t *testing.T) {
	ctx := context.Background()
	db := &fakePG{rows: map[string][]byte{}}
	s := newPostgresStore(db)
	require.NoError(t, s.migrate(ctx))

	_, ok, err := s.Get(ctx, domain.SessionKeySlot)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, domain.SessionKeySlot, []byte{7}))
	got, ok, err := s.Get(ctx, domain.SessionKeySlot)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{7}, got)
	assert.Equal(t, []string{createKVTableSQL, upsertKVSQL}, db.execs)
}

func TestPostgresStore_SetIfAbsent_KeepsFirstRow(t *testing.T) {
	ctx := context.Background()
	db := &fakePG{rows: map[string][]byte{}}
	s := newPostgresStore(db)

	got, err := s.SetIfAbsent(ctx, domain.SessionKeySlot, []byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, got)

	got, err = s.SetIfAbsent(ctx, domain.SessionKeySlot, []byte{2})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, got)
	assert.Equal(t, []byte{1}, db.rows[domain.SessionKeySlot.String()])
	assert.Equal(t, []string{insertKVSQL, insertKVSQL}, db.execs)
}

func TestPostgresStore_DriverErrorIsStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	db := &fakePG{rows: map[string][]byte{}, execErr: errors.New("connection refused")}
	s := newPostgresStore(db)

	err := s.Set(ctx, domain.SessionKeySlot, []byte{1})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}
