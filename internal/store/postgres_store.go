package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sessionkey/internal/domain"
)

const (
	createKVTableSQL = `
	CREATE TABLE IF NOT EXISTS session_kv (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

	selectKVSQL = `SELECT value FROM session_kv WHERE key = $1`

	upsertKVSQL = `
	INSERT INTO session_kv (key, value, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	insertKVSQL = `
	INSERT INTO session_kv (key, value, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (key) DO NOTHING`
)

// pgQuerier is the subset of *pgxpool.Pool the store uses.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps values in the session_kv table.
type PostgresStore struct {
	db pgQuerier
}

// NewPostgresStore connects to databaseURL and ensures the table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, unavailable(err, "postgres store: connect")
	}
	s := newPostgresStore(pool)
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return s, pool, nil
}

func newPostgresStore(db pgQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createKVTableSQL); err != nil {
		return unavailable(err, "postgres store: migrate")
	}
	return nil
}

// Get returns the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key domain.StoreKey) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(ctx, selectKVSQL, key.String()).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable(err, "postgres store: get "+key.String())
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *PostgresStore) Set(ctx context.Context, key domain.StoreKey, value []byte) error {
	if _, err := s.db.Exec(ctx, upsertKVSQL, key.String(), value); err != nil {
		return unavailable(err, "postgres store: set "+key.String())
	}
	return nil
}

// SetIfAbsent inserts value under key unless a row already exists, then reads
// back whichever row won.
func (s *PostgresStore) SetIfAbsent(ctx context.Context, key domain.StoreKey, value []byte) ([]byte, error) {
	tag, err := s.db.Exec(ctx, insertKVSQL, key.String(), value)
	if err != nil {
		return nil, unavailable(err, "postgres store: insert "+key.String())
	}
	if tag.RowsAffected() == 1 {
		return value, nil
	}
	stored, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, unavailable(pgx.ErrNoRows, "postgres store: reread "+key.String())
	}
	return stored, nil
}

// Compile-time assertion that PostgresStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*PostgresStore)(nil)
