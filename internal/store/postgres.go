package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGBackend keeps each store as one row of the record_stores table.
type PGBackend struct {
	db *pgxpool.Pool
}

func NewPGBackend(db *pgxpool.Pool) *PGBackend {
	return &PGBackend{db: db}
}

func (b *PGBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS record_stores (
		name TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func (b *PGBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := b.db.QueryRow(ctx, `SELECT payload::text FROM record_stores WHERE name=$1`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (b *PGBackend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.db.Exec(ctx, `INSERT INTO record_stores (name, payload, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`, name, string(data))
	return err
}

var _ Backend = (*PGBackend)(nil)
