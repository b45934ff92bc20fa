package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

// Postgres stores values in the kv_store table. A positive ttl sets
// expires_at on every write; expired rows read as missing.
type Postgres struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewPostgres(db *sql.DB, ttl time.Duration) *Postgres {
	return &Postgres{db: db, ttl: ttl, now: time.Now}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `
	SELECT value
	FROM kv_store
	WHERE key = $1
	  AND (expires_at IS NULL OR expires_at > now())
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("kv get failed",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	var expiresAt sql.NullTime
	if p.ttl > 0 {
		expiresAt = sql.NullTime{Time: p.now().Add(p.ttl), Valid: true}
	}

	_, err := p.db.ExecContext(ctx, `
	INSERT INTO kv_store (key, value, expires_at, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
	    expires_at = EXCLUDED.expires_at,
	    updated_at = now()
	`, key, value, expiresAt)
	if err != nil {
		logger.FromCtx(ctx).Error("kv set failed",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}
