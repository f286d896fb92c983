package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

// PostgresStore persists user records as JSONB rows, one per user.
// Selected when DATABASE_URL is set; the schema is created on startup.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS eco_rewards (
			user_id    TEXT PRIMARY KEY,
			record     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create eco_rewards table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Load returns the entire user table.
func (s *PostgresStore) Load(ctx context.Context) (map[string]*models.UserRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id, record FROM eco_rewards`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user records: %w", err)
	}
	defer rows.Close()

	now := time.Now().UTC()
	users := map[string]*models.UserRecord{}
	for rows.Next() {
		var userID string
		var blob []byte
		if err := rows.Scan(&userID, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan user record: %w", err)
		}
		users[userID] = decodeRecord(blob, now)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user records: %w", err)
	}
	return users, nil
}

// GetUser returns one user's record, or ErrNotFound.
func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM eco_rewards WHERE user_id = $1`, userID,
	).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user record: %w", err)
	}
	return decodeRecord(blob, time.Now().UTC()), nil
}

// SaveUser upserts one user's record.
func (s *PostgresStore) SaveUser(ctx context.Context, userID string, rec *models.UserRecord) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO eco_rewards (user_id, record, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET record = EXCLUDED.record, updated_at = NOW()
	`, userID, blob)
	if err != nil {
		return fmt.Errorf("failed to save user record: %w", err)
	}
	return nil
}

// Update applies fn to the user's record (fresh when absent) and
// persists the result inside one transaction. The row is locked with
// SELECT ... FOR UPDATE, so concurrent updates to the same user are
// serialized by the database; the row is seeded first so the lock also
// covers two first-time writers racing on the same user.
func (s *PostgresStore) Update(ctx context.Context, userID string, fn func(rec *models.UserRecord) error) error {
	now := time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	seed, err := json.Marshal(models.NewUserRecord(now))
	if err != nil {
		return fmt.Errorf("failed to encode seed record: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO eco_rewards (user_id, record, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID, seed)
	if err != nil {
		return fmt.Errorf("failed to seed user record: %w", err)
	}

	var blob []byte
	err = tx.QueryRow(ctx,
		`SELECT record FROM eco_rewards WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&blob)
	if err != nil {
		return fmt.Errorf("failed to lock user record: %w", err)
	}

	rec := decodeRecord(blob, now)
	if err := fn(rec); err != nil {
		return err
	}

	out, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE eco_rewards SET record = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, out,
	)
	if err != nil {
		return fmt.Errorf("failed to save user record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// decodeRecord applies the same defensive normalization as the file
// store; an undecodable row degrades to a fresh record.
func decodeRecord(blob []byte, now time.Time) *models.UserRecord {
	var rec models.UserRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return models.NewUserRecord(now)
	}
	return normalizeRecord(&rec, now)
}
