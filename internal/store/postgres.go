package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-studio/internal/types"
)

// PostgresStore persists the collection as a single jsonb row. It keeps the
// same whole-collection read-modify-write contract as the file backend so
// the pipeline's concurrency assumptions hold regardless of backend.
type PostgresStore struct {
	pool  *pgxpool.Pool
	owner string
}

// ConnectPostgres establishes a connection pool and ensures the collection
// table exists. owner partitions collections per account.
func ConnectPostgres(ctx context.Context, databaseURL, owner string) (*PostgresStore, error) {
	if owner == "" {
		owner = "default"
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS resume_collections (
			owner      TEXT PRIMARY KEY,
			documents  JSONB NOT NULL DEFAULT '[]'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure collection table: %w", err)
	}

	return &PostgresStore{pool: pool, owner: owner}, nil
}

// Close closes the connection pool.
func (ps *PostgresStore) Close() {
	if ps.pool != nil {
		ps.pool.Close()
	}
}

// LoadAll returns the owner's full collection. A missing row loads as an
// empty collection.
func (ps *PostgresStore) LoadAll(ctx context.Context) ([]types.ResumeDocument, error) {
	var raw []byte
	err := ps.pool.QueryRow(ctx,
		`SELECT documents FROM resume_collections WHERE owner = $1`, ps.owner,
	).Scan(&raw)
	if err == pgx.ErrNoRows {
		return []types.ResumeDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	var docs []types.ResumeDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse collection: %w", err)
	}
	return docs, nil
}

// SaveAll replaces the owner's full collection.
func (ps *PostgresStore) SaveAll(ctx context.Context, docs []types.ResumeDocument) error {
	if docs == nil {
		docs = []types.ResumeDocument{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	_, err = ps.pool.Exec(ctx,
		`INSERT INTO resume_collections (owner, documents, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (owner) DO UPDATE SET documents = $2, updated_at = NOW()`,
		ps.owner, raw)
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}
