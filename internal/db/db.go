// Package db provides catalog sources backed by PostgreSQL and SQLite.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/question-matcher/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the leetcode_questions table and indexes if missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	migrations, err := loadMigrations("postgres")
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.version, err)
		}
	}
	return nil
}

// LoadCatalog reads every problem. The problem number shown to users
// (frontend_id) is the catalog ID when present.
func (db *DB) LoadCatalog(ctx context.Context) ([]types.CatalogEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(frontend_id, leetcode_id), title, title_slug, difficulty, difficulty_numeric,
		        COALESCE(category, ''), COALESCE(topic_tags, '[]'::jsonb), COALESCE(url, '')
		 FROM leetcode_questions
		 ORDER BY 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var scanned []catalogRow
	for rows.Next() {
		var r catalogRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Slug, &r.Difficulty, &r.DifficultyNumeric, &r.Category, &r.TopicTags, &r.URL); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		scanned = append(scanned, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return rowsToEntries(scanned)
}

// UpsertEntries inserts or updates entries keyed by slug in one batch.
func (db *DB) UpsertEntries(ctx context.Context, entries []types.CatalogEntry) error {
	batch := &pgx.Batch{}
	for i := range entries {
		e := &entries[i]
		batch.Queue(
			`INSERT INTO leetcode_questions
			 (leetcode_id, frontend_id, title, title_slug, difficulty, difficulty_numeric, category, topic_tags, url, updated_at)
			 VALUES ($1, $1, $2, $3, $4, $5, $6, $7::jsonb, $8, NOW())
			 ON CONFLICT (title_slug) DO UPDATE SET
			   title = EXCLUDED.title,
			   difficulty = EXCLUDED.difficulty,
			   difficulty_numeric = EXCLUDED.difficulty_numeric,
			   category = EXCLUDED.category,
			   topic_tags = EXCLUDED.topic_tags,
			   url = EXCLUDED.url,
			   updated_at = NOW()`,
			e.ID, e.Title, e.Slug, string(e.Difficulty), e.DifficultyNumeric, e.Category, topicTagsJSON(e.Topics), e.URL,
		)
	}

	br := db.pool.SendBatch(ctx, batch)
	for i := range entries {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to upsert problem %d: %w", entries[i].ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to upsert catalog: %w", err)
	}
	return nil
}

// DifficultyCounts returns totals per difficulty computed by the database.
func (db *DB) DifficultyCounts(ctx context.Context) (types.CatalogStats, error) {
	var stats types.CatalogStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE LOWER(difficulty) = 'easy'),
		        COUNT(*) FILTER (WHERE LOWER(difficulty) = 'medium'),
		        COUNT(*) FILTER (WHERE LOWER(difficulty) = 'hard')
		 FROM leetcode_questions`,
	).Scan(&stats.Total, &stats.Easy, &stats.Medium, &stats.Hard)
	if err != nil {
		return types.CatalogStats{}, fmt.Errorf("failed to count problems: %w", err)
	}
	return stats, nil
}
