package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/question-matcher/internal/types"
)

// SQLite is a catalog stored in a local SQLite file.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLite{db: db, path: path}
	if err := store.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) applyMigrations(ctx context.Context) error {
	migrations, err := loadMigrations("sqlite")
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version).Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// LoadCatalog reads every problem ordered by ID.
func (s *SQLite) LoadCatalog(ctx context.Context) ([]types.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, title_slug, difficulty, difficulty_numeric, category, topic_tags, url
		 FROM leetcode_questions
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var scanned []catalogRow
	for rows.Next() {
		var r catalogRow
		var tags string
		if err := rows.Scan(&r.ID, &r.Title, &r.Slug, &r.Difficulty, &r.DifficultyNumeric, &r.Category, &tags, &r.URL); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		r.TopicTags = []byte(tags)
		scanned = append(scanned, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return rowsToEntries(scanned)
}

// UpsertEntries inserts or replaces entries in a single transaction.
func (s *SQLite) UpsertEntries(ctx context.Context, entries []types.CatalogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leetcode_questions
		 (id, title, title_slug, difficulty, difficulty_numeric, category, topic_tags, url, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   title_slug = excluded.title_slug,
		   difficulty = excluded.difficulty,
		   difficulty_numeric = excluded.difficulty_numeric,
		   category = excluded.category,
		   topic_tags = excluded.topic_tags,
		   url = excluded.url,
		   updated_at = excluded.updated_at`,
	)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i := range entries {
		e := &entries[i]
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Title, e.Slug, string(e.Difficulty), e.DifficultyNumeric,
			e.Category, topicTagsJSON(e.Topics), e.URL, now,
		); err != nil {
			return fmt.Errorf("upsert problem %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// DifficultyCounts returns totals per difficulty.
func (s *SQLite) DifficultyCounts(ctx context.Context) (types.CatalogStats, error) {
	var stats types.CatalogStats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN LOWER(difficulty) = 'easy' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN LOWER(difficulty) = 'medium' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN LOWER(difficulty) = 'hard' THEN 1 ELSE 0 END), 0)
		 FROM leetcode_questions`,
	).Scan(&stats.Total, &stats.Easy, &stats.Medium, &stats.Hard)
	if err != nil {
		return types.CatalogStats{}, fmt.Errorf("count problems: %w", err)
	}
	return stats, nil
}
