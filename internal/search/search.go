// Package search keeps a SQLite FTS5 index over project text.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"gallery3d/internal/content"
)

// MemoryDB keeps the index in memory for the life of the process.
const MemoryDB = ":memory:"

// DefaultLimit caps results when the caller passes limit <= 0.
const DefaultLimit = 20

// Config holds configuration for the index.
type Config struct {
	// DBPath is the SQLite database file, or MemoryDB.
	DBPath string
}

// Hit is one ranked match.
type Hit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Wall    int     `json:"wall"`
	Snippet string  `json:"snippet"`
	Rank    float64 `json:"rank"`
}

const schema = `
CREATE VIRTUAL TABLE IF NOT EXISTS projects_fts USING fts5(
    id UNINDEXED,
    wall UNINDEXED,
    title,
    description,
    body,
    tokenize='unicode61 remove_diacritics 2'
);
`

// Index is a full-text index of projects. Safe for concurrent use.
type Index struct {
	config Config
	db     *sql.DB
	mu     sync.RWMutex
}

// Open creates or opens the index at cfg.DBPath.
func Open(cfg Config) (*Index, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = MemoryDB
	}
	dsn := cfg.DBPath
	if dsn != MemoryDB {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		dsn += "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("search: open: %w", err)
	}
	// one connection: an in-memory database exists per connection
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("search: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("search: schema: %w", err)
	}
	return &Index{config: cfg, db: db}, nil
}

// Rebuild replaces the indexed documents with projects. Content is HTML and is reduced to plain
// text before indexing.
func (ix *Index) Rebuild(ctx context.Context, projects []content.Project) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("search: begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects_fts`); err != nil {
		return fmt.Errorf("search: clear: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO projects_fts(id, wall, title, description, body) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("search: prepare: %w", err)
	}
	defer stmt.Close()
	for _, p := range projects {
		body := strings.Join(content.PlainText(p.Content), "\n")
		if _, err := stmt.ExecContext(ctx, p.ID, p.Position.Wall, p.Title, p.Description, body); err != nil {
			return fmt.Errorf("search: index %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("search: commit: %w", err)
	}
	return nil
}

// Source supplies full project records for indexing; *content.Store satisfies it.
type Source interface {
	FullProjects() ([]content.Project, error)
}

// RebuildFrom reindexes every project of src and returns how many were indexed.
func (ix *Index) RebuildFrom(ctx context.Context, src Source) (int, error) {
	projects, err := src.FullProjects()
	if err != nil {
		return 0, fmt.Errorf("search: load projects: %w", err)
	}
	if err := ix.Rebuild(ctx, projects); err != nil {
		return 0, err
	}
	return len(projects), nil
}

// Count returns the number of indexed projects.
func (ix *Index) Count(ctx context.Context) (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var n int
	if err := ix.db.QueryRowContext(ctx, `SELECT count(*) FROM projects_fts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("search: count: %w", err)
	}
	return n, nil
}

// Search returns up to limit projects matching every word of query, best first. Words match
// as prefixes; title hits outrank description hits, which outrank body hits.
// A query without words returns no hits.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	match := MatchExpr(query)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	rows, err := ix.db.QueryContext(ctx, `
		SELECT id, wall, title,
		       snippet(projects_fts, -1, '[', ']', '…', 12),
		       bm25(projects_fts, 0.0, 0.0, 10.0, 5.0, 1.0) AS rank
		FROM projects_fts
		WHERE projects_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer rows.Close()
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.Wall, &h.Title, &h.Snippet, &h.Rank); err != nil {
			return nil, fmt.Errorf("search: scan: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search: rows: %w", err)
	}
	return hits, nil
}

// MatchExpr turns free text into an FTS5 expression: each word quoted (so FTS operators in
// user input are literal) and marked as a prefix, all words required.
func MatchExpr(query string) string {
	words := strings.Fields(query)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, `"*^:()`)
		if w == "" {
			continue
		}
		parts = append(parts, `"`+strings.ReplaceAll(w, `"`, `""`)+`"*`)
	}
	return strings.Join(parts, " ")
}

// Close closes the database.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.db.Close()
}
