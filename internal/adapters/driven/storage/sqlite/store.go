package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/millrace-labs/skim-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// Store is a SQLite-backed corpus snapshot store. Save replaces the
// whole snapshot in one transaction, matching the whole-file write
// semantics of the JSON backend.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path and applies any
// pending migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole snapshot. An empty database yields an empty
// corpus.
func (s *Store) Load(ctx context.Context) (*domain.Corpus, error) {
	corpus := &domain.Corpus{}

	rows, err := s.db.QueryContext(ctx, "SELECT id, path, hash, token_count FROM documents")
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Hash, &doc.TokenCount); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		corpus.Documents = append(corpus.Documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	chunkRows, err := s.db.QueryContext(ctx, "SELECT id, doc_id, text, start, end_pos, strategy FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer chunkRows.Close()
	for chunkRows.Next() {
		var chunk domain.Chunk
		var strategy string
		if err := chunkRows.Scan(&chunk.ID, &chunk.DocID, &chunk.Text, &chunk.Start, &chunk.End, &strategy); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunk.Strategy = domain.ChunkStrategy(strategy)
		corpus.Chunks = append(corpus.Chunks, chunk)
	}
	if err := chunkRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}

	entryRows, err := s.db.QueryContext(ctx, "SELECT chunk_id, doc_id, vector FROM index_entries")
	if err != nil {
		return nil, fmt.Errorf("query index entries: %w", err)
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var entry domain.IndexEntry
		var vectorJSON string
		if err := entryRows.Scan(&entry.ChunkID, &entry.DocID, &vectorJSON); err != nil {
			return nil, fmt.Errorf("scan index entry: %w", err)
		}
		if err := json.Unmarshal([]byte(vectorJSON), &entry.Vector); err != nil {
			return nil, fmt.Errorf("parse index entry vector: %w", err)
		}
		corpus.IndexEntries = append(corpus.IndexEntries, entry)
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate index entries: %w", err)
	}

	return corpus, nil
}

// Save replaces the snapshot in one transaction.
func (s *Store) Save(ctx context.Context, corpus *domain.Corpus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"index_entries", "chunks", "documents"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, doc := range corpus.Documents {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, path, hash, token_count) VALUES (?, ?, ?, ?)",
			doc.ID, doc.Path, doc.Hash, doc.TokenCount)
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
	}

	for _, chunk := range corpus.Chunks {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO chunks (id, doc_id, text, start, end_pos, strategy) VALUES (?, ?, ?, ?, ?, ?)",
			chunk.ID, chunk.DocID, chunk.Text, chunk.Start, chunk.End, string(chunk.Strategy))
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", chunk.ID, err)
		}
	}

	for _, entry := range corpus.IndexEntries {
		vectorJSON, err := json.Marshal(entry.Vector)
		if err != nil {
			return fmt.Errorf("serialize vector for %s: %w", entry.ChunkID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO index_entries (chunk_id, doc_id, vector) VALUES (?, ?, ?)",
			entry.ChunkID, entry.DocID, string(vectorJSON))
		if err != nil {
			return fmt.Errorf("insert index entry %s: %w", entry.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}
