// Package sqlite implements the local record archive. The archive is
// both a write-through sink for fetched records and one more queryable
// source: a local, always-reachable copy of everything seen so far.
// The volatile cache regions stay separate; the archive only grows.
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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/archive/sqlite/migrations"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// AddressPrefix marks archive addresses in provenance output.
const AddressPrefix = "archive:"

// Ensure Archive implements the interface.
var _ driven.RecordArchive = (*Archive)(nil)

// Archive is a SQLite-backed record archive.
type Archive struct {
	db   *sql.DB
	path string
}

// NewArchive opens (creating if needed) the archive database at dbPath.
// An empty path defaults to ~/.folio/data/archive.db.
func NewArchive(dbPath string) (*Archive, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".folio", "data", "archive.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &Archive{db: db, path: dbPath}
	if err := a.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return a, nil
}

// Address returns the archive's source address.
func (a *Archive) Address() string {
	return AddressPrefix + a.path
}

// Path returns the database file path.
func (a *Archive) Path() string {
	return a.path
}

// Store persists records. Records are value-identical by ID, so an
// already-archived ID is left untouched.
func (a *Archive) Store(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, author, kind, created_at, identifier, tags, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		tagsJSON, err := json.Marshal(rec.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Author, rec.Kind,
			rec.CreatedAt.Unix(), rec.Identifier(), string(tagsJSON), rec.Content); err != nil {
			return fmt.Errorf("archiving record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query returns archived records matching any filter, newest first. The
// SQL narrows by the indexed columns; tag constraints are applied on the
// scanned rows.
func (a *Archive) Query(ctx context.Context, filters []domain.Filter, _ time.Duration) ([]domain.Record, error) {
	seen := make(map[string]bool)
	var out []domain.Record

	for i := range filters {
		records, err := a.queryOne(ctx, &filters[i])
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true
			out = append(out, rec)
		}
	}
	return out, nil
}

// queryOne runs a single filter against the records table.
func (a *Archive) queryOne(ctx context.Context, filter *domain.Filter) ([]domain.Record, error) {
	query := strings.Builder{}
	query.WriteString("SELECT id, author, kind, created_at, tags, content FROM records")

	var clauses []string
	var args []any
	if len(filter.IDs) > 0 {
		clauses = append(clauses, "id IN ("+placeholders(len(filter.IDs))+")")
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}
	if len(filter.Kinds) > 0 {
		clauses = append(clauses, "kind IN ("+placeholders(len(filter.Kinds))+")")
		for _, kind := range filter.Kinds {
			args = append(args, kind)
		}
	}
	if len(filter.Authors) > 0 {
		clauses = append(clauses, "author IN ("+placeholders(len(filter.Authors))+")")
		for _, author := range filter.Authors {
			args = append(args, author)
		}
	}
	if len(filter.Identifiers) > 0 {
		clauses = append(clauses, "identifier IN ("+placeholders(len(filter.Identifiers))+")")
		for _, ident := range filter.Identifiers {
			args = append(args, ident)
		}
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.Unix())
	}
	if len(clauses) > 0 {
		query.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")

	rows, err := a.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var records []domain.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		// Tag constraints are not indexed; check them post-scan.
		if !filter.Matches(&rec) {
			continue
		}
		records = append(records, rec)
		if filter.Limit > 0 && len(records) >= filter.Limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archive records: %w", err)
	}
	return records, nil
}

// Count returns the number of archived records.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var count int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// migrate runs all pending migrations.
func (a *Archive) migrate(fsys embed.FS) error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := a.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
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
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := a.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := a.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// placeholders builds a "?, ?, ?" list of n placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// scanRecord scans a record row.
func scanRecord(rows *sql.Rows) (domain.Record, error) {
	var rec domain.Record
	var createdAt int64
	var tagsJSON string

	if err := rows.Scan(&rec.ID, &rec.Author, &rec.Kind, &createdAt,
		&tagsJSON, &rec.Content); err != nil {
		return domain.Record{}, fmt.Errorf("scanning record: %w", err)
	}

	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return domain.Record{}, fmt.Errorf("unmarshalling tags: %w", err)
	}
	return rec, nil
}
