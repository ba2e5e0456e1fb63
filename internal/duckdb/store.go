// Package duckdb persists genomic regions and query results in a DuckDB
// database. The interval index itself is never persisted; the store is a
// region source feeding the in-memory index, and an optional sink for
// overlap results so they can be analyzed with SQL afterward.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/rangeidx/internal/genome"
	"github.com/inodb/rangeidx/internal/interval"
)

// Store manages a DuckDB connection holding region and overlap tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS regions (
		chrom VARCHAR NOT NULL,
		range_start BIGINT NOT NULL,
		range_end BIGINT NOT NULL,
		name VARCHAR NOT NULL
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS "overlaps" (
		chrom VARCHAR NOT NULL,
		query_start BIGINT NOT NULL,
		query_end BIGINT NOT NULL,
		range_start BIGINT NOT NULL,
		range_end BIGINT NOT NULL,
		name VARCHAR NOT NULL
	)`)
	return err
}

// AddRegion inserts one inclusive region [start, end].
func (s *Store) AddRegion(chrom string, start, end int64, name string) error {
	if start > end {
		return fmt.Errorf("region %s: %w", name, interval.ErrInvalidBounds)
	}
	_, err := s.db.Exec(
		`INSERT INTO regions (chrom, range_start, range_end, name) VALUES (?, ?, ?, ?)`,
		chrom, start, end, name)
	if err != nil {
		return fmt.Errorf("insert region: %w", err)
	}
	return nil
}

// CountRegions returns the number of stored regions.
func (s *Store) CountRegions() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count regions: %w", err)
	}
	return count, nil
}

// LoadRegions stages every stored region into the set and returns the number
// loaded. The caller still has to run set.Build.
func (s *Store) LoadRegions(set *genome.Set) (int, error) {
	rows, err := s.db.Query(
		`SELECT chrom, range_start, range_end, name FROM regions ORDER BY chrom, range_start`)
	if err != nil {
		return 0, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var chrom, name string
		var start, end int64
		if err := rows.Scan(&chrom, &start, &end, &name); err != nil {
			return loaded, fmt.Errorf("scan region: %w", err)
		}
		if err := set.Add(chrom, start, end, name); err != nil {
			return loaded, err
		}
		loaded++
	}
	if err := rows.Err(); err != nil {
		return loaded, fmt.Errorf("iterate regions: %w", err)
	}
	return loaded, nil
}

// WriteOverlaps records the contents of a result buffer as hits of the query
// [qmin, qmax] on chrom, in one transaction.
func (s *Store) WriteOverlaps(chrom string, qmin, qmax int64, buf *interval.ResultBuffer[string]) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO "overlaps"
		(chrom, query_start, query_end, range_start, range_end, name)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < buf.Len(); i++ {
		if _, err := stmt.Exec(chrom, qmin, qmax, buf.Min(i), buf.Max(i), buf.Data(i)); err != nil {
			return fmt.Errorf("insert overlap: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit overlaps: %w", err)
	}
	return nil
}

// CountOverlaps returns the number of recorded overlap results.
func (s *Store) CountOverlaps() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM "overlaps"`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlaps: %w", err)
	}
	return count, nil
}
