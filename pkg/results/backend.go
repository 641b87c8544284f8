package results

import (
	"database/sql"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one timed sort of one generated dataset.
type Run struct {
	Distribution string
	InputSize    int
	Algorithm    string
	Duration     time.Duration
	Sorted       bool
	ChecksumOK   bool
}

type Backend interface {
	Record(run Run) error
	BatchRecord(runs []Run) error
	LoadAll() ([]Run, error)
	Close()
	Truncate() error
}

type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex
}

func NewSQLiteBackend(path string) *SQLiteBackend {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		distribution TEXT,
		input_size INTEGER,
		algorithm TEXT,
		duration_ns INTEGER,
		sorted INTEGER,
		checksum_ok INTEGER
	);`
	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Failed to init table: %v", err)
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
	`)
	if err != nil {
		log.Printf("Warning: Failed to set PRAGMA: %v", err)
	}

	return &SQLiteBackend{db: db}
}

func (s *SQLiteBackend) Record(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO runs (distribution, input_size, algorithm, duration_ns, sorted, checksum_ok) VALUES (?, ?, ?, ?, ?, ?)",
		run.Distribution, run.InputSize, run.Algorithm, run.Duration.Nanoseconds(), run.Sorted, run.ChecksumOK)
	return err
}

func (s *SQLiteBackend) BatchRecord(runs []Run) error {
	if len(runs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO runs (distribution, input_size, algorithm, duration_ns, sorted, checksum_ok) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, run := range runs {
		if _, err := stmt.Exec(run.Distribution, run.InputSize, run.Algorithm,
			run.Duration.Nanoseconds(), run.Sorted, run.ChecksumOK); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteBackend) LoadAll() ([]Run, error) {
	rows, err := s.db.Query("SELECT distribution, input_size, algorithm, duration_ns, sorted, checksum_ok FROM runs ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ns int64
		if err := rows.Scan(&r.Distribution, &r.InputSize, &r.Algorithm, &ns, &r.Sorted, &r.ChecksumOK); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(ns)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteBackend) Truncate() error {
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

func (s *SQLiteBackend) Close() {
	s.db.Close()
}
