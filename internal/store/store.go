package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jobscout-dev/jobscout/internal/jobs"
)

const schema = `
CREATE TABLE IF NOT EXISTS seen_jobs (
	key        TEXT PRIMARY KEY,
	company    TEXT NOT NULL,
	title      TEXT NOT NULL,
	location   TEXT,
	url        TEXT,
	job_id     TEXT,
	source     TEXT,
	first_seen DATETIME NOT NULL,
	last_seen  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_seen_jobs_company ON seen_jobs(company);
`

// Store remembers every posting seen across runs, so new openings can
// be told apart from ones that were already in earlier reports.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.local/share/jobscout/jobs.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "jobscout", "jobs.db"), nil
}

// Open creates the database file (and its directory) if needed. An
// empty path uses DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode keeps concurrent company workers from blocking each other
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// MarkSeen records a batch of postings and reports how many of them
// were not in the store before. Postings seen earlier get their
// last_seen refreshed.
func (s *Store) MarkSeen(ctx context.Context, list []jobs.Job) (int, error) {
	if len(list) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO seen_jobs (key, company, title, location, url, job_id, source, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			last_seen = excluded.last_seen
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	fresh := 0
	for _, j := range list {
		known, err := s.hasKey(ctx, tx, j.Key())
		if err != nil {
			return 0, err
		}
		if !known {
			fresh++
		}

		if _, err := stmt.ExecContext(ctx, j.Key(), j.Company, j.Title, j.Location,
			j.URL, j.JobID, j.Source, now, now); err != nil {
			return 0, fmt.Errorf("saving posting: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return fresh, nil
}

func (s *Store) hasKey(ctx context.Context, tx *sql.Tx, key string) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM seen_jobs WHERE key = ?", key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking posting: %w", err)
	}
	return count > 0, nil
}

// CountByCompany returns how many postings the store holds per company.
func (s *Store) CountByCompany(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT company, COUNT(*) FROM seen_jobs GROUP BY company
	`)
	if err != nil {
		return nil, fmt.Errorf("querying counts: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var company string
		var n int
		if err := rows.Scan(&company, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		out[company] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return out, nil
}
