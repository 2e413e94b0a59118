package history

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ytget/yt-grabber/internal/model"
)

// Entry is one finished job as stored in the history table.
type Entry struct {
	ID        int64
	JobID     string
	URL       string
	Title     string
	Format    string
	Outcome   string
	ErrorText string
	OutputDir string
	CreatedAt time.Time
}

// Store persists finished jobs in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path and runs migrations.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS download_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT,
			format TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error_text TEXT,
			output_dir TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_created_at ON download_history(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_history_outcome ON download_history(outcome)`,
	}

	for i, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("history migration %d failed: %w", i, err)
		}
	}
	return nil
}

// Record stores the terminal outcome of a job. errText carries the failure
// message and is empty for completed or stopped jobs.
func (s *Store) Record(job model.DownloadJob, outcome model.Outcome, errText string) error {
	query := `
		INSERT INTO download_history (job_id, url, title, format, outcome, error_text, output_dir, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		job.ID,
		job.URL,
		job.Title,
		string(job.Format),
		outcome.String(),
		errText,
		job.OutputDir,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	query := `
		SELECT id, job_id, url, title, format, outcome, error_text, output_dir, created_at
		FROM download_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var title, errText, outputDir sql.NullString
		if err := rows.Scan(&e.ID, &e.JobID, &e.URL, &title, &e.Format, &e.Outcome, &errText, &outputDir, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Title = title.String
		e.ErrorText = errText.String
		e.OutputDir = outputDir.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByOutcome returns how many stored jobs finished with the outcome.
func (s *Store) CountByOutcome(outcome model.Outcome) (int64, error) {
	var count int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM download_history WHERE outcome = ?`, outcome.String()).Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		log.Printf("closing history store: %v", err)
		return err
	}
	return nil
}
