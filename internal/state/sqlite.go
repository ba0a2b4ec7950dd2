package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the database and runs pending migrations.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping state database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateSplit records the start of a split with status running.
func (s *SQLiteStore) CreateSplit(modelPath, experiment, outputDir string) (*Split, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}

	sp := &Split{
		ID:         uuid.New().String(),
		ModelPath:  modelPath,
		Experiment: experiment,
		OutputDir:  outputDir,
		Status:     StatusRunning,
		StartedAt:  time.Now().UTC(),
	}

	s.logger.Debug("recording split", "id", sp.ID, "experiment", experiment)

	_, err := s.db.Exec(
		`INSERT INTO splits (id, model_path, experiment, output_dir, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.ModelPath, sp.Experiment, sp.OutputDir, string(sp.Status), sp.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create split record: %w", err)
	}
	return sp, nil
}

// CompleteSplit finalizes a split with its outcome and run count.
func (s *SQLiteStore) CompleteSplit(id string, status Status, runs int, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("state database not opened")
	}

	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE splits SET status = ?, runs = ?, error = ?, completed_at = ? WHERE id = ?`,
		string(status), runs, errMsg, now, id,
	)
	if err != nil {
		return fmt.Errorf("complete split record: %w", err)
	}
	return nil
}

// ListSplits returns the most recent splits, newest first.
func (s *SQLiteStore) ListSplits(limit int) ([]*Split, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, model_path, experiment, runs, output_dir, status, error, started_at, completed_at
		 FROM splits ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		var sp Split
		var status, errMsg string
		var completed sql.NullTime
		if err := rows.Scan(&sp.ID, &sp.ModelPath, &sp.Experiment, &sp.Runs, &sp.OutputDir,
			&status, &errMsg, &sp.StartedAt, &completed); err != nil {
			return nil, fmt.Errorf("scan split row: %w", err)
		}
		sp.Status = Status(status)
		sp.Error = errMsg
		if completed.Valid {
			t := completed.Time
			sp.CompletedAt = &t
		}
		splits = append(splits, &sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate split rows: %w", err)
	}
	return splits, nil
}
