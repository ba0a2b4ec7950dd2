// Package state persists the history of split invocations in a local
// SQLite database so past runs can be inspected with the runs command.
package state

import "time"

// Status of a recorded split.
type Status string

const (
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Split is one recorded split of one experiment.
type Split struct {
	ID          string
	ModelPath   string
	Experiment  string
	Runs        int
	OutputDir   string
	Status      Status
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Store records and lists splits.
type Store interface {
	// CreateSplit records the start of a split with status running.
	CreateSplit(modelPath, experiment, outputDir string) (*Split, error)
	// CompleteSplit finalizes a split with its outcome and run count.
	CompleteSplit(id string, status Status, runs int, errMsg string) error
	// ListSplits returns the most recent splits, newest first.
	ListSplits(limit int) ([]*Split, error)
	Close() error
}
