package model

import "time"

// MigrationStatus is the backend-reported lifecycle state of a migration job.
type MigrationStatus string

const (
	MigrationStatusPending   MigrationStatus = "pending"
	MigrationStatusRunning   MigrationStatus = "running"
	MigrationStatusCompleted MigrationStatus = "completed"
	MigrationStatusFailed    MigrationStatus = "failed"
)

// Terminal reports whether the backend will no longer change the status on
// its own. The client only requests transitions (start/stop/retry); it never
// fabricates one.
func (s MigrationStatus) Terminal() bool {
	return s == MigrationStatusCompleted || s == MigrationStatusFailed
}

func (s MigrationStatus) Active() bool {
	return s == MigrationStatusRunning
}

// MigrationJob is a single fetch of one migration job. Snapshots are replaced
// wholesale on every fetch, never merged field by field.
type MigrationJob struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status MigrationStatus `json:"status"`

	// Progress is authoritative only while Status is running.
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`

	TablesMigrated  int `json:"tables_migrated"`
	ViewsMigrated   int `json:"views_migrated"`
	ForeignKeys     int `json:"foreign_keys"`
	ModelsGenerated int `json:"models_generated"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DisplayProgress normalizes Progress for rendering: completed jobs read 100
// and pending jobs 0 regardless of the fetched value, and running values are
// clamped to 0-100.
func (j *MigrationJob) DisplayProgress() int {
	switch j.Status {
	case MigrationStatusCompleted:
		return 100
	case MigrationStatusRunning:
		return min(max(j.Progress, 0), 100)
	default:
		return 0
	}
}
