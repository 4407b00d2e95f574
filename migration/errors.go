package migration

import "errors"

// Guard errors. A guard violation means the command was refused locally; no
// request reached the backend.
var (
	ErrNoSnapshot   = errors.New("migration: no snapshot fetched yet")
	ErrNotPending   = errors.New("migration: start allowed only from pending")
	ErrNotRunning   = errors.New("migration: stop allowed only from running")
	ErrNotFailed    = errors.New("migration: retry allowed only from failed")
	ErrStillRunning = errors.New("migration: delete refused while running")
	ErrClosed       = errors.New("migration: monitor is closed")
)
