// Package migration tracks one remote migration job: it owns the job's
// current snapshot, polls it while the backend reports it running, and issues
// the guarded lifecycle commands. The backend is the only source of state
// transitions; this package requests them and trusts the next fetch.
package migration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/skyliftdata/skylift-go/model"
	"github.com/skyliftdata/skylift-go/internal/poll"
)

// API is the slice of the control-plane client the monitor drives.
type API interface {
	Migration(ctx context.Context, id string) (*model.MigrationJob, error)
	StartMigration(ctx context.Context, id string) error
	StopMigration(ctx context.Context, id string) error
	RetryMigration(ctx context.Context, id string) error
	DeleteMigration(ctx context.Context, id string) error
}

// Monitor owns the single current snapshot of one migration job. Every
// writer (initial fetch, poll ticks, post-command refetches) replaces the
// snapshot wholesale; there is no field-level merging anywhere.
type Monitor struct {
	api          API
	log          logger.Logger
	statsFactory stats.Stats
	jobID        string

	config struct {
		pollInterval config.ValueLoader[time.Duration]
	}

	stats struct {
		refreshSuccess stats.Counter
		refreshFailure stats.Counter
	}

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu         sync.RWMutex
	snapshot   *model.MigrationJob
	poller     *poll.Poller
	pollCancel context.CancelFunc
	deleted    bool
	closed     bool

	updates chan *model.MigrationJob
}

func New(api API, conf *config.Config, log logger.Logger, statsFactory stats.Stats, jobID string) *Monitor {
	m := &Monitor{
		api:          api,
		log:          log.Child("monitor").Withn(logger.NewStringField("migrationId", jobID)),
		statsFactory: statsFactory,
		jobID:        jobID,
		updates:      make(chan *model.MigrationJob, 1),
	}
	m.config.pollInterval = conf.GetReloadableDurationVar(3, time.Second, "Monitor.pollInterval")

	tags := stats.Tags{"migrationId": jobID}
	m.stats.refreshSuccess = statsFactory.NewTaggedStat("skylift_monitor_refresh_count", stats.CountType, lo.Assign(tags, stats.Tags{
		"status": "success",
	}))
	m.stats.refreshFailure = statsFactory.NewTaggedStat("skylift_monitor_refresh_count", stats.CountType, lo.Assign(tags, stats.Tags{
		"status": "failure",
	}))
	return m
}

// Watch performs the initial fetch and arms automatic polling: from here on,
// whenever a snapshot reports the job running, a poller re-fetches it until
// the status changes. It returns the initial fetch's error; polling is armed
// either way.
func (m *Monitor) Watch(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.baseCancel == nil {
		m.baseCtx, m.baseCancel = context.WithCancel(ctx)
	}
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// Refresh fetches the job once and replaces the snapshot. On failure the
// last good snapshot is retained.
func (m *Monitor) Refresh(ctx context.Context) error {
	job, err := m.api.Migration(ctx, m.jobID)
	if err != nil {
		m.stats.refreshFailure.Increment()
		m.log.Warnn("refresh failed, retaining last snapshot", obskit.Error(err))
		return fmt.Errorf("refreshing snapshot: %w", err)
	}
	m.stats.refreshSuccess.Increment()
	m.replace(job)
	return nil
}

// Snapshot returns the last good snapshot, nil before the first successful
// fetch. Callers must treat it as read-only.
func (m *Monitor) Snapshot() *model.MigrationJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Deleted reports whether this monitor's job was deleted through it.
func (m *Monitor) Deleted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deleted
}

// Updates delivers snapshots as they are replaced, latest-wins: a slow
// consumer sees the newest snapshot, not every intermediate one. The channel
// closes when the monitor closes.
func (m *Monitor) Updates() <-chan *model.MigrationJob {
	return m.updates
}

// replace installs a fresh snapshot and reconciles polling with it: a running
// status demands an active poller, any other status cancels it.
func (m *Monitor) replace(job *model.MigrationJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.deleted {
		return
	}
	m.snapshot = job

	select {
	case m.updates <- job:
	default:
		select {
		case <-m.updates:
		default:
		}
		select {
		case m.updates <- job:
		default:
		}
	}

	if job.Status.Active() {
		m.startPollingLocked()
	} else {
		m.stopPollingLocked()
	}
}

// startPollingLocked spawns the job poller unless one is active or Watch has
// not armed the monitor yet.
func (m *Monitor) startPollingLocked() {
	if m.poller != nil || m.baseCtx == nil {
		return
	}
	ctx, cancel := context.WithCancel(m.baseCtx)
	p := poll.New("migration-job", m.config.pollInterval, m.tick, m.log)
	m.poller = p
	m.pollCancel = cancel
	p.Start(ctx)
}

// stopPollingLocked cancels the active poller without waiting for it: the
// cancel is observed once the in-flight tick settles, and the loop exits
// without scheduling another fetch. Called from the poller's own tick, a
// blocking stop here would deadlock.
func (m *Monitor) stopPollingLocked() {
	if m.poller == nil {
		return
	}
	m.pollCancel()
	m.poller = nil
	m.pollCancel = nil
}

// tick is the poller's fetch: replace the snapshot, stop once the latest
// status is no longer running. Only the freshly fetched status matters, so a
// pending to completed jump between ticks still terminates the loop.
func (m *Monitor) tick(ctx context.Context) (bool, error) {
	job, err := m.api.Migration(ctx, m.jobID)
	if err != nil {
		m.stats.refreshFailure.Increment()
		return false, err
	}
	m.stats.refreshSuccess.Increment()
	m.replace(job)
	return !job.Status.Active(), nil
}

// guard returns the typed error for a command that is not allowed from the
// current snapshot. No request is issued on a guard violation.
func (m *Monitor) guard(allowed func(model.MigrationStatus) bool, guardErr error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	if m.snapshot == nil {
		return ErrNoSnapshot
	}
	if !allowed(m.snapshot.Status) {
		return guardErr
	}
	return nil
}

// command runs an API command and always forces a refetch afterwards, even
// when the command failed: the request may have raced with a backend
// transition, and only the next fetch tells what actually happened.
func (m *Monitor) command(ctx context.Context, name string, run func(context.Context, string) error) error {
	err := run(ctx, m.jobID)
	if err != nil {
		m.log.Warnn("command failed",
			logger.NewStringField("command", name),
			obskit.Error(err),
		)
	}
	if refreshErr := m.Refresh(ctx); refreshErr != nil && err == nil {
		err = refreshErr
	}
	if err != nil {
		return fmt.Errorf("%s migration: %w", name, err)
	}
	return nil
}

// Start requests the backend to run the job. Allowed only from pending.
func (m *Monitor) Start(ctx context.Context) error {
	if err := m.guard(func(s model.MigrationStatus) bool {
		return s == model.MigrationStatusPending
	}, ErrNotPending); err != nil {
		return err
	}
	return m.command(ctx, "start", m.api.StartMigration)
}

// Stop requests the backend to halt the job. Allowed only from running.
func (m *Monitor) Stop(ctx context.Context) error {
	if err := m.guard(func(s model.MigrationStatus) bool {
		return s == model.MigrationStatusRunning
	}, ErrNotRunning); err != nil {
		return err
	}
	return m.command(ctx, "stop", m.api.StopMigration)
}

// Retry re-runs the same failed job. Allowed only from failed.
func (m *Monitor) Retry(ctx context.Context) error {
	if err := m.guard(func(s model.MigrationStatus) bool {
		return s == model.MigrationStatusFailed
	}, ErrNotFailed); err != nil {
		return err
	}
	return m.command(ctx, "retry", m.api.RetryMigration)
}

// Delete removes the job and closes the monitor, since the identifier it
// watches no longer exists. Refused while the job is running.
func (m *Monitor) Delete(ctx context.Context) error {
	if err := m.guard(func(s model.MigrationStatus) bool {
		return s != model.MigrationStatusRunning
	}, ErrStillRunning); err != nil {
		return err
	}
	if err := m.api.DeleteMigration(ctx, m.jobID); err != nil {
		m.log.Warnn("command failed",
			logger.NewStringField("command", "delete"),
			obskit.Error(err),
		)
		if refreshErr := m.Refresh(ctx); refreshErr != nil {
			m.log.Warnn("refetch after failed delete", obskit.Error(refreshErr))
		}
		return fmt.Errorf("delete migration: %w", err)
	}

	m.mu.Lock()
	m.deleted = true
	m.mu.Unlock()
	m.Close()
	return nil
}

// Close tears the monitor down deterministically: it blocks until any active
// poller has fully exited, so no snapshot mutation or update delivery happens
// after Close returns. Idempotent.
func (m *Monitor) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	p := m.poller
	if m.pollCancel != nil {
		m.pollCancel()
	}
	m.poller = nil
	m.pollCancel = nil
	m.mu.Unlock()

	if p != nil {
		p.Stop()
	}
	if m.baseCancel != nil {
		m.baseCancel()
	}

	m.mu.Lock()
	close(m.updates)
	m.mu.Unlock()
}

// AwaitTerminal blocks until the job reaches a terminal status, delivering
// the terminal snapshot. It returns early when ctx is cancelled or the
// monitor closes.
func (m *Monitor) AwaitTerminal(ctx context.Context) (*model.MigrationJob, error) {
	if job := m.Snapshot(); job != nil && job.Status.Terminal() {
		return job, nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case job, ok := <-m.updates:
			if !ok {
				return nil, ErrClosed
			}
			if job.Status.Terminal() {
				return job, nil
			}
		}
	}
}
