package deployment

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

// API is the slice of the control-plane client the deployer drives.
type API interface {
	Deploy(ctx context.Context, id string, payload map[string]any) (string, error)
	DeploymentStatus(ctx context.Context, id, deploymentID string) (*model.DeploymentJob, error)
}

// Deployer runs one deployment chain at a time for one migration: submit the
// payload, then poll the deployment until it is terminal. The chain is
// independent of the parent migration's lifecycle.
type Deployer struct {
	api          API
	log          logger.Logger
	statsFactory stats.Stats
	migrationID  string

	config struct {
		pollInterval config.ValueLoader[time.Duration]
	}

	stats struct {
		completed stats.Counter
		failed    stats.Counter
	}

	mu         sync.RWMutex
	current    *model.DeploymentJob
	poller     *poll.Poller
	pollCancel context.CancelFunc
	deploying  bool
	closed     bool

	updates chan *model.DeploymentJob
}

func New(api API, conf *config.Config, log logger.Logger, statsFactory stats.Stats, migrationID string) *Deployer {
	d := &Deployer{
		api:          api,
		log:          log.Child("deployer").Withn(logger.NewStringField("migrationId", migrationID)),
		statsFactory: statsFactory,
		migrationID:  migrationID,
		updates:      make(chan *model.DeploymentJob, 1),
	}
	d.config.pollInterval = conf.GetReloadableDurationVar(2, time.Second, "Deployer.pollInterval")

	tags := stats.Tags{"migrationId": migrationID}
	d.stats.completed = statsFactory.NewTaggedStat("skylift_deployments_count", stats.CountType, lo.Assign(tags, stats.Tags{
		"status": "completed",
	}))
	d.stats.failed = statsFactory.NewTaggedStat("skylift_deployments_count", stats.CountType, lo.Assign(tags, stats.Tags{
		"status": "failed",
	}))
	return d
}

// Current returns the latest deployment state, nil before the first deploy.
// Callers must treat it as read-only.
func (d *Deployer) Current() *model.DeploymentJob {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Deploying reports whether a chain is active: a deploy request is in flight
// or a deployment is still being polled.
func (d *Deployer) Deploying() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deploying
}

// Updates delivers deployment states as they are replaced, latest-wins. The
// channel closes when the deployer closes.
func (d *Deployer) Updates() <-chan *model.DeploymentJob {
	return d.updates
}

// Deploy builds the payload, submits it, and starts the poll chain. Only one
// chain may be active; a second call while Deploying returns
// ErrDeploymentInProgress. A failed request is terminal immediately: with no
// deployment id there is nothing to poll, so the chain ends failed with the
// backend's message.
func (d *Deployer) Deploy(ctx context.Context, profile *ConnectionProfile, options Options) error {
	payload, err := BuildPayload(profile, options)
	if err != nil {
		return err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.deploying {
		d.mu.Unlock()
		return ErrDeploymentInProgress
	}
	d.deploying = true
	d.mu.Unlock()

	deploymentID, err := d.api.Deploy(ctx, d.migrationID, payload)
	if err != nil {
		d.log.Errorn("deploy request failed", obskit.Error(err))
		d.stats.failed.Increment()
		d.replace(&model.DeploymentJob{
			Status: model.DeploymentStatusFailed,
			Error:  err.Error(),
		}, false)
		return fmt.Errorf("deploying to %s: %w", profile.Type, err)
	}

	d.log.Infon("deployment accepted",
		logger.NewStringField("deploymentId", deploymentID),
		logger.NewStringField("warehouseType", string(profile.Type)),
	)
	d.replace(&model.DeploymentJob{
		DeploymentID: deploymentID,
		Status:       model.DeploymentStatusRunning,
	}, true)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p := poll.New("deployment", d.config.pollInterval, d.tick(deploymentID), d.log)
	d.poller = p
	d.pollCancel = cancel
	p.Start(pollCtx)
	return nil
}

// tick fetches the deployment state, replacing it wholesale. The loop stops
// the moment the fetched status is not running; fetch failures are transient
// and keep the chain alive.
func (d *Deployer) tick(deploymentID string) poll.TickFunc {
	return func(ctx context.Context) (bool, error) {
		job, err := d.api.DeploymentStatus(ctx, d.migrationID, deploymentID)
		if err != nil {
			return false, err
		}
		terminal := job.Status.Terminal()
		if terminal {
			switch job.Status {
			case model.DeploymentStatusCompleted:
				d.stats.completed.Increment()
			case model.DeploymentStatusFailed:
				d.stats.failed.Increment()
			}
		}
		d.replace(job, !terminal)
		return terminal, nil
	}
}

// replace installs a new deployment state. deploying false marks the chain
// settled, allowing the next Deploy.
func (d *Deployer) replace(job *model.DeploymentJob, deploying bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.current = job
	if !deploying {
		d.deploying = false
		if d.pollCancel != nil {
			d.pollCancel()
		}
		d.poller = nil
		d.pollCancel = nil
	}

	select {
	case d.updates <- job:
	default:
		select {
		case <-d.updates:
		default:
		}
		select {
		case d.updates <- job:
		default:
		}
	}
}

// AwaitTerminal blocks until the active chain settles, returning the
// terminal deployment state.
func (d *Deployer) AwaitTerminal(ctx context.Context) (*model.DeploymentJob, error) {
	if job := d.Current(); job != nil && job.Status.Terminal() {
		return job, nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case job, ok := <-d.updates:
			if !ok {
				return nil, ErrClosed
			}
			if job.Status.Terminal() {
				return job, nil
			}
		}
	}
}

// Close cancels any active chain and blocks until its poller has fully
// exited; nothing mutates or delivers after Close returns. Idempotent.
func (d *Deployer) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	p := d.poller
	if d.pollCancel != nil {
		d.pollCancel()
	}
	d.poller = nil
	d.pollCancel = nil
	d.mu.Unlock()

	if p != nil {
		p.Stop()
	}

	d.mu.Lock()
	close(d.updates)
	d.mu.Unlock()
}
