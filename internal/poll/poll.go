// Package poll runs a timer-driven refresh loop against a remote resource.
// One loop drives one resource; ticks are strictly sequential, so a slow
// fetch delays the next tick instead of piling requests up.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"
)

// TickFunc fetches the resource once. Returning done stops the loop;
// returning an error keeps it running (transient failures must not abandon
// monitoring).
type TickFunc func(ctx context.Context) (done bool, err error)

// Poller is single-use: Start at most once, then Stop. Create a new Poller
// for each activation.
type Poller struct {
	name     string
	interval config.ValueLoader[time.Duration]
	tick     TickFunc
	log      logger.Logger

	cancel   context.CancelFunc
	stopped  chan struct{}
	stopOnce sync.Once
}

func New(name string, interval config.ValueLoader[time.Duration], tick TickFunc, log logger.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		tick:     tick,
		log:      log.Child("poll").Withn(logger.NewStringField("poller", name)),
		stopped:  make(chan struct{}),
	}
}

// Start runs the first tick immediately, then re-arms the timer only after
// each tick settles. The loop exits when a tick reports done or when ctx or
// Stop cancels it.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go func() {
		defer close(p.stopped)
		for {
			done, err := p.tick(ctx)
			if err != nil && ctx.Err() == nil {
				p.log.Warnn("tick failed, retaining last snapshot", obskit.Error(err))
			}
			if done {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.interval.Load()):
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has fully exited, so no tick can
// mutate anything after Stop returns. Safe to call more than once, or with a
// tick still in flight.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		if p.cancel == nil {
			close(p.stopped)
			return
		}
		p.cancel()
	})
	<-p.stopped
}

// Done closes once the loop has exited, whether by terminal tick, context
// cancellation, or Stop.
func (p *Poller) Done() <-chan struct{} {
	return p.stopped
}
