package bundle

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/relay"
)

const (
	POLL_INTERVAL = 2 * time.Second
)

type StatusFetcher interface {
	GetBundleStatus(ctx context.Context, bundleID string) (*relay.BundleStatus, error)
}

// Poller periodically fetches bundle status from the relay.
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration
}

func NewPoller(fetcher StatusFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = POLL_INTERVAL
	}

	return &Poller{
		fetcher:  fetcher,
		interval: interval,
	}
}

// Poll fetches the status immediately and then on every tick until the relay
// reports a final status, onUpdate returns true or ctx is cancelled. Fetch
// errors are logged and retried on the next tick.
func (p *Poller) Poll(ctx context.Context, bundleID string, onUpdate func(*relay.BundleStatus) bool) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if p.poll(ctx, bundleID, onUpdate) {
			return
		}

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			log.Debug().Str("bundleID", bundleID).Msg("Bundle polling cancelled")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context, bundleID string, onUpdate func(*relay.BundleStatus) bool) bool {
	status, err := p.fetcher.GetBundleStatus(ctx, bundleID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}

		log.Warn().Str("bundleID", bundleID).Msgf("Failed fetching bundle status: %s", err)
		return false
	}

	if ctx.Err() != nil {
		return true
	}

	done := onUpdate(status)
	return done || status.Status.Final()
}
