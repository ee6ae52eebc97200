package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/bundle"
	"github.com/sprintertech/sprinter-omnichain/orchestrator"
)

const (
	EXECUTION_TTL = time.Hour
)

// ExecutionCache keeps executions addressable by execution id and, once the
// relay accepted them, by bundle id. Evicted executions are reset.
type ExecutionCache struct {
	executions *ttlcache.Cache[string, *orchestrator.Execution]
	bundles    *ttlcache.Cache[string, string]
}

func NewExecutionCache(ctx context.Context, ttl time.Duration) *ExecutionCache {
	if ttl <= 0 {
		ttl = EXECUTION_TTL
	}

	executions := ttlcache.New(
		ttlcache.WithTTL[string, *orchestrator.Execution](ttl),
	)
	executions.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *orchestrator.Execution]) {
		e := item.Value()
		if !e.Snapshot().Status.Terminal() {
			log.Debug().Str("executionID", e.ID).Msg("Resetting evicted execution")
		}
		e.Reset()
	})

	ec := &ExecutionCache{
		executions: executions,
		bundles: ttlcache.New(
			ttlcache.WithTTL[string, string](ttl),
		),
	}

	go ec.executions.Start()
	go ec.bundles.Start()
	go ec.watch(ctx)
	return ec
}

// Add stores e and indexes it by bundle id as soon as it has one.
func (c *ExecutionCache) Add(e *orchestrator.Execution) {
	c.executions.Set(e.ID, e, ttlcache.DefaultTTL)

	var indexed bool
	e.Subscribe(func(b bundle.Bundle) {
		if indexed || b.ID == "" {
			return
		}
		indexed = true
		c.bundles.Set(b.ID, e.ID, ttlcache.DefaultTTL)
	})
	// the relay may have accepted the bundle before the subscription
	if id := e.Snapshot().ID; id != "" {
		c.bundles.Set(id, e.ID, ttlcache.DefaultTTL)
	}
}

// Execution returns the execution with the given execution or bundle id.
func (c *ExecutionCache) Execution(id string) (*orchestrator.Execution, error) {
	if item := c.executions.Get(id); item != nil {
		return item.Value(), nil
	}

	if ref := c.bundles.Get(id); ref != nil {
		if item := c.executions.Get(ref.Value()); item != nil {
			return item.Value(), nil
		}
	}

	return nil, fmt.Errorf("no execution found with id %s", id)
}

func (c *ExecutionCache) Len() int {
	return c.executions.Len()
}

func (c *ExecutionCache) watch(ctx context.Context) {
	<-ctx.Done()
	c.executions.Stop()
	c.bundles.Stop()
}
