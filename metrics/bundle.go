package metrics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-omnichain/bundle"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	BUNDLE_TTL = time.Hour * 2
)

type BundleMetrics struct {
	inFlightGauge metric.Int64ObservableGauge
	inFlight      *int64

	bundleTimeHistogram  metric.Float64Histogram
	bundleOutcomeCounter metric.Int64Counter
	bundleStartTimeCache *ttlcache.Cache[string, time.Time]

	opts metric.MeasurementOption
}

// NewBundleMetrics initializes metrics related to bundle executions
func NewBundleMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*BundleMetrics, error) {
	inFlight := new(int64)
	inFlightGauge, err := meter.Int64ObservableGauge(
		"omnichain.BundlesInFlight",
		metric.WithInt64Callback(func(context context.Context, result metric.Int64Observer) error {
			result.Observe(atomic.LoadInt64(inFlight), opts)
			return nil
		}),
		metric.WithDescription("Number of bundles that have not reached a terminal status"),
	)
	if err != nil {
		return nil, err
	}

	bundleTimeHistogram, err := meter.Float64Histogram(
		"omnichain.BundleTime",
		metric.WithDescription("Seconds from bundle creation to its final status"),
	)
	if err != nil {
		return nil, err
	}

	bundleOutcomeCounter, err := meter.Int64Counter(
		"omnichain.BundleOutcome",
		metric.WithDescription("Finished bundles by status"),
	)
	if err != nil {
		return nil, err
	}

	return &BundleMetrics{
		inFlightGauge:        inFlightGauge,
		inFlight:             inFlight,
		bundleTimeHistogram:  bundleTimeHistogram,
		bundleOutcomeCounter: bundleOutcomeCounter,
		bundleStartTimeCache: ttlcache.New(
			ttlcache.WithTTL[string, time.Time](BUNDLE_TTL),
		),
		opts: opts,
	}, nil
}

func (m *BundleMetrics) StartBundle(id string) {
	atomic.AddInt64(m.inFlight, 1)
	m.bundleStartTimeCache.Set(id, time.Now(), ttlcache.DefaultTTL)
}

func (m *BundleMetrics) EndBundle(id string, status bundle.Status) {
	m.bundleOutcomeCounter.Add(context.Background(), 1, m.opts, metric.WithAttributes(attribute.String("status", string(status))))

	startTime := m.bundleStartTimeCache.Get(id)
	if startTime == nil {
		log.Warn().Msgf("Bundle start time with ID %s not found", id)
		return
	}

	atomic.AddInt64(m.inFlight, -1)
	m.bundleStartTimeCache.Delete(id)
	m.bundleTimeHistogram.Record(context.Background(), time.Since(startTime.Value()).Seconds(), m.opts)
}

// InFlight returns the number of started bundles that have not ended.
func (m *BundleMetrics) InFlight() int64 {
	return atomic.LoadInt64(m.inFlight)
}
