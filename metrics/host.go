package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

type HostMetrics struct {
	startTimeGauge  metric.Int64ObservableGauge
	versionGauge    metric.Int64ObservableGauge
	executionsGauge metric.Int64ObservableGauge
}

// NewHostMetrics initializes metrics related to the service host. executions
// reports how many executions are currently addressable through the API.
func NewHostMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption, executions func() int) (*HostMetrics, error) {
	startTime := time.Now().Unix()
	startTimeGauge, err := meter.Int64ObservableGauge(
		"omnichain.StartTimeSeconds",
		metric.WithDescription("Start time of the service"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(startTime, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	versionGauge, err := meter.Int64ObservableGauge(
		"omnichain.Version",
		metric.WithDescription("Always 1, labeled with the running version"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			result.Observe(1, opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	executionsGauge, err := meter.Int64ObservableGauge(
		"omnichain.CachedExecutions",
		metric.WithDescription("Executions kept for status queries"),
		metric.WithInt64Callback(func(ctx context.Context, result metric.Int64Observer) error {
			if executions == nil {
				return nil
			}
			result.Observe(int64(executions()), opts)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return &HostMetrics{
		startTimeGauge:  startTimeGauge,
		versionGauge:    versionGauge,
		executionsGauge: executionsGauge,
	}, nil
}
