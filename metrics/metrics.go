package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type OmnichainMetrics struct {
	*HostMetrics
	*BundleMetrics
}

// NewOmnichainMetrics creates every service metric labeled with the
// environment, instance id and version.
func NewOmnichainMetrics(ctx context.Context, meter metric.Meter, env, id, version string, executions func() int) (*OmnichainMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("env", env),
		attribute.String("id", id),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts, executions)
	if err != nil {
		return nil, err
	}
	bundleMetrics, err := NewBundleMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	return &OmnichainMetrics{
		HostMetrics:   hostMetrics,
		BundleMetrics: bundleMetrics,
	}, nil
}
