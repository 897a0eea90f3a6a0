package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/fixturekit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The returned provider must be shut down on exit; shutdown flushes the
// last batch, which matters for short fixture runs.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns the module meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// FixtureMetrics holds the instruments recorded during fixture loading.
// A nil *FixtureMetrics records nothing.
type FixtureMetrics struct {
	objectsCreated    metric.Int64Counter
	flushes           metric.Int64Counter
	iterationDuration metric.Float64Histogram
	loadTotal         metric.Int64Counter
}

// NewFixtureMetrics creates the fixture instruments on meter.
func NewFixtureMetrics(meter metric.Meter) (*FixtureMetrics, error) {
	objectsCreated, err := meter.Int64Counter("fixture.objects.created",
		metric.WithDescription("Objects produced and registered by count iterations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fixture.objects.created counter: %w", err)
	}

	flushes, err := meter.Int64Counter("fixture.flushes",
		metric.WithDescription("Flushes issued to the object manager"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fixture.flushes counter: %w", err)
	}

	iterationDuration, err := meter.Float64Histogram("fixture.iteration.duration",
		metric.WithDescription("Duration of fixture iterations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fixture.iteration.duration histogram: %w", err)
	}

	loadTotal, err := meter.Int64Counter("fixture.load.total",
		metric.WithDescription("Fixture loads by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fixture.load.total counter: %w", err)
	}

	return &FixtureMetrics{
		objectsCreated:    objectsCreated,
		flushes:           flushes,
		iterationDuration: iterationDuration,
		loadTotal:         loadTotal,
	}, nil
}

// RecordObject counts one object registered under reference.
func (m *FixtureMetrics) RecordObject(ctx context.Context, reference string) {
	if m == nil {
		return
	}
	m.objectsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("reference", reference)))
}

// RecordFlush counts one flush. final distinguishes the closing flush of an
// iteration from the random intermediate ones.
func (m *FixtureMetrics) RecordFlush(ctx context.Context, reference string, final bool) {
	if m == nil {
		return
	}
	m.flushes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reference", reference),
		attribute.Bool("final", final),
	))
}

// RecordIteration records how long an iteration took and whether it failed.
func (m *FixtureMetrics) RecordIteration(ctx context.Context, reference, mode string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.iterationDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("reference", reference),
		attribute.String("mode", mode),
		attribute.String("status", status(err)),
	))
}

// RecordLoad counts one fixture load.
func (m *FixtureMetrics) RecordLoad(ctx context.Context, fixture string, err error) {
	if m == nil {
		return
	}
	m.loadTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("fixture", fixture),
		attribute.String("status", status(err)),
	))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
