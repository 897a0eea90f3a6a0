package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/fixturekit/component"
	"github.com/kbukum/fixturekit/logger"
)

// Config selects which telemetry signals are exported.
type Config struct {
	Enabled    bool    `mapstructure:"enabled"`
	Endpoint   string  `mapstructure:"endpoint"`
	Insecure   bool    `mapstructure:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Telemetry is a component that owns the tracer and meter providers.
// When disabled it starts nothing and the global no-op providers stay in place.
type Telemetry struct {
	cfg     Config
	service string
	version string
	env     string
	log     *logger.Logger
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)

// NewTelemetry creates the telemetry component.
func NewTelemetry(cfg Config, service, version, environment string, log *logger.Logger) *Telemetry {
	cfg.ApplyDefaults()
	return &Telemetry{cfg: cfg, service: service, version: version, env: environment, log: log.WithComponent("telemetry")}
}

// Name returns the component name.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the providers when enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		t.log.Debug("telemetry disabled")
		return nil
	}

	tcfg := DefaultTracerConfig(t.service)
	tcfg.ServiceVersion, tcfg.Environment = t.version, t.env
	tcfg.Endpoint, tcfg.Insecure, tcfg.SampleRate = t.cfg.Endpoint, t.cfg.Insecure, t.cfg.SampleRate
	tp, err := InitTracer(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("telemetry tracer: %w", err)
	}
	t.tp = tp

	mcfg := DefaultMeterConfig(t.service)
	mcfg.ServiceVersion, mcfg.Environment = t.version, t.env
	mcfg.Endpoint, mcfg.Insecure = t.cfg.Endpoint, t.cfg.Insecure
	mp, err := InitMeter(ctx, mcfg)
	if err != nil {
		return fmt.Errorf("telemetry meter: %w", err)
	}
	t.mp = mp
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	t.tp, t.mp = nil, nil
	return errors.Join(errs...)
}

// Health reports degraded when enabled but not started.
func (t *Telemetry) Health(_ context.Context) component.Health {
	if t.cfg.Enabled && t.tp == nil {
		return component.Health{Name: t.Name(), Status: component.StatusDegraded, Message: "providers not started"}
	}
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// Describe returns a summary line for the run summary.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.cfg.Enabled {
		details = fmt.Sprintf("otlp=%s sample=%.2f", t.cfg.Endpoint, t.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}
