// Package observability wires OpenTelemetry tracing and metrics for fixture
// runs: one span per fixture load and per iteration, plus counters for
// objects created and flushes issued.
//
//	tel := observability.NewTelemetry(cfg.Telemetry, log)
//	registry.Register(tel) // installs global providers on Start
//
//	metrics, err := observability.NewFixtureMetrics(observability.Meter(name))
//	metrics.RecordIteration(ctx, "user", "count", 10, elapsed, err)
package observability
