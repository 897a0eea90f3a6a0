package fixture

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fixturekit/di"
	"github.com/kbukum/fixturekit/fakedata"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/observability"
)

// DefaultFlushProbability is the chance of an intermediate flush after
// each persisted object.
const DefaultFlushProbability = 0.05

// Manager is the persistence collaborator objects are handed to.
type Manager interface {
	Persist(ctx context.Context, obj any) error
	Flush(ctx context.Context) error
}

// Faker is the random source behind flush decisions and Random.
type Faker interface {
	// Chance returns true with probability p.
	Chance(p float64) bool
	// Number returns an int in [min, max].
	Number(min, max int) int
}

// Env is the state shared by every fixture of one load run.
type Env struct {
	Store            *Store
	Faker            Faker
	Container        di.Container
	Logger           *logger.Logger
	Tracer           trace.Tracer
	Metrics          *observability.FixtureMetrics
	FlushProbability float64

	depth int
}

// Option configures an Env.
type Option func(*Env)

// WithFaker sets the random source.
func WithFaker(f Faker) Option {
	return func(e *Env) { e.Faker = f }
}

// WithSeed uses a gofakeit generator seeded with seed. Zero picks a random seed.
func WithSeed(seed int64) Option {
	return func(e *Env) { e.Faker = fakedata.New(seed) }
}

// WithContainer sets the service container fixtures resolve collaborators from.
func WithContainer(c di.Container) Option {
	return func(e *Env) { e.Container = c }
}

// WithLogger sets the logger iteration lines are written to.
func WithLogger(l *logger.Logger) Option {
	return func(e *Env) { e.Logger = l }
}

// WithTracer sets the tracer used for load and iteration spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Env) { e.Tracer = t }
}

// WithMetrics sets the metric instruments. Nil disables metrics.
func WithMetrics(m *observability.FixtureMetrics) Option {
	return func(e *Env) { e.Metrics = m }
}

// WithFlushProbability sets the intermediate flush probability.
func WithFlushProbability(p float64) Option {
	return func(e *Env) { e.FlushProbability = p }
}

// NewEnv creates the environment for one load run.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		Store:            NewStore(),
		FlushProbability: DefaultFlushProbability,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Faker == nil {
		e.Faker = fakedata.New(0)
	}
	if e.Container == nil {
		e.Container = di.NewContainer()
	}
	if e.Logger == nil {
		e.Logger = logger.GetGlobalLogger()
	}
	e.Logger = e.Logger.WithComponent("fixture")
	if e.Tracer == nil {
		e.Tracer = observability.Tracer()
	}
	return e
}

// Depth returns the current nesting depth of iteration log lines.
func (e *Env) Depth() int { return e.depth }

// logStart writes a start line at the current depth and nests one level.
func (e *Env) logStart(msg string, fields map[string]interface{}) {
	e.logLine("[Start] ", msg, fields)
	e.depth++
}

// logEnd un-nests one level and writes an end line.
func (e *Env) logEnd(msg string, fields map[string]interface{}) {
	if e.depth > 0 {
		e.depth--
	}
	e.logLine("[End] ", msg, fields)
}

func (e *Env) logLine(tag, msg string, fields map[string]interface{}) {
	fields["depth"] = e.depth
	e.Logger.Info(fmt.Sprintf("%s%s : %s", strings.Repeat("\t", e.depth), tag, msg), fields)
}
