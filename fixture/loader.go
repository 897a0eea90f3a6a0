package fixture

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/observability"
)

// Load binds f to env and m, then runs its DoLoad.
func Load(ctx context.Context, f Fixture, env *Env, m Manager) error {
	if f == nil {
		return errors.InvalidInput("fixture", "fixture must not be nil")
	}
	if env == nil {
		return errors.InvalidInput("env", "environment must not be nil")
	}

	name := Name(f)
	ctx, span := env.Tracer.Start(ctx, observability.SpanFixtureLoad, trace.WithAttributes(
		attribute.String(observability.AttrFixture, name),
		attribute.Int(observability.AttrOrder, f.Order()),
	))

	f.Bind(env, m)
	err := f.DoLoad(ctx)

	observability.EndSpan(span, err)
	env.Metrics.RecordLoad(ctx, name, err)
	return err
}

// Name returns the type name of f without package or pointer.
func Name(f Fixture) string {
	t := reflect.TypeOf(f)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Result describes one loaded fixture.
type Result struct {
	Name     string
	Order    int
	Duration time.Duration
}

// Loader runs fixtures in order against one environment.
type Loader struct {
	env      *Env
	fixtures []Fixture
	types    map[reflect.Type]struct{}
}

// NewLoader creates a loader for env.
func NewLoader(env *Env) *Loader {
	return &Loader{env: env, types: make(map[reflect.Type]struct{})}
}

// Add queues fixtures. A fixture type can be added only once.
func (l *Loader) Add(fixtures ...Fixture) error {
	for _, f := range fixtures {
		if f == nil {
			return errors.InvalidInput("fixture", "fixture must not be nil")
		}
		t := reflect.TypeOf(f)
		if _, dup := l.types[t]; dup {
			return errors.AlreadyExists("fixture", Name(f))
		}
		l.types[t] = struct{}{}
		l.fixtures = append(l.fixtures, f)
	}
	return nil
}

// Fixtures returns the queued fixtures in load order: ascending Order,
// ties in the order they were added.
func (l *Loader) Fixtures() []Fixture {
	out := make([]Fixture, len(l.fixtures))
	copy(out, l.fixtures)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order() < out[j].Order()
	})
	return out
}

// Load runs every fixture once, in load order, stopping at the first error.
// The results of the fixtures that completed are returned either way.
func (l *Loader) Load(ctx context.Context, m Manager) ([]Result, error) {
	log := l.env.Logger
	fixtures := l.Fixtures()
	results := make([]Result, 0, len(fixtures))

	for _, f := range fixtures {
		name := Name(f)
		log.Info(fmt.Sprintf("> loading %s", name), logger.Fields(
			logger.FieldFixture, name,
			"order", f.Order(),
		))

		start := time.Now()
		if err := Load(ctx, f, l.env, m); err != nil {
			log.Error("fixture failed", logger.Fields(
				logger.FieldFixture, name,
				logger.FieldError, err.Error(),
			))
			return results, fmt.Errorf("load %s: %w", name, err)
		}

		res := Result{Name: name, Order: f.Order(), Duration: time.Since(start)}
		results = append(results, res)
		log.Debug("fixture loaded", logger.DurationFields(name, res.Duration))
	}
	return results, nil
}
