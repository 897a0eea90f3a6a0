package fixture

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/observability"
)

// Step is what a producer receives on each call.
type Step struct {
	// Position is the 1-based call number.
	Position int
	// Index is the store index: of the object about to be registered in
	// count mode, of Object in replay mode.
	Index int
	// Object is the stored object being replayed. Nil in count mode.
	Object any
}

// Producer builds one object per call. In replay mode its result is ignored.
type Producer func(ctx context.Context, step Step) (any, error)

// Iterate runs produce as sel directs, then flushes the manager once.
//
// In count mode produce runs for positions 1..n. When sel carries a
// reference name every result is registered under it, persisted, and
// followed by a flush with probability Env.FlushProbability. In replay mode
// produce runs once per object registered under the name, in index order.
//
// An invalid selector fails before anything runs. A producer or manager
// error stops the iteration and is returned as is; the final flush is
// skipped in that case.
func (b *Base) Iterate(ctx context.Context, sel Selector, produce Producer) error {
	if err := sel.validate(); err != nil {
		return err
	}
	if produce == nil {
		return errors.InvalidInput("producer", "producer must not be nil")
	}
	env, err := b.bound()
	if err != nil {
		return err
	}

	ctx, span := env.Tracer.Start(ctx, observability.SpanIteration, trace.WithAttributes(
		attribute.String(observability.AttrReference, sel.Reference()),
		attribute.String(observability.AttrMode, sel.Mode()),
	))

	start := time.Now()
	env.logStart(startMessage(sel), logger.Fields(
		logger.FieldReference, sel.Reference(),
		"mode", sel.Mode(),
	))

	var n int
	if sel.IsReplay() {
		n, err = b.replay(ctx, sel.Reference(), produce)
	} else {
		n, err = b.count(ctx, sel, produce)
	}

	elapsed := time.Since(start)
	endFields := logger.Fields(
		logger.FieldReference, sel.Reference(),
		"mode", sel.Mode(),
		"count", n,
		"elapsed", formatElapsed(elapsed),
	)
	if err != nil {
		endFields[logger.FieldError] = err.Error()
	}
	env.logEnd(endMessage(sel, n, elapsed), endFields)

	if err == nil {
		err = b.flush(ctx, sel.Reference(), true)
	}

	span.SetAttributes(attribute.Int(observability.AttrCount, n))
	observability.EndSpan(span, err)
	env.Metrics.RecordIteration(ctx, sel.Reference(), sel.Mode(), elapsed, err)
	return err
}

// Create runs produce n times and registers the results under ref.
func (b *Base) Create(ctx context.Context, n int, ref string, produce Producer) error {
	return b.Iterate(ctx, Count(n).As(ref), produce)
}

// Each calls visit with every object registered under ref, in index order.
func (b *Base) Each(ctx context.Context, ref string, visit func(ctx context.Context, obj any) error) error {
	if visit == nil {
		return errors.InvalidInput("producer", "visitor must not be nil")
	}
	return b.Iterate(ctx, Replay(ref), func(ctx context.Context, s Step) (any, error) {
		return nil, visit(ctx, s.Object)
	})
}

func (b *Base) count(ctx context.Context, sel Selector, produce Producer) (int, error) {
	env := b.env
	ref := sel.Reference()
	if ref != "" {
		env.Store.declare(ref)
	}

	for pos := 1; pos <= sel.N(); pos++ {
		step := Step{Position: pos}
		if ref != "" {
			step.Index, _ = env.Store.Count(ref)
		}

		obj, err := produce(ctx, step)
		if err != nil {
			return pos - 1, err
		}
		if ref == "" {
			continue
		}
		if obj == nil {
			return pos - 1, errors.InvalidInput("object",
				fmt.Sprintf("producer returned nil at position %d for reference %q", pos, ref)).
				WithDetail("reference", ref)
		}

		if _, err := env.Store.register(ref, obj); err != nil {
			return pos - 1, err
		}
		env.Metrics.RecordObject(ctx, ref)

		if b.manager == nil {
			continue
		}
		if err := b.manager.Persist(ctx, obj); err != nil {
			return pos, err
		}
		if env.Faker.Chance(env.FlushProbability) {
			if err := b.flush(ctx, ref, false); err != nil {
				return pos, err
			}
		}
	}
	return sel.N(), nil
}

// replay visits the counted objects of name, or walks name-0, name-1, ...
// until the first missing key when name only holds named references.
func (b *Base) replay(ctx context.Context, name string, produce Producer) (int, error) {
	limit, counted := b.env.Store.Count(name)
	for idx := 0; !counted || idx < limit; idx++ {
		obj, ok := b.env.Store.At(name, idx)
		if !ok {
			return idx, nil
		}
		if _, err := produce(ctx, Step{Position: idx + 1, Index: idx, Object: obj}); err != nil {
			return idx, err
		}
	}
	return limit, nil
}

func (b *Base) flush(ctx context.Context, ref string, final bool) error {
	if b.manager == nil {
		return nil
	}
	if err := b.manager.Flush(ctx); err != nil {
		return err
	}
	b.env.Metrics.RecordFlush(ctx, ref, final)
	return nil
}

func startMessage(sel Selector) string {
	if sel.IsReplay() {
		return fmt.Sprintf(`Iterating through all the "%s" references`, sel.Reference())
	}
	return fmt.Sprintf(`Iteration for %d records having reference "%s".`, sel.N(), sel.Reference())
}

func endMessage(sel Selector, n int, elapsed time.Duration) string {
	if sel.IsReplay() {
		return fmt.Sprintf(`Iteration for all "%d" records having reference "%s" and it lasted "%s".`,
			n, sel.Reference(), formatElapsed(elapsed))
	}
	return fmt.Sprintf(`Iteration for "%d" records having reference "%s" and it lasted "%s".`,
		n, sel.Reference(), formatElapsed(elapsed))
}

// formatElapsed renders seconds with five decimals.
func formatElapsed(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 5, 64)
}
