package fixture

import (
	"context"

	"github.com/gosimple/slug"

	"github.com/kbukum/fixturekit/di"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/logger"
)

// DefaultOrder is the load order of a fixture that does not override Order.
const DefaultOrder = 0

// Fixture is one unit of fixture data.
type Fixture interface {
	// Bind hands the fixture its run environment and manager before DoLoad.
	Bind(env *Env, m Manager)
	// Order positions the fixture in the load sequence, lowest first.
	Order() int
	// DoLoad creates the fixture's objects.
	DoLoad(ctx context.Context) error
}

// Base supplies the Fixture plumbing; embed it and override Order and DoLoad.
type Base struct {
	env     *Env
	manager Manager
}

var _ Fixture = (*Base)(nil)

// Bind sets the environment and manager.
func (b *Base) Bind(env *Env, m Manager) {
	b.env = env
	b.manager = m
}

// Order returns DefaultOrder.
func (b *Base) Order() int { return DefaultOrder }

// DoLoad does nothing.
func (b *Base) DoLoad(context.Context) error { return nil }

// Env returns the bound environment, or nil before Bind.
func (b *Base) Env() *Env { return b.env }

// Manager returns the bound manager.
func (b *Base) Manager() Manager { return b.manager }

// Faker returns the run's random source.
func (b *Base) Faker() Faker { return b.env.Faker }

// Container returns the run's service container.
func (b *Base) Container() di.Container { return b.env.Container }

// Logger returns the run's fixture logger.
func (b *Base) Logger() *logger.Logger { return b.env.Logger }

// Persist hands obj to the manager without registering it.
func (b *Base) Persist(ctx context.Context, obj any) error {
	if b.manager == nil {
		return errNoManager()
	}
	return b.manager.Persist(ctx, obj)
}

// Flush flushes the manager.
func (b *Base) Flush(ctx context.Context) error {
	if b.manager == nil {
		return errNoManager()
	}
	return b.manager.Flush(ctx)
}

// Slugify turns s into a lowercase, dash separated URL slug.
func (b *Base) Slugify(s string) string {
	return slug.Make(s)
}

// All returns the objects registered under name in index order.
func (b *Base) All(name string) ([]any, error) {
	env, err := b.bound()
	if err != nil {
		return nil, err
	}
	return env.Store.All(name)
}

// Random returns one object registered under name, chosen uniformly.
func (b *Base) Random(name string) (any, error) {
	env, err := b.bound()
	if err != nil {
		return nil, err
	}
	return env.Store.Random(name, env.Faker)
}

// SetReference stores obj under key, replacing any previous object.
func (b *Base) SetReference(key string, obj any) error {
	env, err := b.bound()
	if err != nil {
		return err
	}
	return env.Store.Set(key, obj)
}

// AddReference stores obj under key and fails if key is taken.
func (b *Base) AddReference(key string, obj any) error {
	env, err := b.bound()
	if err != nil {
		return err
	}
	return env.Store.Add(key, obj)
}

// Reference returns the object stored under key.
func (b *Base) Reference(key string) (any, error) {
	env, err := b.bound()
	if err != nil {
		return nil, err
	}
	obj, ok := env.Store.Lookup(key)
	if !ok {
		return nil, errors.NotFound("reference", key)
	}
	return obj, nil
}

// HasReference reports whether anything is stored under key.
func (b *Base) HasReference(key string) bool {
	if b.env == nil {
		return false
	}
	_, ok := b.env.Store.Lookup(key)
	return ok
}

func (b *Base) bound() (*Env, error) {
	if b.env == nil {
		return nil, errors.New(errors.ErrCodeInternal, "fixture is not bound to an environment")
	}
	return b.env, nil
}

func errNoManager() error {
	return errors.New(errors.ErrCodeInternal, "fixture has no manager")
}
