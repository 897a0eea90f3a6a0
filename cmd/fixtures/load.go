package main

import (
	"context"

	"github.com/kbukum/fixturekit/bootstrap"
	"github.com/kbukum/fixturekit/database"
	"github.com/kbukum/fixturekit/demo"
	"github.com/kbukum/fixturekit/fakedata"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/observability"
)

// load runs the demo fixtures against db and fills the run summary.
func load(ctx context.Context, app *bootstrap.App[*AppConfig], db *database.DB) error {
	cfg := app.Cfg.Fixtures

	metrics, err := observability.NewFixtureMetrics(observability.Meter())
	if err != nil {
		return err
	}
	faker := fakedata.New(cfg.Seed)
	app.Summary.SetSeed(faker.Seed())
	app.Logger.Info("Fake data seed", logger.Fields("seed", faker.Seed()))

	env := fixture.NewEnv(
		fixture.WithFaker(faker),
		fixture.WithContainer(app.Container),
		fixture.WithLogger(app.Logger),
		fixture.WithTracer(observability.Tracer()),
		fixture.WithMetrics(metrics),
		fixture.WithFlushProbability(*cfg.FlushProbability),
	)

	loader := fixture.NewLoader(env)
	if err := loader.Add(demo.Fixtures()...); err != nil {
		return err
	}

	uow := database.NewUnitOfWork(db)
	results, err := loader.Load(ctx, uow)
	for _, r := range results {
		app.Summary.TrackFixture(r.Name, r.Order, r.Duration)
	}
	if err != nil {
		return err
	}

	for _, name := range env.Store.Names() {
		n, _ := env.Store.Count(name)
		app.Summary.TrackReference(name, n)
	}
	app.Logger.Info("Fixtures loaded", logger.Fields(
		"fixtures", len(results),
		"rows", uow.Written(),
		"flushes", uow.Flushes(),
		"seed", faker.Seed(),
	))
	return nil
}
