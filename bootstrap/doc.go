// Package bootstrap runs fixturekit commands: typed configuration, component
// registration, dependency injection, lifecycle hooks and a run summary.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(db)
//	return app.RunTask(ctx, load)
//
// RunTask starts components in registration order, runs the task, prints
// the summary and stops components in reverse order. SIGINT and SIGTERM
// cancel the task context.
package bootstrap
