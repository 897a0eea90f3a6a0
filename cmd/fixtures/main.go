// Command fixtures fills a database with the demo fixtures.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/fixturekit/bootstrap"
	"github.com/kbukum/fixturekit/config"
	"github.com/kbukum/fixturekit/database"
	"github.com/kbukum/fixturekit/database/migration"
	"github.com/kbukum/fixturekit/demo"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/observability"
	"github.com/kbukum/fixturekit/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fixtures: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	set         *pflag.FlagSet
	configFile  string
	envFile     string
	append      bool
	seed        int64
	flushProb   float64
	dsn         string
	driver      string
	showVersion bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: pflag.NewFlagSet("fixtures", pflag.ContinueOnError)}
	f.set.StringVarP(&f.configFile, "config", "c", "", "config file (default: search cmd/fixtures/config.yml, config.yml)")
	f.set.StringVar(&f.envFile, "env", "", ".env file loaded before environment overrides")
	f.set.BoolVar(&f.append, "append", false, "keep existing rows instead of purging all tables")
	f.set.Int64Var(&f.seed, "seed", 0, "fake data seed, 0 picks a random one")
	f.set.Float64Var(&f.flushProb, "flush-probability", 0, "chance of an intermediate flush after each object (0..1)")
	f.set.StringVar(&f.dsn, "dsn", "", "database DSN")
	f.set.StringVar(&f.driver, "driver", "", "database driver: sqlite or postgres")
	f.set.BoolVarP(&f.showVersion, "version", "v", false, "print the version and exit")
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply copies the flags that were given onto cfg.
func (f *flags) apply(cfg *AppConfig) {
	if f.set.Changed("append") {
		cfg.Fixtures.Append = f.append
	}
	if f.set.Changed("seed") {
		cfg.Fixtures.Seed = f.seed
	}
	if f.set.Changed("flush-probability") {
		p := f.flushProb
		cfg.Fixtures.FlushProbability = &p
	}
	if f.set.Changed("dsn") {
		cfg.Database.DSN = f.dsn
	}
	if f.set.Changed("driver") {
		cfg.Database.Driver = f.driver
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.showVersion {
		fmt.Fprintf(stdout, "fixtures %s\n", version.Get())
		return nil
	}

	var cfg AppConfig
	opts := []config.LoaderOption{config.WithEnvPrefix("FIXTURES")}
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	if err := config.LoadConfig("fixtures", &cfg, opts...); err != nil {
		return err
	}
	f.apply(&cfg)
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(&cfg, bootstrap.WithOutput(stdout))
	if err != nil {
		return err
	}

	telemetry := observability.NewTelemetry(cfg.Telemetry, cfg.Name, cfg.Version, cfg.Environment, app.Logger)
	db := database.NewComponent(cfg.Database, app.Logger).WithAutoMigrate(demo.Models()...)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}
	if err := app.RegisterComponent(db); err != nil {
		return err
	}

	if dir := cfg.Database.MigrationsDir; dir != "" {
		app.OnStart(func(ctx context.Context) error {
			app.Logger.Info("Running migrations", logger.Fields("dir", dir))
			return migration.MigrateUp(db.DB().GormDB, os.DirFS(dir), ".", migration.DriverFor(cfg.Database.Driver))
		})
	}
	if !cfg.Fixtures.Append {
		app.OnStart(func(ctx context.Context) error {
			tables, err := db.DB().Purge(ctx)
			if err != nil {
				return err
			}
			app.Logger.Info("Purged tables", logger.Fields("tables", tables))
			return nil
		})
	}
	if err := demo.RegisterServices(app.Container, cfg.Fixtures.HasherCost); err != nil {
		return err
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		return load(ctx, app, db.DB())
	})
}
