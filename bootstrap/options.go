package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/fixturekit/di"
	"github.com/kbukum/fixturekit/logger"
)

// Option configures the App during creation.
// Options are non-generic so they work with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	container       di.Container
	gracefulTimeout *time.Duration
	output          io.Writer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. Without it the logger is initialized
// from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithGracefulTimeout bounds the shutdown sequence.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) { o.gracefulTimeout = &d }
}

// WithContainer sets a custom DI container.
func WithContainer(c di.Container) Option {
	return func(o *appOptions) { o.container = c }
}

// WithOutput redirects the run summary, which goes to stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) { o.output = w }
}
