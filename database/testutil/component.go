package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/kbukum/fixturekit/component"
	"github.com/kbukum/fixturekit/database"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/testutil"
)

var dbSeq atomic.Int64

// Component is a test database backed by a private in-memory SQLite database.
type Component struct {
	db      *database.DB
	models  []interface{}
	log     *logger.Logger
	started bool
	mu      sync.RWMutex
}

var (
	_ component.Component    = (*Component)(nil)
	_ testutil.TestComponent = (*Component)(nil)
)

// NewComponent creates a new test database component.
func NewComponent() *Component {
	return &Component{log: logger.NewNop()}
}

// WithModels registers models for auto-migration on Start.
func (c *Component) WithModels(models ...interface{}) *Component {
	c.models = append(c.models, models...)
	return c
}

// WithLogger routes database logging through log.
func (c *Component) WithLogger(log *logger.Logger) *Component {
	c.log = log
	return c
}

// DB returns the underlying *database.DB, or nil if not started.
func (c *Component) DB() *database.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Gorm returns the raw GORM handle, or nil if not started.
func (c *Component) Gorm() *gorm.DB {
	if db := c.DB(); db != nil {
		return db.GormDB
	}
	return nil
}

// Name returns the component name.
func (c *Component) Name() string { return "database-test" }

// Start opens a fresh, uniquely named in-memory database.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}

	cfg := database.Config{
		Enabled:    true,
		Driver:     database.DriverSQLite,
		DSN:        fmt.Sprintf("file:fixturekit_test_%d?mode=memory&cache=shared", dbSeq.Add(1)),
		MaxRetries: 1,
		LogLevel:   "silent",
	}
	db, err := database.Open(ctx, cfg, c.log)
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	c.db = db
	c.started = true

	if len(c.models) > 0 {
		if err := c.db.AutoMigrate(c.models...); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
	}
	return nil
}

// Stop closes the database; the in-memory data is discarded.
func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.db == nil {
		return nil
	}
	c.started = false
	return c.db.Close()
}

// Health returns the health status of the test database.
func (c *Component) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.db == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "database not started"}
	}
	if err := c.db.PingContext(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("ping failed: %v", err)}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Reset clears all rows while preserving the schema.
func (c *Component) Reset(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.started || c.db == nil {
		return fmt.Errorf("component not started")
	}
	_, err := c.db.Purge(ctx)
	return err
}
