package main

import (
	"fmt"

	"github.com/kbukum/fixturekit/config"
	"github.com/kbukum/fixturekit/database"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/observability"
	"github.com/kbukum/fixturekit/validation"
)

// AppConfig is the configuration of the fixtures command.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Database  database.Config      `yaml:"database" mapstructure:"database"`
	Fixtures  FixturesConfig       `yaml:"fixtures" mapstructure:"fixtures"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// FixturesConfig controls a load run.
type FixturesConfig struct {
	// FlushProbability is the chance of an intermediate flush after each
	// persisted object. Unset means fixture.DefaultFlushProbability.
	FlushProbability *float64 `yaml:"flush_probability" mapstructure:"flush_probability" validate:"omitempty,gte=0,lte=1"`

	// Seed makes a run reproducible. Zero picks a random seed.
	Seed int64 `yaml:"seed" mapstructure:"seed"`

	// Append keeps existing rows instead of purging every table first.
	Append bool `yaml:"append" mapstructure:"append"`

	// HasherCost is the bcrypt cost of the demo user passwords.
	HasherCost int `yaml:"hasher_cost" mapstructure:"hasher_cost" validate:"omitempty,gte=4,lte=31"`
}

// ApplyDefaults fills zero-valued fields of every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "fixtures"
	}
	c.ServiceConfig.ApplyDefaults()

	c.Database.Enabled = true
	c.Database.ApplyDefaults()
	c.Telemetry.ApplyDefaults()

	if c.Fixtures.FlushProbability == nil {
		p := fixture.DefaultFlushProbability
		c.Fixtures.FlushProbability = &p
	}
	if c.Fixtures.HasherCost == 0 {
		c.Fixtures.HasherCost = 10
	}
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	return validation.Validate(c)
}
