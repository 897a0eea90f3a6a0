package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kbukum/fixturekit/demo"
	"github.com/kbukum/fixturekit/errors"
)

var runSeq atomic.Int64

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func memoryDSN() string {
	return fmt.Sprintf("file:fixtures_cmd_%d?mode=memory&cache=shared", runSeq.Add(1))
}

const testConfigYAML = `
name: fixtures
environment: test
logging:
  level: error
  format: json
database:
  auto_migrate: true
fixtures:
  hasher_cost: 4
`

func TestRunLoadsDemoFixtures(t *testing.T) {
	var out bytes.Buffer
	args := []string{
		"--config", writeConfig(t, testConfigYAML),
		"--dsn", memoryDSN(),
		"--seed", "11",
		"--flush-probability", "0.5",
	}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	summary := out.String()
	for _, want := range []string{
		"UserFixture",
		"PostFixture",
		"CommentFixture",
		fmt.Sprintf("%-24s %d", demo.RefUser, demo.UserCount),
		fmt.Sprintf("%-24s %d", demo.RefPost, demo.PostCount),
		"Database [database]: sqlite pool=1/1 auto-migrate=on",
		"Telemetry [telemetry]: disabled",
		"Seed: 11 (repeat with --seed 11)",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestRunReportsRandomSeed(t *testing.T) {
	var out bytes.Buffer
	args := []string{"--config", writeConfig(t, testConfigYAML), "--dsn", memoryDSN()}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var seed int64
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "Seed: ") {
			fmt.Sscanf(line, "Seed: %d", &seed)
		}
	}
	if seed == 0 {
		t.Errorf("summary should report the seed picked for a random run:\n%s", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"--version"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "fixtures ") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestRunRejectsBadFlushProbability(t *testing.T) {
	args := []string{
		"--config", writeConfig(t, testConfigYAML),
		"--dsn", memoryDSN(),
		"--flush-probability", "1.5",
	}
	err := run(context.Background(), args, &bytes.Buffer{})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("run() = %v, want a validation error", err)
	}
	if !strings.Contains(err.Error(), "fixtures.flush_probability") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	if err := run(context.Background(), []string{"--nope"}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	f, err := parseFlags([]string{"--append", "--seed=5", "--driver", "postgres", "--dsn", "postgres://x"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	p := 0.3
	cfg := AppConfig{}
	cfg.Fixtures.FlushProbability = &p
	f.apply(&cfg)

	if !cfg.Fixtures.Append || cfg.Fixtures.Seed != 5 {
		t.Errorf("fixtures = %+v", cfg.Fixtures)
	}
	if *cfg.Fixtures.FlushProbability != 0.3 {
		t.Error("an unset flag must not override the config")
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://x" {
		t.Errorf("database = %+v", cfg.Database)
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Name != "fixtures" || !cfg.Database.Enabled {
		t.Errorf("unexpected defaults %+v", cfg.ServiceConfig)
	}
	if *cfg.Fixtures.FlushProbability != 0.05 {
		t.Errorf("flush probability = %v", *cfg.Fixtures.FlushProbability)
	}
	if cfg.Fixtures.HasherCost != 10 {
		t.Errorf("hasher cost = %d", cfg.Fixtures.HasherCost)
	}
}
