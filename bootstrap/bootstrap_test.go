package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fixturekit/component"
	"github.com/kbukum/fixturekit/config"
	"github.com/kbukum/fixturekit/di"
	"github.com/kbukum/fixturekit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	desc     *component.Description
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	if m.health.Name == "" {
		return component.Health{Name: m.name, Status: component.StatusHealthy}
	}
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() component.Description { return *d.desc }

func newTestApp(t *testing.T, opts ...Option) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{
		Name:        "fixtures",
		Version:     "1.0.0",
		Environment: "test",
	}}
	opts = append([]Option{WithLogger(logger.NewNop()), WithOutput(&out)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, &out
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Name != "fixtures" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Container == nil || app.Components == nil || app.Logger == nil || app.Summary == nil {
		t.Error("expected container, registry, logger and summary to be set")
	}
	if app.Cfg.Name != "fixtures" {
		t.Errorf("expected typed cfg, got %q", app.Cfg.Name)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("default timeout = %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Environment: "development"}}
	if _, err := NewApp(cfg); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestNewAppWithOptions(t *testing.T) {
	container := di.NewContainer()
	app, _ := newTestApp(t, WithGracefulTimeout(30*time.Second), WithContainer(container))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
	if app.Container != container {
		t.Error("expected custom container")
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.RegisterComponent(&mockComponent{name: "database"}); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}
	if app.Components.Get("database") == nil {
		t.Error("expected component to be registered")
	}
	if err := app.RegisterComponent(&mockComponent{name: "database"}); err == nil {
		t.Error("expected error for duplicate component registration")
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded", component.StatusDegraded, true},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			app.RegisterComponent(&mockComponent{
				name:   "database",
				health: component.Health{Name: "database", Status: tc.status, Message: "ping"},
			})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("ReadyCheck() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	app, out := newTestApp(t)
	c := &mockComponent{name: "database"}
	app.RegisterComponent(c)

	var order []string
	app.OnStart(func(context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		order = append(order, "configure")
		return nil
	})
	app.OnStop(func(context.Context) error {
		order = append(order, "stop")
		return nil
	})

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if !c.started {
			t.Error("component should be started before the task runs")
		}
		order = append(order, "task")
		app.Summary.TrackFixture("UserFixture", 10, time.Millisecond)
		app.Summary.TrackReference("user", 10)
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !c.stopped {
		t.Error("component should be stopped after the task")
	}
	if got := strings.Join(order, ","); got != "start,configure,task,stop" {
		t.Errorf("order = %s", got)
	}
	for _, want := range []string{"fixtures v1.0.0 finished", "UserFixture", "user", "10 objects in 1 groups", "database: healthy"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunTaskErrors(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name  string
		setup func(app *App[*testConfig])
		task  func(context.Context) error
		want  string
	}{
		{
			name: "task error",
			task: func(context.Context) error { return errBoom },
			want: "boom",
		},
		{
			name:  "component start error",
			setup: func(app *App[*testConfig]) { app.RegisterComponent(&mockComponent{name: "db", startErr: errBoom}) },
			want:  "initialization failed",
		},
		{
			name: "start hook error",
			setup: func(app *App[*testConfig]) {
				app.OnStart(func(context.Context) error { return errBoom })
			},
			want: "onStart hook failed",
		},
		{
			name: "configure error",
			setup: func(app *App[*testConfig]) {
				app.OnConfigure(func(context.Context, *App[*testConfig]) error { return errBoom })
			},
			want: "configuration failed",
		},
		{
			name: "stop hook error",
			setup: func(app *App[*testConfig]) {
				app.OnStop(func(context.Context) error { return errBoom })
			},
			want: "hook 0 failed",
		},
		{
			name:  "component stop error",
			setup: func(app *App[*testConfig]) { app.RegisterComponent(&mockComponent{name: "db", stopErr: errBoom}) },
			want:  "shutdown errors",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app, out := newTestApp(t)
			if tc.setup != nil {
				tc.setup(app)
			}
			task := tc.task
			if task == nil {
				task = func(context.Context) error { return nil }
			}
			err := app.RunTask(context.Background(), task)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("RunTask() = %v, want error containing %q", err, tc.want)
			}
			if tc.task != nil && out.Len() != 0 {
				t.Errorf("summary should not be shown after a failed task:\n%s", out.String())
			}
		})
	}
}

func TestRunTaskTaskErrorWinsOverStopError(t *testing.T) {
	app, _ := newTestApp(t)
	app.RegisterComponent(&mockComponent{name: "db", stopErr: errors.New("stop")})
	errTask := errors.New("task")
	if err := app.RunTask(context.Background(), func(context.Context) error { return errTask }); err != errTask {
		t.Errorf("RunTask() = %v, want the task error", err)
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	err := app.RunTask(ctx, func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunTask() = %v, want context.Canceled", err)
	}
}

func TestSummaryDisplay(t *testing.T) {
	var out bytes.Buffer
	s := NewSummary("fixtures", "dev")
	s.SetOutput(&out)
	s.SetDuration(1500 * time.Millisecond)
	s.SetSeed(42)
	s.TrackFixture("UserFixture", 10, 2*time.Millisecond)
	s.TrackFixture("PostFixture", 20, 3*time.Millisecond)
	s.TrackReference("post", 30)
	s.TrackReference("user", 10)

	reg := component.NewRegistry(logger.NewNop())
	reg.Register(&describedComponent{mockComponent{
		name: "database",
		desc: &component.Description{Type: "database", Details: "sqlite pool=1/1"},
	}})
	s.Display(context.Background(), reg)

	got := out.String()
	for _, want := range []string{
		"finished in 1.50s",
		"Seed: 42 (repeat with --seed 42)",
		"└── database [database]: sqlite pool=1/1",
		"├── UserFixture",
		"└── PostFixture",
		"40 objects in 2 groups",
		"✅ database: healthy",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if len(s.Fixtures()) != 2 || len(s.References()) != 2 {
		t.Errorf("tracked %d fixtures, %d references", len(s.Fixtures()), len(s.References()))
	}
}

func TestSummaryDisplayEmpty(t *testing.T) {
	var out bytes.Buffer
	s := NewSummary("fixtures", "dev")
	s.SetOutput(&out)
	s.Display(context.Background(), nil)
	if !strings.Contains(out.String(), "No fixtures loaded") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Seed:") {
		t.Errorf("no seed line expected without a seed:\n%s", out.String())
	}
}

func TestHealthStatusIcon(t *testing.T) {
	tests := []struct {
		status component.HealthStatus
		want   string
	}{
		{component.StatusHealthy, "✅"},
		{component.StatusDegraded, "⚠️"},
		{component.StatusUnhealthy, "❌"},
		{"unknown", "❓"},
	}
	for _, tc := range tests {
		if got := healthStatusIcon(tc.status); got != tc.want {
			t.Errorf("healthStatusIcon(%s) = %q, want %q", tc.status, got, tc.want)
		}
	}
}
