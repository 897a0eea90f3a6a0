package component_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/fixturekit/component"
	"github.com/kbukum/fixturekit/database"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/observability"
)

// The summary's infrastructure lines come from the real components.
func TestRegistryDescribesRunComponents(t *testing.T) {
	log := logger.NewNop()
	tel := observability.NewTelemetry(observability.Config{}, "fixtures", "dev", "test", log)
	db := database.NewComponent(database.Config{
		Enabled:     true,
		AutoMigrate: true,
		DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, log)

	r := component.NewRegistry(log)
	for _, c := range []component.Component{tel, db} {
		if err := r.Register(c); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	t.Cleanup(func() { r.StopAll(context.Background()) })

	got := r.Describe()
	want := []component.Description{
		{Name: "Telemetry", Type: "telemetry", Details: "disabled"},
		{Name: "Database", Type: "database", Details: "sqlite pool=1/1 auto-migrate=on"},
	}
	if len(got) != len(want) {
		t.Fatalf("Describe = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("description %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	for _, h := range r.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			t.Errorf("%s is %s: %s", h.Name, h.Status, h.Message)
		}
	}
}
