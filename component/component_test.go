package component

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/fixturekit/logger"
)

// stubComponent records lifecycle calls into a shared journal.
type stubComponent struct {
	name     string
	startErr error
	stopErr  error
	status   HealthStatus
	journal  *[]string
}

func (s *stubComponent) Name() string { return s.name }

func (s *stubComponent) Start(context.Context) error {
	s.record("start")
	return s.startErr
}

func (s *stubComponent) Stop(context.Context) error {
	s.record("stop")
	return s.stopErr
}

func (s *stubComponent) Health(context.Context) Health {
	return Health{Name: s.name, Status: s.status}
}

func (s *stubComponent) record(event string) {
	if s.journal != nil {
		*s.journal = append(*s.journal, event+":"+s.name)
	}
}

type describedStub struct {
	stubComponent
	desc Description
}

func (d *describedStub) Describe() Description { return d.desc }

func newTestRegistry(t *testing.T, comps ...Component) *Registry {
	t.Helper()
	r := NewRegistry(logger.NewNop())
	for _, c := range comps {
		if err := r.Register(c); err != nil {
			t.Fatalf("Register(%s) failed: %v", c.Name(), err)
		}
	}
	return r
}

func TestRegistryLookup(t *testing.T) {
	db := &stubComponent{name: "database"}
	r := newTestRegistry(t, db)

	if r.Get("database") != db {
		t.Error("Get should return the registered component")
	}
	if r.Get("telemetry") != nil {
		t.Error("Get should return nil for unknown names")
	}
	if err := r.Register(&stubComponent{name: "database"}); err == nil ||
		!strings.Contains(err.Error(), "already registered") {
		t.Errorf("duplicate Register = %v", err)
	}
	if NewRegistry(nil) == nil {
		t.Error("a nil logger should fall back to the global one")
	}
}

func TestRegistryLifecycle(t *testing.T) {
	tests := []struct {
		name        string
		startErr    error
		stopErr     error
		wantJournal []string
		wantStart   string
		wantStop    string
	}{
		{
			name: "starts in order and stops in reverse",
			wantJournal: []string{
				"start:telemetry", "start:database", "start:loader",
				"stop:loader", "stop:database", "stop:telemetry",
			},
		},
		{
			name:     "start failure stops the sequence and only started components stop",
			startErr: fmt.Errorf("connection refused"),
			wantJournal: []string{
				"start:telemetry", "start:database",
				"stop:telemetry",
			},
			wantStart: "failed to start database: connection refused",
		},
		{
			name:    "stop failure is reported after every stop ran",
			stopErr: fmt.Errorf("close failed"),
			wantJournal: []string{
				"start:telemetry", "start:database", "start:loader",
				"stop:loader", "stop:database", "stop:telemetry",
			},
			wantStop: "failed to stop database: close failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var journal []string
			r := newTestRegistry(t,
				&stubComponent{name: "telemetry", journal: &journal},
				&stubComponent{name: "database", journal: &journal, startErr: tc.startErr, stopErr: tc.stopErr},
				&stubComponent{name: "loader", journal: &journal},
			)
			ctx := context.Background()

			err := r.StartAll(ctx)
			if tc.wantStart == "" && err != nil {
				t.Fatalf("StartAll failed: %v", err)
			}
			if tc.wantStart != "" && (err == nil || !strings.Contains(err.Error(), tc.wantStart)) {
				t.Fatalf("StartAll = %v, want %q", err, tc.wantStart)
			}

			err = r.StopAll(ctx)
			if tc.wantStop == "" && err != nil {
				t.Fatalf("StopAll failed: %v", err)
			}
			if tc.wantStop != "" && (err == nil || !strings.Contains(err.Error(), tc.wantStop)) {
				t.Fatalf("StopAll = %v, want %q", err, tc.wantStop)
			}
			if !reflect.DeepEqual(journal, tc.wantJournal) {
				t.Errorf("journal = %v, want %v", journal, tc.wantJournal)
			}
		})
	}
}

func TestRegistryStartIsIdempotent(t *testing.T) {
	var journal []string
	r := newTestRegistry(t, &stubComponent{name: "database", journal: &journal})
	ctx := context.Background()

	if err := r.StopAll(ctx); err != nil || len(journal) != 0 {
		t.Fatalf("stopping before start ran %v, err %v", journal, err)
	}
	r.StartAll(ctx)
	r.StartAll(ctx)
	r.StopAll(ctx)
	r.StopAll(ctx)
	if want := []string{"start:database", "stop:database"}; !reflect.DeepEqual(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
}

func TestRegistryHealthAll(t *testing.T) {
	r := newTestRegistry(t,
		&stubComponent{name: "telemetry", status: StatusDegraded},
		&stubComponent{name: "database", status: StatusHealthy},
	)
	got := r.HealthAll(context.Background())
	want := []Health{
		{Name: "telemetry", Status: StatusDegraded},
		{Name: "database", Status: StatusHealthy},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("HealthAll = %+v, want %+v", got, want)
	}
}

func TestRegistryDescribe(t *testing.T) {
	r := newTestRegistry(t,
		&stubComponent{name: "loader"},
		&describedStub{
			stubComponent: stubComponent{name: "database"},
			desc:          Description{Type: "database", Details: "sqlite pool=1/1"},
		},
		&describedStub{
			stubComponent: stubComponent{name: "telemetry"},
			desc:          Description{Name: "Telemetry", Type: "telemetry", Details: "disabled"},
		},
	)

	got := r.Describe()
	want := []Description{
		{Name: "database", Type: "database", Details: "sqlite pool=1/1"},
		{Name: "Telemetry", Type: "telemetry", Details: "disabled"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Describe = %+v, want %+v", got, want)
	}
	if len(newTestRegistry(t).Describe()) != 0 {
		t.Error("an empty registry has nothing to describe")
	}
}
