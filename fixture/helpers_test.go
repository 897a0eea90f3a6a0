package fixture

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kbukum/fixturekit/logger"
)

type item struct{ ID int }

type recManager struct {
	persisted  []any
	flushes    int
	persistErr error
	flushErr   error
}

func (m *recManager) Persist(_ context.Context, obj any) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.persisted = append(m.persisted, obj)
	return nil
}

func (m *recManager) Flush(context.Context) error {
	if m.flushErr != nil {
		return m.flushErr
	}
	m.flushes++
	return nil
}

// stubFaker never flushes unless chance is set and returns picks in turn.
type stubFaker struct {
	chance bool
	picks  []int
	next   int
}

func (f *stubFaker) Chance(float64) bool { return f.chance }

func (f *stubFaker) Number(min, max int) int {
	if len(f.picks) == 0 {
		return min
	}
	n := f.picks[f.next%len(f.picks)]
	f.next++
	if n < min || n > max {
		return min
	}
	return n
}

type harness struct {
	base *Base
	env  *Env
	mgr  *recManager
	logs *bytes.Buffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf)
	opts = append([]Option{WithLogger(log), WithFaker(&stubFaker{})}, opts...)
	env := NewEnv(opts...)
	mgr := &recManager{}
	b := &Base{}
	b.Bind(env, mgr)
	return &harness{base: b, env: env, mgr: mgr, logs: &buf}
}

// messages returns the message of every logged line, in order.
func (h *harness) messages(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(h.logs.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		msg, _ := entry["message"].(string)
		out = append(out, msg)
	}
	return out
}

func produceItems(ctx context.Context, s Step) (any, error) {
	return &item{ID: s.Position}, nil
}

func ids(t *testing.T, src Source, name string) []int {
	t.Helper()
	items, err := All[*item](src, name)
	if err != nil {
		t.Fatalf("All(%q) failed: %v", name, err)
	}
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
