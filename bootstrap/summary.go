package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/fixturekit/component"
)

// FixtureInfo is one loaded fixture in the run summary.
type FixtureInfo struct {
	Name     string
	Order    int
	Duration time.Duration
}

// ReferenceInfo is one reference group and the number of objects under it.
type ReferenceInfo struct {
	Name  string
	Count int
}

// Summary tracks and displays what a run did.
type Summary struct {
	serviceName string
	version     string
	duration    time.Duration
	seed        int64
	fixtures    []FixtureInfo
	references  []ReferenceInfo
	out         io.Writer
}

// NewSummary creates a summary writing to stdout.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		out:         os.Stdout,
	}
}

// SetOutput redirects the summary.
func (s *Summary) SetOutput(w io.Writer) { s.out = w }

// SetDuration records the total run time.
func (s *Summary) SetDuration(d time.Duration) { s.duration = d }

// SetSeed records the fake data seed so the run can be repeated.
func (s *Summary) SetSeed(seed int64) { s.seed = seed }

// TrackFixture records a loaded fixture.
func (s *Summary) TrackFixture(name string, order int, d time.Duration) {
	s.fixtures = append(s.fixtures, FixtureInfo{Name: name, Order: order, Duration: d})
}

// TrackReference records the size of a reference group.
func (s *Summary) TrackReference(name string, count int) {
	s.references = append(s.references, ReferenceInfo{Name: name, Count: count})
}

// Fixtures returns the tracked fixtures.
func (s *Summary) Fixtures() []FixtureInfo { return s.fixtures }

// References returns the tracked reference groups.
func (s *Summary) References() []ReferenceInfo { return s.references }

// Display writes the summary. Component descriptions and live health come
// from registry when it is not nil.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	w := s.out
	fmt.Fprintf(w, "\n%s v%s finished in %.2fs\n\n", s.serviceName, s.version, s.duration.Seconds())
	if s.seed != 0 {
		fmt.Fprintf(w, "Seed: %d (repeat with --seed %d)\n\n", s.seed, s.seed)
	}

	if registry != nil {
		if descs := registry.Describe(); len(descs) > 0 {
			fmt.Fprintf(w, "Infrastructure\n")
			for i, d := range descs {
				fmt.Fprintf(w, "   %s %s [%s]: %s\n", treePrefix(i, len(descs)), d.Name, d.Type, d.Details)
			}
			fmt.Fprintf(w, "\n")
		}
	}

	if len(s.fixtures) > 0 {
		fmt.Fprintf(w, "Fixtures (%d)\n", len(s.fixtures))
		for i, f := range s.fixtures {
			fmt.Fprintf(w, "   %s %-24s order=%-4d %s\n",
				treePrefix(i, len(s.fixtures)), f.Name, f.Order, f.Duration.Round(time.Microsecond))
		}
		fmt.Fprintf(w, "\n")
	} else {
		fmt.Fprintf(w, "   └── No fixtures loaded\n\n")
	}

	if len(s.references) > 0 {
		total := 0
		fmt.Fprintf(w, "References\n")
		for i, r := range s.references {
			fmt.Fprintf(w, "   %s %-24s %d\n", treePrefix(i, len(s.references)), r.Name, r.Count)
			total += r.Count
		}
		fmt.Fprintf(w, "   %d objects in %d groups\n\n", total, len(s.references))
	}

	if registry == nil {
		return
	}
	health := registry.HealthAll(ctx)
	if len(health) == 0 {
		return
	}
	fmt.Fprintf(w, "Health\n")
	for i, h := range health {
		msg := ""
		if h.Message != "" {
			msg = " (" + h.Message + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n",
			treePrefix(i, len(health)), healthStatusIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
	}
	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
