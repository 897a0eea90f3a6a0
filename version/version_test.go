package version

import (
	"strings"
	"testing"
	"time"
)

func saveAndRestore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() {
		Version, GitCommit, BuildTime = v, c, b
	}
}

func TestGetUsesLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234def"
	BuildTime = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q, want it shortened to 7 characters", info.GitCommit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("BuildDate = %v", info.BuildDate)
	}
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		info Info
		want bool
	}{
		{Info{Version: "dev"}, false},
		{Info{Version: "1.0.0"}, true},
		{Info{Version: "1.0.0", Dirty: true}, false},
		{Info{Version: "1.0.0-dirty"}, false},
	}
	for _, tc := range tests {
		if got := tc.info.IsRelease(); got != tc.want {
			t.Errorf("%+v.IsRelease() = %v, want %v", tc.info, got, tc.want)
		}
	}
}

func TestShortAndString(t *testing.T) {
	tests := []struct {
		name      string
		info      Info
		wantShort string
		wantFull  string
	}{
		{"dev", Info{Version: "dev"}, "dev", "dev"},
		{"commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234", "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty", "1.0.0-abc1234-dirty"},
		{
			"full",
			Info{Version: "1.0.0", GoVersion: "go1.22.0", BuildDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
			"1.0.0",
			"1.0.0 (go1.22.0, built 2024-01-15T10:30:00Z)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.Short(); got != tc.wantShort {
				t.Errorf("Short() = %q, want %q", got, tc.wantShort)
			}
			if got := tc.info.String(); got != tc.wantFull {
				t.Errorf("String() = %q, want %q", got, tc.wantFull)
			}
		})
	}
}

func TestStringStartsWithVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	if s := Get().String(); !strings.HasPrefix(s, "dev") {
		t.Errorf("String() = %q", s)
	}
}
