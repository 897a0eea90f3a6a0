package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/fixturekit/errors"
)

type fixturesSection struct {
	FlushProbability float64 `mapstructure:"flush_probability" validate:"gte=0,lte=1"`
	Driver           string  `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
}

type rootConfig struct {
	Fixtures fixturesSection `mapstructure:"fixtures"`
}

func TestValidate_Valid(t *testing.T) {
	cfg := rootConfig{Fixtures: fixturesSection{FlushProbability: 0.05, Driver: "sqlite"}}
	if err := Validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	cfg := rootConfig{Fixtures: fixturesSection{FlushProbability: 1.5, Driver: "oracle"}}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"fixtures.flush_probability: must be at most 1", "fixtures.driver: must be one of: sqlite postgres"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}

	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %#v", appErr.Details["fields"])
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"FlushProbability": "flush_probability",
		"DSN":              "d_s_n",
		"seed":             "seed",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
