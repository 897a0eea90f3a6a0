package testutil

import (
	"context"

	"github.com/kbukum/fixturekit/component"
)

// TestComponent extends component.Component with a reset between test cases.
type TestComponent interface {
	component.Component

	// Reset restores the component to its freshly started state.
	Reset(ctx context.Context) error
}
