// Package di is a small service container fixtures use to look up shared
// collaborators (a password hasher, a clock, an API client) by key.
//
// Constructors registered with Register run lazily on first Resolve and
// the result is cached. Supported constructor shapes are func() T,
// func() (T, error), func(context.Context) (T, error) and
// func(Container) (T, error).
package di
