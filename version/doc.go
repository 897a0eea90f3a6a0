// Package version reports the build version of fixturekit binaries.
//
// Version, commit and build time are set at compile time:
//
//	go build -ldflags "-X github.com/kbukum/fixturekit/version.Version=1.0.0"
package version
