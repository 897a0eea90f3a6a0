// Package component defines lifecycle-managed infrastructure (the database
// connection, telemetry providers) and a Registry that starts components in
// registration order and stops them in reverse.
package component
