// Package resilience retries operations against infrastructure that may
// not be ready yet, such as a database container still starting up.
package resilience
