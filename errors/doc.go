// Package errors provides the structured error type used across fixturekit.
// Every failure that callers are expected to branch on carries an ErrorCode,
// a human-readable message and optional details; underlying causes stay
// reachable through errors.Is / errors.As.
package errors
