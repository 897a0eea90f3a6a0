// Package demo is a small blog schema and the fixtures that populate it.
// The fixtures cover count and replay iteration, random and named
// references, services resolved from the container and fake data.
package demo
