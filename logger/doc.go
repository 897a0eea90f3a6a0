// Package logger provides structured logging for fixturekit using zerolog.
//
// It supports JSON and console output, per-logger levels, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.NewDefault("fixtures").WithComponent("loader")
//	log.Info("fixture loaded", logger.Fields("fixture", "UserFixture"))
package logger
