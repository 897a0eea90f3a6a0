// Package config loads service configuration for fixturekit commands.
//
// It uses Viper to read a YAML config file, then layers a .env file and
// process environment variables on top, and unmarshals the result into a
// caller-provided struct that usually embeds ServiceConfig.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("fixtures", &cfg, config.WithEnvPrefix("FIXTURES"))
//
// With the FIXTURES prefix, FIXTURES_DATABASE_DSN overrides database.dsn.
package config
