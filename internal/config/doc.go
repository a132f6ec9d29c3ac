// Package config loads and validates the engine's configuration from
// environment variables.
//
// Configuration is organized into groups:
//
//   - AppConfig: environment, log level, background refresh interval
//   - DatabaseConfig: SurrealDB connection settings
//   - CacheConfig: local snapshot store location
//   - CodeConfig: join code generation settings
//   - SessionConfig: the local user's identity
//
// Every variable has a development-friendly default, so a bare
// `config.Load()` produces a working local setup.
package config
