// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Every key can be overridden by an environment variable named after the key
// with a CALC_ prefix, e.g. session.max_sessions -> CALC_SESSION_MAX_SESSIONS.
package config
