// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to settings needed by the scheduler and the CLI while keeping
// configuration details separate from scheduling logic.
package config
