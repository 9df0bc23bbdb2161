// Package config handles configuration loading, parsing, and validation.
// Values come from environment variables (prefixed CASEFLOW_), an optional
// config.yaml in the working directory, and a local .env file, with the
// environment taking precedence. It provides type-safe access to application
// settings while keeping configuration details separate from business logic.
package config
