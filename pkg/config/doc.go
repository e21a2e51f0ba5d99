// Package config loads application configuration from environment variables
// into tagged structs, with optional .env bootstrap for local development.
package config
