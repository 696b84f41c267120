// Package config loads application configuration from environment
// variables layered over an optional YAML file. Environment variables use
// the DGRH prefix and take precedence over file values.
package config
