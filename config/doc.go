// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// The upstream subscription key is sourced from the environment (optionally
// via a .env file), never from the YAML file itself.
package config
