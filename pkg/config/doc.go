// Package config loads application configuration from a YAML file with
// environment-variable overrides. The resulting Config is built once at
// startup and handed to constructors explicitly; nothing in the framework
// reads ambient global state.
package config
