// Package config loads application configuration from an optional YAML file
// and TASKFLOW_-prefixed environment variables, applies defaults, and
// validates the result before any component is constructed.
package config
