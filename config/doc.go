// Package config loads httpkit configuration from YAML files, .env
// files, and environment variables via viper, with defaults and
// validation on each section.
package config
