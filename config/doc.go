// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Missing values are filled from Default before validation, so an empty file
// is a valid configuration.
package config
