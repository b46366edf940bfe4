// Package config loads and validates application settings from environment
// variables and optional config files, giving the rest of the application
// type-safe access to server, database, auth, and logging settings.
package config
