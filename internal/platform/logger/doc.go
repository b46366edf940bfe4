// Package logger configures the process-wide slog logger: JSON or text
// output with a level taken from configuration.
package logger
