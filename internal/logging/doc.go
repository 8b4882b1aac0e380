// Package logging builds the slog loggers used across framesift. Console
// output is rendered through tint for interactive runs; the json format keeps
// records machine-parseable when output is captured.
package logging
