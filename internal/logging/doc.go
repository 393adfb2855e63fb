// Package logging assembles structured slog loggers and formatting helpers used
// across tubescript.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so acquisition code can tag log
// lines with video IDs, strategy names, and request IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
