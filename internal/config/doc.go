// Package config loads, normalizes, and validates tubescript configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YOUTUBE_CLIENT_ID and TUBESCRIPT_STRATEGY. The Config type centralizes every
// knob the CLI, the native messaging host and the HTTP API need, so the
// acquisition strategy, OAuth client and browser settings are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
