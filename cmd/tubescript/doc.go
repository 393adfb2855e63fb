// Package main hosts the tubescript CLI entrypoint and command graph.
//
// The Cobra command tree exposes transcript retrieval directly (fetch,
// tracks), manages the OAuth session used by the Data API strategy (auth),
// and runs the long-lived surfaces the browser extension and agent clients
// talk to: the loopback HTTP API (serve), the Chrome native messaging host
// (native-host) and the MCP stdio server (mcp). Configuration resolution,
// .env loading and logger setup live in commandContext so subcommands only
// wire internal packages together.
package main
