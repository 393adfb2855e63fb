// Package server exposes the message handler over a loopback HTTP API.
//
// Routes:
//
//	POST /api/messages  request envelope in, response envelope out
//	GET  /api/health    liveness and active strategy
//
// A file lock under the state directory keeps a single server per user.
// When an API token is configured every route requires it as a bearer
// token.
package server
