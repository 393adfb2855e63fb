// Package messages defines the request/response envelope shared by the
// browser extension, the HTTP API and the MCP tool, and the Chrome native
// messaging host that carries it over stdio.
//
// Only FETCH_TRANSCRIPT is served here. The other message types belong to
// the extension's UI and are answered with an "unsupported message type"
// error.
package messages
