// Package services defines shared utilities consumed by the transcript
// strategies, the message handlers, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request IDs, video IDs, and strategy names
//     for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the user-facing kinds (no captions, api, auth, network, ...).
//   - Video identifier normalization shared by every inbound surface.
//
// Use these helpers when wiring new acquisition paths so operational
// behaviour (error classification, observability) stays uniform.
package services
