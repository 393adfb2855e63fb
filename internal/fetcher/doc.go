// Package fetcher orchestrates transcript acquisition.
//
// A Service delegates every request to exactly one Strategy:
//
//   - APIStrategy lists and downloads caption tracks through the YouTube Data
//     API with an OAuth session, retrying once with a fresh token on a 401.
//   - PageStrategy loads the watch page in a headless browser, reads the
//     player's caption tracks and fetches the chosen track from inside the
//     page.
//   - ScrapeStrategy downloads the watch page over plain HTTP and extracts
//     the caption track list from the embedded player response.
//
// Failures reach callers as *TranscriptError values whose Kind classifies
// the failure for user-facing surfaces.
package fetcher
