// Package transcript parses caption payloads into ordered timed lines.
//
// Two payload formats are understood: WebVTT as returned by the Data API
// download endpoint, and the timed-text XML served to the watch page player.
// Parsing never fails: malformed cues and blank lines are skipped and an
// undecodable document yields an empty slice. Source order is preserved and
// lines are never re-sorted.
//
// VTT cues always report a zero duration while timed-text lines carry the
// upstream duration; callers that highlight by duration must account for
// the difference.
package transcript
