package transcript

import "strings"

const vttTimingMarker = "-->"

// ParseVTT scans a WebVTT payload cue by cue. The left side of each timing
// line becomes the start time; the end time is ignored and every line
// reports a zero duration. Body lines up to the next blank or timing line
// are joined with single spaces. Cues without a body are skipped.
func ParseVTT(payload []byte) []Line {
	var lines []Line

	var (
		inCue bool
		start float64
		body  []string
	)
	flush := func() {
		if inCue {
			if text := strings.Join(body, " "); text != "" {
				lines = append(lines, Line{Text: text, Start: start})
			}
		}
		inCue = false
		body = body[:0]
	}

	for _, raw := range strings.Split(string(payload), "\n") {
		raw = strings.TrimSpace(raw)
		switch {
		case strings.Contains(raw, vttTimingMarker):
			flush()
			left, _, _ := strings.Cut(raw, vttTimingMarker)
			start = ParseTimecode(left)
			inCue = true
		case raw == "":
			flush()
		case inCue:
			body = append(body, raw)
		}
	}
	flush()
	return lines
}
