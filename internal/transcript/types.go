package transcript

import "strings"

// Format identifies a caption payload encoding.
type Format string

const (
	FormatVTT       Format = "vtt"
	FormatTimedText Format = "timedtext"
)

// Line is a single timed caption line. Start and Duration are in seconds;
// Duration is zero when the source format does not report one.
type Line struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the parsed result of one acquisition request.
type Transcript struct {
	VideoID  string `json:"videoId"`
	Language string `json:"language,omitempty"`
	Format   Format `json:"format,omitempty"`
	Lines    []Line `json:"transcript"`
}

// Text joins every line with single spaces.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Lines))
	for _, line := range t.Lines {
		parts = append(parts, line.Text)
	}
	return strings.Join(parts, " ")
}

// Parse dispatches payload to the parser for format. Unknown formats yield
// no lines.
func Parse(payload []byte, format Format) []Line {
	switch format {
	case FormatVTT:
		return ParseVTT(payload)
	case FormatTimedText:
		return ParseTimedText(payload)
	default:
		return nil
	}
}
