package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes contents to path, creating parent directories.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WatchPage renders a minimal watch page embedding tracksJSON as the
// player's caption track list.
func WatchPage(tracksJSON string) string {
	return `<!doctype html><html><head><script>var ytInitialPlayerResponse = {"videoDetails":{"title":"fixture"},` +
		`"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":` + tracksJSON +
		`,"audioTracks":[]}}};</script></head><body></body></html>`
}

// TimedText renders a timed-text XML document with one <text> element per
// cue, starting at zero and spaced two seconds apart.
func TimedText(cues ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8" ?><transcript>`)
	for i, cue := range cues {
		fmt.Fprintf(&b, `<text start="%d" dur="2">%s</text>`, i*2, cue)
	}
	b.WriteString(`</transcript>`)
	return b.String()
}
