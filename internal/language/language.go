package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var namer = display.English.Tags()

func parse(code string) (language.Tag, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.Und, false
	}
	// auto-generated tracks are sometimes reported with a leading dot or "a." prefix
	code = strings.TrimPrefix(strings.TrimPrefix(code, "a."), ".")
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	tag, ok := parse(code)
	if !ok {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	if name := namer.Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Label combines a track's display name with its language, falling back to
// the language alone when the track carries no name.
func Label(code, trackName string) string {
	name := DisplayName(code)
	trackName = strings.TrimSpace(trackName)
	if trackName == "" || strings.EqualFold(trackName, name) {
		return name
	}
	return trackName + " (" + name + ")"
}
