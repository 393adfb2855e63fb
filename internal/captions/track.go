package captions

import (
	"fmt"
	"strings"

	"tubescript/internal/services"
)

// Track is one caption track offered for a video. SourceURL is set for
// page-derived tracks; ID is set for Data API tracks.
type Track struct {
	LanguageCode string `json:"languageCode"`
	SourceURL    string `json:"sourceUrl,omitempty"`
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Kind         string `json:"kind,omitempty"`
}

// AutoGenerated reports whether the track was produced by speech recognition.
func (t Track) AutoGenerated() bool {
	return strings.EqualFold(t.Kind, "asr")
}

const preferredLanguage = "en"

// SelectTrack returns the first track whose language code starts with "en"
// (case-sensitive, list order) or, failing that, the first track. An empty
// list is reported as services.ErrNoCaptions.
func SelectTrack(tracks []Track) (Track, error) {
	if len(tracks) == 0 {
		return Track{}, fmt.Errorf("%w for this video", services.ErrNoCaptions)
	}
	for _, track := range tracks {
		if strings.HasPrefix(track.LanguageCode, preferredLanguage) {
			return track, nil
		}
	}
	return tracks[0], nil
}
