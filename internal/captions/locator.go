package captions

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var captionTracksPattern = regexp.MustCompile(`"captionTracks"\s*:\s*\[`)

// ExtractTracks locates the captionTracks array embedded in a watch page and
// decodes it. A page without the array, or with an array that does not
// decode, yields no tracks.
func ExtractTracks(html string) []Track {
	loc := captionTracksPattern.FindStringIndex(html)
	if loc == nil {
		return nil
	}
	// decode from the opening bracket; the decoder stops at the matching close
	return ParseTrackList([]byte(html[loc[1]-1:]))
}

// ParseTrackList decodes a JSON array of player caption tracks. Trailing data
// after the array is ignored. Undecodable input yields no tracks.
func ParseTrackList(raw []byte) []Track {
	var items []playerTrack
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&items); err != nil {
		return nil
	}
	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, Track{
			LanguageCode: item.LanguageCode,
			SourceURL:    item.BaseURL,
			ID:           item.VssID,
			Name:         item.Name.String(),
			Kind:         item.Kind,
		})
	}
	return tracks
}

type playerTrack struct {
	BaseURL      string    `json:"baseUrl"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"`
	VssID        string    `json:"vssId"`
	Name         trackName `json:"name"`
}

// trackName accepts the player's {simpleText} and {runs:[{text}]} shapes as
// well as a bare string.
type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
	plain string
}

func (n *trackName) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &n.plain)
	}
	type alias trackName
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	n.SimpleText = decoded.SimpleText
	n.Runs = decoded.Runs
	return nil
}

func (n trackName) String() string {
	if n.plain != "" {
		return n.plain
	}
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var b strings.Builder
	for _, run := range n.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}
