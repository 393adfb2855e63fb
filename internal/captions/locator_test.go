package captions

import (
	"reflect"
	"testing"
)

const watchPage = `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=fr","name":{"simpleText":"French"},"vssId":".fr","languageCode":"fr","isTranslatable":true},` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=en&kind=asr","name":{"runs":[{"text":"English "},{"text":"(auto-generated)"}]},"vssId":"a.en","languageCode":"en","kind":"asr"}` +
	`],"audioTracks":[{"captionTrackIndices":[0,1]}]}},"videoDetails":{"videoId":"abc"}};</script></html>`

func TestExtractTracks(t *testing.T) {
	got := ExtractTracks(watchPage)
	want := []Track{
		{
			LanguageCode: "fr",
			SourceURL:    "https://www.youtube.com/api/timedtext?v=abc&lang=fr",
			ID:           ".fr",
			Name:         "French",
		},
		{
			LanguageCode: "en",
			SourceURL:    "https://www.youtube.com/api/timedtext?v=abc&lang=en&kind=asr",
			ID:           "a.en",
			Name:         "English (auto-generated)",
			Kind:         "asr",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractTracks =\n%+v\nwant\n%+v", got, want)
	}
}

func TestExtractTracksMissingOrMalformed(t *testing.T) {
	tests := []string{
		"",
		"<html>no player response</html>",
		`"captionTracks":[{"baseUrl":`,
		`"captionTracks":not json`,
	}
	for _, html := range tests {
		if got := ExtractTracks(html); len(got) != 0 {
			t.Fatalf("ExtractTracks(%q) = %+v, want empty", html, got)
		}
	}
}

func TestParseTrackList(t *testing.T) {
	raw := []byte(`[{"baseUrl":"u1","languageCode":"de","name":"Deutsch"}]`)
	got := ParseTrackList(raw)
	if len(got) != 1 || got[0].Name != "Deutsch" || got[0].SourceURL != "u1" {
		t.Fatalf("ParseTrackList = %+v", got)
	}
	if got := ParseTrackList([]byte("null")); len(got) != 0 {
		t.Fatalf("expected empty list for null, got %+v", got)
	}
	if got := ParseTrackList([]byte("{")); got != nil {
		t.Fatalf("expected nil for malformed input, got %+v", got)
	}
}
