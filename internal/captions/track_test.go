package captions

import (
	"errors"
	"testing"

	"tubescript/internal/services"
)

func TestSelectTrack(t *testing.T) {
	tests := []struct {
		name   string
		tracks []Track
		want   string
	}{
		{"prefers regional english", []Track{{LanguageCode: "fr"}, {LanguageCode: "en-US"}}, "en-US"},
		{"first english wins", []Track{{LanguageCode: "en-GB"}, {LanguageCode: "en"}}, "en-GB"},
		{"falls back to first", []Track{{LanguageCode: "fr"}, {LanguageCode: "de"}}, "fr"},
		{"case sensitive", []Track{{LanguageCode: "EN"}, {LanguageCode: "de"}}, "EN"},
		{"uppercase english is not preferred", []Track{{LanguageCode: "de"}, {LanguageCode: "EN"}}, "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTrack(tt.tracks)
			if err != nil {
				t.Fatalf("SelectTrack returned error: %v", err)
			}
			if got.LanguageCode != tt.want {
				t.Fatalf("SelectTrack = %q, want %q", got.LanguageCode, tt.want)
			}
		})
	}
}

func TestSelectTrackEmpty(t *testing.T) {
	_, err := SelectTrack(nil)
	if !errors.Is(err, services.ErrNoCaptions) {
		t.Fatalf("expected ErrNoCaptions, got %v", err)
	}
}

func TestAutoGenerated(t *testing.T) {
	if !(Track{Kind: "asr"}).AutoGenerated() {
		t.Fatal("expected asr track to be auto-generated")
	}
	if (Track{Kind: "standard"}).AutoGenerated() {
		t.Fatal("expected standard track not to be auto-generated")
	}
}
