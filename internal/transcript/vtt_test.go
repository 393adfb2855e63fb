package transcript

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseVTTSingleCue(t *testing.T) {
	got := ParseVTT([]byte("00:00:01.000 --> 00:00:02.000\nHello there"))
	want := []Line{{Text: "Hello there", Start: 1, Duration: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseVTT = %+v, want %+v", got, want)
	}
}

func TestParseVTTDocument(t *testing.T) {
	payload := "WEBVTT\r\nKind: captions\r\nLanguage: en\r\n\r\n" +
		"1\r\n00:00:01.000 --> 00:00:03.000 align:start position:0%\r\nFirst line\r\ncontinues here\r\n\r\n" +
		"2\r\n00:00:04.500 --> 00:00:05.000\r\n\r\n" +
		"3\r\n00:00:06.000 --> 00:00:07.000\r\nThird\r\n" +
		"00:00:02.000 --> 00:00:03.000\r\nOut of order\r\n"

	got := ParseVTT([]byte(payload))
	want := []Line{
		{Text: "First line continues here", Start: 1},
		{Text: "Third", Start: 6},
		{Text: "Out of order", Start: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseVTT = %+v, want %+v", got, want)
	}
}

func TestParseVTTEmpty(t *testing.T) {
	if got := ParseVTT(nil); len(got) != 0 {
		t.Fatalf("expected no lines, got %+v", got)
	}
	if got := ParseVTT([]byte("WEBVTT\n\nNOTE nothing here\n")); len(got) != 0 {
		t.Fatalf("expected no lines, got %+v", got)
	}
}

func TestParseVTTKeepsCuesAfterVeryLongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	payload := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nfirst\n\n" +
		"00:00:03.000 --> 00:00:04.000\n" + long + "\n\n" +
		"00:00:05.000 --> 00:00:06.000\nlast\n"
	got := ParseVTT([]byte(payload))
	if len(got) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(got))
	}
	if got[1].Text != long || got[2].Text != "last" || got[2].Start != 5 {
		t.Fatalf("unexpected trailing cues: start=%v text=%q", got[2].Start, got[2].Text)
	}
}
