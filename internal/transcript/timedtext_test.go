package transcript

import (
	"reflect"
	"testing"
)

func TestParseTimedText(t *testing.T) {
	payload := `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
		`<text start="1.0" dur="2.0">Hi &amp; bye</text>` +
		`<text start="3.5" dur="1.25">   </text>` +
		`<text start="5" dur="2">it&amp;#39;s fine</text>` +
		`<text>no timing</text>` +
		`</transcript>`

	got := ParseTimedText([]byte(payload))
	want := []Line{
		{Text: "Hi & bye", Start: 1, Duration: 2},
		{Text: "it's fine", Start: 5, Duration: 2},
		{Text: "no timing", Start: 0, Duration: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTimedText = %+v, want %+v", got, want)
	}
}

func TestParseTimedTextPreservesOrder(t *testing.T) {
	payload := `<transcript><text start="9" dur="1">later</text><text start="2" dur="1">earlier</text></transcript>`
	got := ParseTimedText([]byte(payload))
	if len(got) != 2 || got[0].Text != "later" || got[1].Text != "earlier" {
		t.Fatalf("expected source order, got %+v", got)
	}
}

func TestParseTimedTextFormat3(t *testing.T) {
	payload := `<timedtext format="3"><body>` +
		`<p t="1500" d="2000"><s>Hello</s><s> world</s></p>` +
		`<p t="4000" d="500"></p>` +
		`</body></timedtext>`

	got := ParseTimedText([]byte(payload))
	want := []Line{{Text: "Hello world", Start: 1.5, Duration: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTimedText = %+v, want %+v", got, want)
	}
}

func TestParseTimedTextGarbled(t *testing.T) {
	for _, payload := range []string{"", "not xml at all", `<transcript><text start="1">unterminated`, `<transcript><<<`} {
		if got := ParseTimedText([]byte(payload)); len(got) != 0 {
			t.Fatalf("ParseTimedText(%q) = %+v, want empty", payload, got)
		}
	}
}

func TestParseTimedTextKeepsLinesBeforeTruncation(t *testing.T) {
	payload := `<transcript><text start="1" dur="1">one</text><text start="2" dur="1">two</text><text start="3">unterminated`
	got := ParseTimedText([]byte(payload))
	want := []Line{{Text: "one", Start: 1, Duration: 1}, {Text: "two", Start: 2, Duration: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTimedText = %+v, want %+v", got, want)
	}
}

func TestParseDispatch(t *testing.T) {
	vtt := []byte("00:00:01.000 --> 00:00:02.000\nHello")
	if got := Parse(vtt, FormatVTT); len(got) != 1 {
		t.Fatalf("expected vtt dispatch, got %+v", got)
	}
	xml := []byte(`<transcript><text start="1" dur="1">Hello</text></transcript>`)
	if got := Parse(xml, FormatTimedText); len(got) != 1 {
		t.Fatalf("expected timed text dispatch, got %+v", got)
	}
	if got := Parse(xml, Format("srt")); got != nil {
		t.Fatalf("expected nil for unknown format, got %+v", got)
	}
}

func TestTranscriptText(t *testing.T) {
	tr := Transcript{Lines: []Line{{Text: "a"}, {Text: "b c"}}}
	if got := tr.Text(); got != "a b c" {
		t.Fatalf("Text() = %q", got)
	}
}
