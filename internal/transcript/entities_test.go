package transcript

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hi &amp; bye", "Hi & bye"},
		{"it&#39;s", "it's"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"&lt;script&gt;alert(1)&lt;/script&gt;", "<script>alert(1)</script>"},
		{"caf&#xE9;", "café"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := DecodeEntities(tt.input); got != tt.want {
			t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDecodeEntitiesIsStableOnPlainText(t *testing.T) {
	for _, input := range []string{"Hi & bye", "it's", "no entities here", "50% < 100%"} {
		once := DecodeEntities(input)
		if once != input {
			t.Fatalf("DecodeEntities(%q) changed plain text to %q", input, once)
		}
		if twice := DecodeEntities(once); twice != once {
			t.Fatalf("DecodeEntities not stable: %q -> %q", once, twice)
		}
	}
}
