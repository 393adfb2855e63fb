package transcript

import "testing"

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1:02:03.500", 3723.5},
		{"02:03", 123},
		{"00:00:01.000", 1},
		{"00:00:01,500", 1.5},
		{"45.25", 45.25},
		{" 00:01:00.000 ", 60},
		{"9:1:2:03", 3723},
		{"", 0},
		{"garbage", 0},
		{"aa:10", 10},
		{"01:xx", 60},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseTimecode(tt.input); got != tt.want {
				t.Fatalf("ParseTimecode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5.9, "0:05"},
		{123, "2:03"},
		{3723.5, "1:02:03"},
		{-4, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
