package transcript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimecode converts "SS[.mmm]", "MM:SS[.mmm]" or "HH:MM:SS[.mmm]" into
// seconds. A comma decimal separator is accepted. Fields that do not parse
// count as zero; with more than three fields only the last three are used.
func ParseTimecode(text string) float64 {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if text == "" {
		return 0
	}
	fields := strings.Split(text, ":")
	if len(fields) > 3 {
		fields = fields[len(fields)-3:]
	}

	seconds := parseFloatField(fields[len(fields)-1])
	multiplier := 60.0
	for i := len(fields) - 2; i >= 0; i-- {
		seconds += float64(parseIntField(fields[i])) * multiplier
		multiplier *= 60
	}
	return seconds
}

func parseIntField(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseFloatField(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatTimestamp renders seconds as "M:SS" or "H:MM:SS" for display.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
