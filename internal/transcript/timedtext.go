package transcript

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// ParseTimedText extracts lines from a timed-text XML document. Both the
// classic layout (<text start="1.5" dur="2">, seconds) and the format 3
// layout (<p t="1500" d="2000">, milliseconds) are recognized. Missing or
// unparseable timing attributes default to zero, blank lines are dropped and
// document order is preserved. Decoding stops at the first malformed token;
// lines completed before it are kept.
func ParseTimedText(payload []byte) []Line {
	decoder := xml.NewDecoder(bytes.NewReader(payload))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var lines []Line
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return lines
		}
		if err != nil {
			return lines
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		var line Line
		switch start.Name.Local {
		case "text":
			line.Start = parseFloatField(attr(start, "start"))
			line.Duration = parseFloatField(attr(start, "dur"))
		case "p":
			line.Start = millis(attr(start, "t"))
			line.Duration = millis(attr(start, "d"))
		default:
			continue
		}

		content, err := elementText(decoder)
		if err != nil {
			return lines
		}
		line.Text = strings.TrimSpace(DecodeEntities(strings.TrimSpace(content)))
		if line.Text == "" {
			continue
		}
		lines = append(lines, line)
	}
}

// elementText collects the character data of the current element, including
// nested segments, and consumes its end tag.
func elementText(decoder *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	return b.String(), nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func millis(value string) float64 {
	ms, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || ms < 0 {
		return 0
	}
	return ms / 1000
}
