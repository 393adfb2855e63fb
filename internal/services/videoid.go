package services

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// NormalizeVideoID accepts a bare 11-character video ID or a watch, short
// link, embed, or shorts URL and returns the bare ID.
func NormalizeVideoID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", Wrap(ErrInvalidRequest, "video", "normalize", "video id is empty", nil)
	}
	if videoIDPattern.MatchString(value) {
		return value, nil
	}
	target := value
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return "", Wrap(ErrInvalidRequest, "video", "normalize", "unrecognized video id "+value, nil)
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = strings.Trim(parsed.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if v := parsed.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(segments) == 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				candidate = segments[1]
			}
		}
	}
	if !videoIDPattern.MatchString(candidate) {
		return "", Wrap(ErrInvalidRequest, "video", "normalize", "unrecognized video id "+value, nil)
	}
	return candidate, nil
}
