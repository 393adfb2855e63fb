package messages

import (
	"encoding/json"

	"tubescript/internal/transcript"
)

// Type names a message.
type Type string

const (
	TypeVideoDetected   Type = "VIDEO_DETECTED"
	TypeVideoIDUpdate   Type = "VIDEO_ID_UPDATE"
	TypeFetchTranscript Type = "FETCH_TRANSCRIPT"
	TypeSeekVideo       Type = "SEEK_VIDEO"
	TypeGetCurrentVideo Type = "GET_CURRENT_VIDEO"
)

// Request is an inbound message. RequestID is optional and echoed back so
// callers can match responses delivered out of order.
type Request struct {
	Type      Type    `json:"type"`
	VideoID   string  `json:"videoId,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
}

// Response answers a Request. Successful responses always carry a
// transcript array, possibly empty.
type Response struct {
	Success    bool              `json:"success"`
	Transcript []transcript.Line `json:"transcript,omitempty"`
	VideoID    string            `json:"videoId,omitempty"`
	Language   string            `json:"language,omitempty"`
	Error      string            `json:"error,omitempty"`
	ErrorKind  string            `json:"errorKind,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

// MarshalJSON keeps "transcript" present on success even when empty.
func (r Response) MarshalJSON() ([]byte, error) {
	type wire Response
	if !r.Success {
		return json.Marshal(wire(r))
	}
	lines := r.Transcript
	if lines == nil {
		lines = []transcript.Line{}
	}
	return json.Marshal(struct {
		Success    bool              `json:"success"`
		Transcript []transcript.Line `json:"transcript"`
		VideoID    string            `json:"videoId,omitempty"`
		Language   string            `json:"language,omitempty"`
		RequestID  string            `json:"requestId,omitempty"`
	}{true, lines, r.VideoID, r.Language, r.RequestID})
}

// Failure builds an unsuccessful response.
func Failure(message string) Response {
	return Response{Success: false, Error: message}
}
