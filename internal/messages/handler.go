package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"tubescript/internal/fetcher"
	"tubescript/internal/logging"
	"tubescript/internal/services"
	"tubescript/internal/transcript"
)

// Fetcher is the transcript source behind the handler. *fetcher.Service
// satisfies it.
type Fetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (transcript.Transcript, error)
}

// Handler answers requests.
type Handler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewHandler builds a Handler backed by f.
func NewHandler(f Fetcher, logger *slog.Logger) *Handler {
	return &Handler{fetcher: f, logger: logging.NewComponentLogger(logger, "messages")}
}

// Handle dispatches req. Failures are reported inside the Response, never
// as a Go error.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	if req.RequestID != "" {
		ctx = services.WithRequestID(ctx, req.RequestID)
	}
	resp := h.dispatch(ctx, req)
	resp.RequestID = req.RequestID
	return resp
}

// HandleJSON decodes payload as a Request and handles it. Undecodable
// payloads produce a failure response.
func (h *Handler) HandleJSON(ctx context.Context, payload []byte) Response {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		h.logger.Warn("undecodable message", logging.Error(err), logging.Int("bytes", len(payload)))
		resp := Failure("invalid message: " + err.Error())
		resp.ErrorKind = string(fetcher.KindInvalidRequest)
		return resp
	}
	return h.Handle(ctx, req)
}

func (h *Handler) dispatch(ctx context.Context, req Request) Response {
	switch req.Type {
	case TypeFetchTranscript:
		return h.fetchTranscript(ctx, req.VideoID)
	default:
		logging.WithContext(ctx, h.logger).Debug("unsupported message", logging.String("type", string(req.Type)))
		resp := Failure(fmt.Sprintf("unsupported message type %q", strings.TrimSpace(string(req.Type))))
		resp.ErrorKind = string(fetcher.KindInvalidRequest)
		return resp
	}
}

func (h *Handler) fetchTranscript(ctx context.Context, videoID string) Response {
	if h.fetcher == nil {
		return Failure("transcript service unavailable")
	}
	result, err := h.fetcher.FetchTranscript(ctx, videoID)
	if err != nil {
		terr := fetcher.AsTranscriptError(err)
		resp := Failure(terr.Message)
		resp.ErrorKind = string(terr.Kind)
		resp.VideoID = strings.TrimSpace(videoID)
		return resp
	}
	return Response{
		Success:    true,
		Transcript: result.Lines,
		VideoID:    result.VideoID,
		Language:   result.Language,
	}
}
