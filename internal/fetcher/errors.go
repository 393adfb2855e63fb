package fetcher

import (
	"errors"
	"strings"

	"tubescript/internal/services"
	"tubescript/internal/youtube"
)

// Kind classifies a transcript failure.
type Kind string

const (
	KindNoCaptions     Kind = "no_captions"
	KindAPI            Kind = "api"
	KindAuth           Kind = "auth"
	KindParse          Kind = "parse"
	KindNetwork        Kind = "network"
	KindInvalidRequest Kind = "invalid_request"
)

const noCaptionsMessage = "No captions available for this video"

// TranscriptError is the error returned by Service for every failed request.
// Message is suitable for display; errors.Is matches the services sentinel
// for Kind as well as the underlying cause.
type TranscriptError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *TranscriptError) Error() string {
	return e.Message
}

func (e *TranscriptError) Unwrap() []error {
	errs := []error{kindSentinel(e.Kind)}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// AsTranscriptError classifies err. A *TranscriptError anywhere in the chain
// is returned as is; untagged errors are treated as network failures.
func AsTranscriptError(err error) *TranscriptError {
	if err == nil {
		return nil
	}
	var existing *TranscriptError
	if errors.As(err, &existing) {
		return existing
	}

	kind := kindFor(services.Marker(err))
	message := strings.TrimSpace(err.Error())
	switch kind {
	case KindNoCaptions:
		message = noCaptionsMessage
	case KindAPI, KindAuth:
		var apiErr *youtube.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			message = apiErr.Message
		}
	}
	return &TranscriptError{Kind: kind, Message: message, cause: err}
}

func kindFor(marker error) Kind {
	switch marker {
	case services.ErrNoCaptions:
		return KindNoCaptions
	case services.ErrAPI:
		return KindAPI
	case services.ErrAuth:
		return KindAuth
	case services.ErrParse:
		return KindParse
	case services.ErrInvalidRequest, services.ErrConfiguration:
		return KindInvalidRequest
	default:
		return KindNetwork
	}
}

func kindSentinel(kind Kind) error {
	switch kind {
	case KindNoCaptions:
		return services.ErrNoCaptions
	case KindAPI:
		return services.ErrAPI
	case KindAuth:
		return services.ErrAuth
	case KindParse:
		return services.ErrParse
	case KindInvalidRequest:
		return services.ErrInvalidRequest
	default:
		return services.ErrNetwork
	}
}
