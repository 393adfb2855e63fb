package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCaptions     = errors.New("no captions available")
	ErrAPI            = errors.New("api error")
	ErrAuth           = errors.New("authorization error")
	ErrParse          = errors.New("parse error")
	ErrNetwork        = errors.New("network error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConfiguration  = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Marker returns the sentinel carried by err, or nil when err is untagged.
func Marker(err error) error {
	for _, marker := range []error{
		ErrNoCaptions,
		ErrAuth,
		ErrAPI,
		ErrParse,
		ErrInvalidRequest,
		ErrConfiguration,
		ErrNetwork,
	} {
		if errors.Is(err, marker) {
			return marker
		}
	}
	return nil
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
