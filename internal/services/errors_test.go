package services_test

import (
	"errors"
	"strings"
	"testing"

	"tubescript/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrAPI, "youtube", "list captions", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrAPI) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"youtube", "list captions", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToNetworkMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestMarker(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no captions", services.Wrap(services.ErrNoCaptions, "captions", "select", "", nil), services.ErrNoCaptions},
		{"auth", services.Wrap(services.ErrAuth, "auth", "consent", "cancelled", nil), services.ErrAuth},
		{"untagged", errors.New("plain"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Marker(tt.err); got != tt.want {
				t.Fatalf("Marker() = %v, want %v", got, tt.want)
			}
		})
	}
}
