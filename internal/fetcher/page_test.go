package fetcher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tubescript/internal/services"
	"tubescript/internal/testsupport"
)

const playerTracks = `[{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=fr","languageCode":"fr"},` +
	`{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en-GB","languageCode":"en-GB","name":{"simpleText":"English (UK)"}}]`

func TestPageStrategyFetch(t *testing.T) {
	tab := &fakeTab{
		tracksJSON: playerTracks,
		payload:    `<timedtext format="3"><body><p t="1500" d="2000">Hello</p><p t="4000" d="1000">World</p></body></timedtext>`,
	}
	loader := &fakeLoader{tab: tab}
	strategy := NewPageStrategy(loader, "https://www.youtube.com/watch", time.Second, nil)

	got, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(loader.loaded) != 1 || loader.loaded[0] != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected page loads: %v", loader.loaded)
	}
	if len(tab.fetched) != 1 || !strings.HasSuffix(tab.fetched[0], "lang=en-GB") {
		t.Fatalf("expected the en-GB track to be fetched in-page, got %v", tab.fetched)
	}
	if got.Language != "en-GB" || len(got.Lines) != 2 {
		t.Fatalf("unexpected transcript: %+v", got)
	}
	if got.Lines[0].Start != 1.5 || got.Lines[0].Duration != 2 {
		t.Fatalf("unexpected timing: %+v", got.Lines[0])
	}
	if !tab.closed {
		t.Fatal("expected tab to be closed")
	}
}

func TestPageStrategyNoCaptions(t *testing.T) {
	tab := &fakeTab{tracksJSON: "[]"}
	strategy := NewPageStrategy(&fakeLoader{tab: tab}, "https://www.youtube.com/watch", time.Second, nil)

	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrNoCaptions) {
		t.Fatalf("expected ErrNoCaptions, got %v", err)
	}
	if len(tab.fetched) != 0 {
		t.Fatal("no payload should be requested without tracks")
	}
}

func TestPageStrategyBridgeTimeout(t *testing.T) {
	tab := &fakeTab{tracksJSON: playerTracks, block: true}
	strategy := NewPageStrategy(&fakeLoader{tab: tab}, "https://www.youtube.com/watch", 50*time.Millisecond, nil)

	start := time.Now()
	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout message, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("bridge wait not bounded: %v", elapsed)
	}
}

func TestPageStrategyScriptFailure(t *testing.T) {
	tab := &fakeTab{tracksJSON: playerTracks, payloadErr: errors.New("script failed: Failed to fetch captions: HTTP 403")}
	strategy := NewPageStrategy(&fakeLoader{tab: tab}, "https://www.youtube.com/watch", time.Second, nil)

	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrAPI) {
		t.Fatalf("expected api error, got %v", err)
	}
	if !strings.Contains(AsTranscriptError(err).Message, "HTTP 403") {
		t.Fatalf("expected first failure in message, got %v", err)
	}
}

func TestPageStrategyLoadFailure(t *testing.T) {
	loader := &fakeLoader{err: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	strategy := NewPageStrategy(loader, "https://www.youtube.com/watch", time.Second, nil)

	_, err := strategy.Tracks(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestPageStrategyUnreadablePlayerResponse(t *testing.T) {
	tab := &fakeTab{tracksJSON: "not json"}
	strategy := NewPageStrategy(&fakeLoader{tab: tab}, "https://www.youtube.com/watch", time.Second, nil)

	tracks, err := strategy.Tracks(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %+v", tracks)
	}
}

func TestNewFromConfigBuildsConfiguredStrategy(t *testing.T) {
	tests := []struct {
		strategy string
		want     string
	}{
		{"scrape", "scrape"},
		{"page", "page"},
		{"api", "api"},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithStrategy(tt.strategy))
			svc, err := NewFromConfig(cfg, nil, Options{Loader: &fakeLoader{}})
			if err != nil {
				t.Fatalf("NewFromConfig: %v", err)
			}
			if svc.Strategy() != tt.want {
				t.Fatalf("strategy = %q, want %q", svc.Strategy(), tt.want)
			}
		})
	}
}

func TestNewFromConfigRejectsUnknownStrategy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_, err := NewFromConfig(cfg, nil, Options{Strategy: "carrier-pigeon"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewFromConfigAPIRequiresClientID(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithClientID(""))
	_, err := NewFromConfig(cfg, nil, Options{Strategy: "api"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
