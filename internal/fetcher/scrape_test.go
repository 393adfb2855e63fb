package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tubescript/internal/services"
	"tubescript/internal/testsupport"
)

func newWatchServer(t *testing.T, tracksJSON func(base string) string, timedText string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "dQw4w9WgXcQ" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testsupport.WatchPage(tracksJSON(server.URL)))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, timedText)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestScrapeStrategyFetch(t *testing.T) {
	server := newWatchServer(t, func(base string) string {
		return fmt.Sprintf(`[{"baseUrl":"%[1]s/api/timedtext?lang=de","languageCode":"de","name":{"simpleText":"German"}},`+
			`{"baseUrl":"%[1]s/api/timedtext?lang=en&kind=asr","languageCode":"en","kind":"asr","name":{"runs":[{"text":"English (auto-generated)"}]}}]`, base)
	}, testsupport.TimedText("Hello &amp;amp; welcome", "  ", "Second line"))

	strategy := NewScrapeStrategy(ScrapeConfig{WatchURL: server.URL + "/watch"}, nil)
	got, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Language != "en" {
		t.Fatalf("language = %q, want en", got.Language)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("expected blank cue to be dropped, got %+v", got.Lines)
	}
	if got.Lines[0].Text != "Hello & welcome" || got.Lines[1].Start != 4 || got.Lines[1].Duration != 2 {
		t.Fatalf("unexpected lines: %+v", got.Lines)
	}
}

func TestScrapeStrategyTracks(t *testing.T) {
	server := newWatchServer(t, func(base string) string {
		return fmt.Sprintf(`[{"baseUrl":"%s/api/timedtext?lang=fr","languageCode":"fr","name":{"simpleText":"French"}}]`, base)
	}, "")

	strategy := NewScrapeStrategy(ScrapeConfig{WatchURL: server.URL + "/watch"}, nil)
	tracks, err := strategy.Tracks(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 1 || tracks[0].Name != "French" || tracks[0].SourceURL == "" {
		t.Fatalf("unexpected tracks: %+v", tracks)
	}
}

func TestScrapeStrategyNoCaptions(t *testing.T) {
	server := newWatchServer(t, func(string) string { return "[]" }, "")

	strategy := NewScrapeStrategy(ScrapeConfig{WatchURL: server.URL + "/watch"}, nil)
	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrNoCaptions) {
		t.Fatalf("expected ErrNoCaptions, got %v", err)
	}
}

func TestScrapeStrategyGarbledPayloadIsEmpty(t *testing.T) {
	server := newWatchServer(t, func(base string) string {
		return fmt.Sprintf(`[{"baseUrl":"%s/api/timedtext","languageCode":"en"}]`, base)
	}, "<transcript><text start=")

	strategy := NewScrapeStrategy(ScrapeConfig{WatchURL: server.URL + "/watch"}, nil)
	got, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got.Lines) != 0 {
		t.Fatalf("expected empty transcript, got %+v", got.Lines)
	}
}

func TestScrapeStrategyHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	strategy := NewScrapeStrategy(ScrapeConfig{WatchURL: server.URL + "/watch"}, nil)
	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrAPI) {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestScrapeStrategyNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	strategy := NewScrapeStrategy(ScrapeConfig{WatchURL: url + "/watch"}, nil)
	_, err := strategy.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestWatchPageURL(t *testing.T) {
	got, err := watchPageURL("https://www.youtube.com/watch?hl=en", "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("watchPageURL: %v", err)
	}
	if got != "https://www.youtube.com/watch?hl=en&v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected url %q", got)
	}
}
