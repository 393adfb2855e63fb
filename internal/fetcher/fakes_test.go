package fetcher

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"tubescript/internal/captions"
	"tubescript/internal/page"
	"tubescript/internal/services"
	"tubescript/internal/transcript"
)

type stubStrategy struct {
	tracks []captions.Track
	result transcript.Transcript
	err    error

	mu       sync.Mutex
	lastCtx  context.Context
	lastID   string
	fetchHit int
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Tracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	s.record(ctx, videoID)
	return s.tracks, s.err
}

func (s *stubStrategy) Fetch(ctx context.Context, videoID string) (transcript.Transcript, error) {
	s.record(ctx, videoID)
	s.mu.Lock()
	s.fetchHit++
	s.mu.Unlock()
	return s.result, s.err
}

func (s *stubStrategy) record(ctx context.Context, videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCtx = ctx
	s.lastID = videoID
}

type fakeTokens struct {
	mu          sync.Mutex
	issued      int
	invalidated []string
	err         error
}

func (f *fakeTokens) Token(context.Context) (*oauth2.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.issued++
	return &oauth2.Token{AccessToken: "token-" + string(rune('0'+f.issued))}, nil
}

func (f *fakeTokens) Invalidate(rejected *oauth2.Token) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, rejected.AccessToken)
}

type fakeCaptionAPI struct {
	tracks   []captions.Track
	payload  []byte
	listErrs []error
	dlErr    error

	listCalls  int
	tokensSeen []string
	downloaded string
}

func (f *fakeCaptionAPI) ListTracks(_ context.Context, token *oauth2.Token, _ string) ([]captions.Track, error) {
	f.tokensSeen = append(f.tokensSeen, token.AccessToken)
	call := f.listCalls
	f.listCalls++
	if call < len(f.listErrs) && f.listErrs[call] != nil {
		return nil, f.listErrs[call]
	}
	return f.tracks, nil
}

func (f *fakeCaptionAPI) DownloadVTT(_ context.Context, _ *oauth2.Token, trackID string) ([]byte, error) {
	f.downloaded = trackID
	if f.dlErr != nil {
		return nil, f.dlErr
	}
	return f.payload, nil
}

// fakeTab answers scripts by matching them against the page package's
// script constants.
type fakeTab struct {
	tracksJSON string
	tracksErr  error
	payload    string
	payloadErr error
	// block holds the payload fetch until the context ends.
	block bool

	mu      sync.Mutex
	fetched []string
	closed  bool
}

func (f *fakeTab) Evaluate(ctx context.Context, js string, args ...any) (string, error) {
	switch js {
	case page.TrackListScript:
		return f.tracksJSON, f.tracksErr
	case page.FetchTextScript:
		f.mu.Lock()
		if len(args) > 0 {
			if url, ok := args[0].(string); ok {
				f.fetched = append(f.fetched, url)
			}
		}
		f.mu.Unlock()
		if f.block {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return f.payload, f.payloadErr
	default:
		return "", services.Wrap(services.ErrParse, "fake", "evaluate", "unknown script", nil)
	}
}

func (f *fakeTab) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeLoader struct {
	tab    *fakeTab
	err    error
	loaded []string
}

func (f *fakeLoader) Load(_ context.Context, url string) (page.Evaluator, error) {
	f.loaded = append(f.loaded, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.tab, nil
}
