package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tubescript/internal/bridge"
	"tubescript/internal/captions"
	"tubescript/internal/config"
	"tubescript/internal/logging"
	"tubescript/internal/page"
	"tubescript/internal/services"
	"tubescript/internal/transcript"
)

const defaultBridgeTimeout = 15 * time.Second

// PageStrategy reads caption tracks from the live player in a browser page
// and fetches the chosen track from inside that page.
type PageStrategy struct {
	loader        page.Loader
	watchURL      string
	bridgeTimeout time.Duration
	logger        *slog.Logger
}

// NewPageStrategy builds the in-page strategy on top of loader.
func NewPageStrategy(loader page.Loader, watchURL string, bridgeTimeout time.Duration, logger *slog.Logger) *PageStrategy {
	if bridgeTimeout <= 0 {
		bridgeTimeout = defaultBridgeTimeout
	}
	return &PageStrategy{
		loader:        loader,
		watchURL:      strings.TrimSpace(watchURL),
		bridgeTimeout: bridgeTimeout,
		logger:        logging.NewComponentLogger(logger, "page-strategy"),
	}
}

func (s *PageStrategy) Name() string { return config.StrategyPage }

func (s *PageStrategy) Tracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	tab, err := s.open(ctx, videoID)
	if err != nil {
		return nil, err
	}
	defer tab.Close()
	return s.tracks(ctx, tab)
}

func (s *PageStrategy) Fetch(ctx context.Context, videoID string) (transcript.Transcript, error) {
	tab, err := s.open(ctx, videoID)
	if err != nil {
		return transcript.Transcript{}, err
	}
	defer tab.Close()

	tracks, err := s.tracks(ctx, tab)
	if err != nil {
		return transcript.Transcript{}, err
	}
	track, err := captions.SelectTrack(tracks)
	if err != nil {
		return transcript.Transcript{}, err
	}
	if track.SourceURL == "" {
		return transcript.Transcript{}, services.Wrap(services.ErrParse, "page", "select track", "caption track has no source url", nil)
	}

	payload, err := s.fetchPayload(ctx, tab, track.SourceURL)
	if err != nil {
		return transcript.Transcript{}, err
	}
	return buildTranscript(videoID, track, transcript.FormatTimedText, []byte(payload)), nil
}

// Close shuts down the loader when it holds a browser.
func (s *PageStrategy) Close() error {
	if closer, ok := s.loader.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (s *PageStrategy) open(ctx context.Context, videoID string) (page.Evaluator, error) {
	target, err := watchPageURL(s.watchURL, videoID)
	if err != nil {
		return nil, err
	}
	tab, err := s.loader.Load(ctx, target)
	if err != nil {
		if services.Marker(err) == nil {
			return nil, services.Wrap(services.ErrNetwork, "page", "load", target, err)
		}
		return nil, err
	}
	return tab, nil
}

func (s *PageStrategy) tracks(ctx context.Context, tab page.Evaluator) ([]captions.Track, error) {
	raw, err := tab.Evaluate(ctx, page.TrackListScript)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "page", "read caption tracks", "", err)
	}
	tracks := captions.ParseTrackList([]byte(raw))
	logging.WithContext(ctx, s.logger).Debug("player tracks read", logging.Int("tracks", len(tracks)))
	return tracks, nil
}

// fetchPayload asks the page to fetch sourceURL and waits for the response
// slot to settle within the bridge timeout.
func (s *PageStrategy) fetchPayload(ctx context.Context, tab page.Evaluator, sourceURL string) (string, error) {
	evalCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending := bridge.NewPending[string]()
	go func() {
		body, err := tab.Evaluate(evalCtx, page.FetchTextScript, sourceURL)
		if err != nil {
			pending.Reject(err)
			return
		}
		pending.Resolve(body)
	}()

	body, err := pending.Wait(ctx, s.bridgeTimeout)
	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, bridge.ErrTimeout):
		return "", services.Wrap(services.ErrNetwork, "page", "fetch captions", "timed out waiting for caption payload", err)
	case ctx.Err() != nil:
		return "", services.Wrap(services.ErrNetwork, "page", "fetch captions", "", err)
	default:
		return "", services.Wrap(services.ErrAPI, "page", "fetch captions", "", err)
	}
}
