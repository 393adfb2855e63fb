package fetcher

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tubescript/internal/captions"
	"tubescript/internal/config"
	"tubescript/internal/logging"
	"tubescript/internal/services"
	"tubescript/internal/transcript"
)

// ScrapeConfig configures ScrapeStrategy.
type ScrapeConfig struct {
	WatchURL          string
	UserAgent         string
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// ScrapeStrategy reads caption tracks from the watch page HTML and downloads
// the chosen track's timed-text XML without authentication.
type ScrapeStrategy struct {
	watchURL string
	getter   httpGetter
	logger   *slog.Logger
}

// NewScrapeStrategy builds the scrape strategy.
func NewScrapeStrategy(cfg ScrapeConfig, logger *slog.Logger) *ScrapeStrategy {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ScrapeStrategy{
		watchURL: strings.TrimSpace(cfg.WatchURL),
		getter: httpGetter{
			client:    client,
			userAgent: strings.TrimSpace(cfg.UserAgent),
			limiter:   newLimiter(cfg.RequestsPerSecond),
		},
		logger: logging.NewComponentLogger(logger, "scrape-strategy"),
	}
}

func (s *ScrapeStrategy) Name() string { return config.StrategyScrape }

func (s *ScrapeStrategy) Tracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	target, err := watchPageURL(s.watchURL, videoID)
	if err != nil {
		return nil, err
	}
	html, err := s.getter.get(ctx, target, "watch page", "Failed to fetch watch page")
	if err != nil {
		return nil, err
	}
	tracks := captions.ExtractTracks(string(html))
	logging.WithContext(ctx, s.logger).Debug("watch page scraped",
		logging.Int("bytes", len(html)),
		logging.Int("tracks", len(tracks)),
	)
	return tracks, nil
}

func (s *ScrapeStrategy) Fetch(ctx context.Context, videoID string) (transcript.Transcript, error) {
	tracks, err := s.Tracks(ctx, videoID)
	if err != nil {
		return transcript.Transcript{}, err
	}
	track, err := captions.SelectTrack(tracks)
	if err != nil {
		return transcript.Transcript{}, err
	}
	if track.SourceURL == "" {
		return transcript.Transcript{}, services.Wrap(services.ErrParse, "fetcher", "select track", "caption track has no source url", nil)
	}
	payload, err := s.getter.get(ctx, track.SourceURL, "download captions", "Failed to download captions")
	if err != nil {
		return transcript.Transcript{}, err
	}
	return buildTranscript(videoID, track, transcript.FormatTimedText, payload), nil
}
