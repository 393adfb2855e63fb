package fetcher

import (
	"context"
	"log/slog"

	"golang.org/x/oauth2"

	"tubescript/internal/captions"
	"tubescript/internal/config"
	"tubescript/internal/logging"
	"tubescript/internal/transcript"
	"tubescript/internal/youtube"
)

// TokenSource supplies and revokes Data API access tokens. *auth.Session
// satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
	Invalidate(rejected *oauth2.Token)
}

// CaptionAPI is the subset of the Data API used by APIStrategy.
type CaptionAPI interface {
	ListTracks(ctx context.Context, token *oauth2.Token, videoID string) ([]captions.Track, error)
	DownloadVTT(ctx context.Context, token *oauth2.Token, trackID string) ([]byte, error)
}

// APIStrategy fetches captions through the authenticated Data API.
type APIStrategy struct {
	tokens TokenSource
	api    CaptionAPI
	logger *slog.Logger
}

// NewAPIStrategy builds the Data API strategy.
func NewAPIStrategy(tokens TokenSource, api CaptionAPI, logger *slog.Logger) *APIStrategy {
	return &APIStrategy{
		tokens: tokens,
		api:    api,
		logger: logging.NewComponentLogger(logger, "api-strategy"),
	}
}

func (s *APIStrategy) Name() string { return config.StrategyAPI }

func (s *APIStrategy) Tracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	var tracks []captions.Track
	err := s.withToken(ctx, func(token *oauth2.Token) error {
		var err error
		tracks, err = s.api.ListTracks(ctx, token, videoID)
		return err
	})
	return tracks, err
}

func (s *APIStrategy) Fetch(ctx context.Context, videoID string) (transcript.Transcript, error) {
	var result transcript.Transcript
	err := s.withToken(ctx, func(token *oauth2.Token) error {
		tracks, err := s.api.ListTracks(ctx, token, videoID)
		if err != nil {
			return err
		}
		track, err := captions.SelectTrack(tracks)
		if err != nil {
			return err
		}
		payload, err := s.api.DownloadVTT(ctx, token, track.ID)
		if err != nil {
			return err
		}
		result = buildTranscript(videoID, track, transcript.FormatVTT, payload)
		return nil
	})
	return result, err
}

// withToken runs call with a session token. A 401 invalidates the token and
// repeats call once with a fresh one.
func (s *APIStrategy) withToken(ctx context.Context, call func(*oauth2.Token) error) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}
	err = call(token)
	if !youtube.IsUnauthorized(err) {
		return err
	}

	logging.WithContext(ctx, s.logger).Info("access token rejected, requesting a new one")
	s.tokens.Invalidate(token)
	token, err = s.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return call(token)
}
