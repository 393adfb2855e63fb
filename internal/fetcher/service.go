package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tubescript/internal/captions"
	"tubescript/internal/logging"
	"tubescript/internal/services"
	"tubescript/internal/transcript"
)

// Strategy acquires caption tracks and transcripts for one video.
type Strategy interface {
	Name() string
	Tracks(ctx context.Context, videoID string) ([]captions.Track, error)
	Fetch(ctx context.Context, videoID string) (transcript.Transcript, error)
}

// Service runs transcript requests against a single configured strategy.
type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

// NewService wraps strategy.
func NewService(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{
		strategy: strategy,
		logger:   logging.NewComponentLogger(logger, "fetcher"),
	}
}

// Strategy returns the name of the active strategy.
func (s *Service) Strategy() string {
	if s == nil || s.strategy == nil {
		return ""
	}
	return s.strategy.Name()
}

// FetchTranscript resolves videoID (a raw id or a watch URL) and returns
// its transcript. Errors are always *TranscriptError.
func (s *Service) FetchTranscript(ctx context.Context, videoID string) (transcript.Transcript, error) {
	ctx, id, err := s.begin(ctx, videoID)
	if err != nil {
		return transcript.Transcript{}, err
	}
	logger := logging.WithContext(ctx, s.logger)
	started := time.Now()
	logger.Debug("transcript fetch started")

	result, err := s.strategy.Fetch(ctx, id)
	if err != nil {
		return transcript.Transcript{}, s.fail(logger, "transcript fetch failed", err)
	}
	result.VideoID = id
	logger.Info("transcript fetched",
		logging.String("language", result.Language),
		logging.Int("lines", len(result.Lines)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// ListTracks returns every caption track the strategy can see for videoID.
func (s *Service) ListTracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	ctx, id, err := s.begin(ctx, videoID)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, s.logger)

	tracks, err := s.strategy.Tracks(ctx, id)
	if err != nil {
		return nil, s.fail(logger, "track listing failed", err)
	}
	logger.Debug("tracks listed", logging.Int("count", len(tracks)))
	return tracks, nil
}

// Close releases strategy resources such as a running browser.
func (s *Service) Close() error {
	if closer, ok := s.strategy.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Service) begin(ctx context.Context, videoID string) (context.Context, string, error) {
	if s == nil || s.strategy == nil {
		return ctx, "", &TranscriptError{Kind: KindInvalidRequest, Message: "no acquisition strategy configured"}
	}
	id, err := services.NormalizeVideoID(videoID)
	if err != nil {
		return ctx, "", AsTranscriptError(err)
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	ctx = services.WithVideoID(ctx, id)
	ctx = services.WithStrategy(ctx, s.strategy.Name())
	return ctx, id, nil
}

func (s *Service) fail(logger *slog.Logger, msg string, err error) error {
	terr := AsTranscriptError(err)
	level := slog.LevelWarn
	if terr.Kind == KindNoCaptions || errors.Is(err, context.Canceled) {
		level = slog.LevelInfo
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "transcript_failed"),
		logging.String(logging.FieldErrorKind, string(terr.Kind)),
		logging.Error(err),
	}
	if hint := errorHint(terr.Kind); hint != "" {
		attrs = append(attrs, logging.String(logging.FieldErrorHint, hint))
	}
	logger.Log(context.Background(), level, msg, logging.Args(attrs...)...)
	return terr
}

func errorHint(kind Kind) string {
	switch kind {
	case KindAuth:
		return "Run 'tubescript auth login' or check auth.client_id"
	case KindNetwork:
		return "Check connectivity and fetch.http_timeout_seconds"
	case KindParse:
		return "The caption payload format may have changed; try another strategy"
	default:
		return ""
	}
}

// buildTranscript parses payload in the encoding the strategy downloaded and
// tags the result with the selected track's language.
func buildTranscript(videoID string, track captions.Track, format transcript.Format, payload []byte) transcript.Transcript {
	return transcript.Transcript{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Format:   format,
		Lines:    transcript.Parse(payload, format),
	}
}
