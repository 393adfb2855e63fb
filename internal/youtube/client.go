package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"tubescript/internal/captions"
	"tubescript/internal/services"
)

const (
	defaultBaseURL     = "https://www.googleapis.com/youtube/v3"
	defaultHTTPTimeout = 20 * time.Second
	maxPayloadBytes    = 16 << 20
)

// Config describes the Data API client configuration.
type Config struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client wraps the caption endpoints of the YouTube Data API. Every call
// takes the bearer token explicitly so the caller owns token lifecycle.
type Client struct {
	baseURL   *url.URL
	userAgent string
	limiter   *rate.Limiter
	http      *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("youtube: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: strings.TrimSpace(cfg.UserAgent),
		limiter:   limiter,
		http:      client,
	}, nil
}

// ListTracks returns the caption tracks the Data API reports for videoID.
func (c *Client) ListTracks(ctx context.Context, token *oauth2.Token, videoID string) ([]captions.Track, error) {
	endpoint := c.baseURL.JoinPath("captions")
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	endpoint.RawQuery = params.Encode()

	resp, err := c.get(ctx, token, endpoint, "list captions")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp, "list captions", "Failed to fetch captions list")
	}

	var payload listResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrAPI, "youtube", "list captions", "decode response", err)
	}

	tracks := make([]captions.Track, 0, len(payload.Items))
	for _, item := range payload.Items {
		tracks = append(tracks, captions.Track{
			ID:           item.ID,
			LanguageCode: item.Snippet.Language,
			Name:         item.Snippet.Name,
			Kind:         item.Snippet.TrackKind,
		})
	}
	return tracks, nil
}

// DownloadVTT retrieves the caption payload for trackID in WebVTT format.
func (c *Client) DownloadVTT(ctx context.Context, token *oauth2.Token, trackID string) ([]byte, error) {
	if strings.TrimSpace(trackID) == "" {
		return nil, services.Wrap(services.ErrInvalidRequest, "youtube", "download captions", "caption id is empty", nil)
	}
	endpoint := c.baseURL.JoinPath("captions", trackID)
	params := url.Values{}
	params.Set("tfmt", "vtt")
	endpoint.RawQuery = params.Encode()

	resp, err := c.get(ctx, token, endpoint, "download captions")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp, "download captions", "Failed to download captions")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "youtube", "download captions", "read payload", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, token *oauth2.Token, endpoint *url.URL, operation string) (*http.Response, error) {
	if token == nil || token.AccessToken == "" {
		return nil, services.Wrap(services.ErrAuth, "youtube", operation, "access token missing", nil)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, services.Wrap(services.ErrNetwork, "youtube", operation, "rate limiter", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidRequest, "youtube", operation, "build request", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "youtube", operation, "request failed", err)
	}
	return resp, nil
}

// APIError is a non-success response from the Data API. Message carries the
// upstream error.message when the body provides one.
type APIError struct {
	Operation string
	Status    int
	Message   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube: %s failed (%d %s): %s", e.Operation, e.Status, http.StatusText(e.Status), e.Message)
}

// Is lets errors.Is match services.ErrAPI, and services.ErrAuth for 401s.
func (e *APIError) Is(target error) bool {
	if target == services.ErrAPI {
		return true
	}
	return target == services.ErrAuth && e.Unauthorized()
}

// Unauthorized reports whether the token was rejected.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err carries a 401 from the Data API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

func newAPIError(resp *http.Response, operation, fallback string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := fallback
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error.Message) != "" {
		message = strings.TrimSpace(payload.Error.Message)
	}
	return &APIError{Operation: operation, Status: resp.StatusCode, Message: message}
}

type listResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			VideoID   string `json:"videoId"`
			Language  string `json:"language"`
			Name      string `json:"name"`
			TrackKind string `json:"trackKind"`
		} `json:"snippet"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
