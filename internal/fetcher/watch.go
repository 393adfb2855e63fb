package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"tubescript/internal/services"
)

const maxPageBytes = 16 << 20

// watchPageURL returns base with the v query parameter set to videoID.
func watchPageURL(base, videoID string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "fetcher", "watch url", base, err)
	}
	query := parsed.Query()
	query.Set("v", videoID)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// httpGetter issues paced, bounded GET requests.
type httpGetter struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

func (g httpGetter) get(ctx context.Context, target, operation, fallback string) ([]byte, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, services.Wrap(services.ErrNetwork, "fetcher", operation, "rate limiter", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidRequest, "fetcher", operation, "build request", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "fetcher", operation, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, services.Wrap(services.ErrAPI, "fetcher", operation, fmt.Sprintf("%s (status %d)", fallback, resp.StatusCode), nil)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "fetcher", operation, "read body", err)
	}
	return body, nil
}
