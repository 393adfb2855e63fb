package fetcher

import (
	"fmt"
	"log/slog"
	"net/http"

	"tubescript/internal/auth"
	"tubescript/internal/config"
	"tubescript/internal/page"
	"tubescript/internal/services"
	"tubescript/internal/youtube"
)

// Options override pieces built by NewFromConfig.
type Options struct {
	// Strategy replaces fetch.strategy when set.
	Strategy string
	// Session is reused by the api strategy instead of building one.
	Session *auth.Session
	// HTTPClient replaces the client built from fetch.http_timeout_seconds.
	HTTPClient *http.Client
	// Loader replaces the go-rod browser used by the page strategy.
	Loader page.Loader
}

// NewFromConfig builds a Service for the configured strategy.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts Options) (*Service, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "fetcher", "build", "config is required", nil)
	}
	name := cfg.Fetch.Strategy
	if opts.Strategy != "" {
		name = opts.Strategy
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout()}
	}

	var strategy Strategy
	switch name {
	case config.StrategyAPI:
		session := opts.Session
		if session == nil {
			var err error
			session, err = auth.NewSessionFromConfig(cfg, logger)
			if err != nil {
				return nil, err
			}
		}
		api, err := youtube.New(youtube.Config{
			BaseURL:           cfg.Fetch.APIBaseURL,
			UserAgent:         cfg.Fetch.UserAgent,
			RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
			HTTPClient:        client,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "fetcher", "build", "", err)
		}
		strategy = NewAPIStrategy(session, api, logger)
	case config.StrategyPage:
		loader := opts.Loader
		if loader == nil {
			loader = page.NewRodLoader(page.Options{
				BrowserBin:  cfg.Page.BrowserBin,
				Headless:    cfg.Page.Headless,
				UserAgent:   cfg.Fetch.UserAgent,
				LoadTimeout: cfg.PageLoadTimeout(),
				Logger:      logger,
			})
		}
		strategy = NewPageStrategy(loader, cfg.Fetch.WatchURL, cfg.BridgeTimeout(), logger)
	case config.StrategyScrape:
		strategy = NewScrapeStrategy(ScrapeConfig{
			WatchURL:          cfg.Fetch.WatchURL,
			UserAgent:         cfg.Fetch.UserAgent,
			RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
			HTTPClient:        client,
		}, logger)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "fetcher", "build", fmt.Sprintf("unknown strategy %q (want one of %v)", name, config.Strategies), nil)
	}
	return NewService(strategy, logger), nil
}
