package testsupport

import (
	"path/filepath"
	"testing"

	"tubescript/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options. Pacing is
// disabled and the API bind uses an ephemeral port.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Auth.ClientID = "test-client.apps.googleusercontent.com"
	cfgVal.Auth.TokenFile = filepath.Join(base, "state", "token.json")
	cfgVal.Auth.RedirectPort = 0
	cfgVal.Fetch.RequestsPerSecond = 0
	cfgVal.Fetch.HTTPTimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStrategy selects the acquisition strategy.
func WithStrategy(strategy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fetch.Strategy = strategy
	}
}

// WithWatchURL points the scrape and page strategies at a fake watch page.
func WithWatchURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fetch.WatchURL = url
	}
}

// WithAPIBaseURL points the Data API client at a fake server.
func WithAPIBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fetch.APIBaseURL = url
	}
}

// WithClientID overrides the OAuth client id; an empty id disables the API
// strategy.
func WithClientID(id string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Auth.ClientID = id
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
