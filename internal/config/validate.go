package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validatePage(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFetch() error {
	if !slices.Contains(Strategies, c.Fetch.Strategy) {
		return fmt.Errorf("fetch.strategy must be one of %s, got %q", strings.Join(Strategies, ", "), c.Fetch.Strategy)
	}
	if err := ensurePositiveMap(map[string]int{
		"fetch.http_timeout_seconds": c.Fetch.HTTPTimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return errors.New("fetch.requests_per_second must be >= 0")
	}
	if err := ensureAbsoluteURL("fetch.watch_url", c.Fetch.WatchURL); err != nil {
		return err
	}
	return ensureAbsoluteURL("fetch.api_base_url", c.Fetch.APIBaseURL)
}

func (c *Config) validateAuth() error {
	if c.Auth.RedirectPort < 0 || c.Auth.RedirectPort > 65535 {
		return errors.New("auth.redirect_port must be between 0 and 65535")
	}
	if c.Auth.ConsentTimeoutSeconds <= 0 {
		return errors.New("auth.consent_timeout_seconds must be positive")
	}
	if err := ensureAbsoluteURL("auth.auth_url", c.Auth.AuthURL); err != nil {
		return err
	}
	if c.Fetch.Strategy == StrategyAPI && c.Auth.ClientID == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("auth.client_id is required for the api strategy. Set YOUTUBE_CLIENT_ID env var or edit %s (create with 'tubescript config init')", defaultPath)
	}
	return nil
}

// RequireClientID reports whether the OAuth client is configured, independent
// of the active strategy.
func (c *Config) RequireClientID() error {
	if c.Auth.ClientID == "" {
		return errors.New("auth.client_id is not set (set YOUTUBE_CLIENT_ID or edit the config file)")
	}
	return nil
}

func (c *Config) validatePage() error {
	return ensurePositiveMap(map[string]int{
		"page.load_timeout_seconds":   c.Page.LoadTimeoutSeconds,
		"page.bridge_timeout_seconds": c.Page.BridgeTimeoutSeconds,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func ensureAbsoluteURL(key, value string) error {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, value)
	}
	return nil
}
