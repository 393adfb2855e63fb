package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFetch()
	if err := c.normalizeAuth(); err != nil {
		return err
	}
	if err := c.normalizePage(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	if value, ok := os.LookupEnv("TUBESCRIPT_API_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.Paths.APIToken = value
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeFetch() {
	if value, ok := os.LookupEnv("TUBESCRIPT_STRATEGY"); ok && strings.TrimSpace(value) != "" {
		c.Fetch.Strategy = value
	}
	c.Fetch.Strategy = strings.ToLower(strings.TrimSpace(c.Fetch.Strategy))
	if c.Fetch.Strategy == "" {
		c.Fetch.Strategy = defaultStrategy
	}
	if c.Fetch.HTTPTimeoutSeconds == 0 {
		c.Fetch.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	c.Fetch.WatchURL = strings.TrimSpace(c.Fetch.WatchURL)
	if c.Fetch.WatchURL == "" {
		c.Fetch.WatchURL = defaultWatchURL
	}
	c.Fetch.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.Fetch.APIBaseURL), "/")
	if c.Fetch.APIBaseURL == "" {
		c.Fetch.APIBaseURL = defaultAPIBaseURL
	}
}

func (c *Config) normalizeAuth() error {
	if value, ok := os.LookupEnv("YOUTUBE_CLIENT_ID"); ok && strings.TrimSpace(value) != "" {
		c.Auth.ClientID = value
	}
	c.Auth.ClientID = strings.TrimSpace(c.Auth.ClientID)
	c.Auth.AuthURL = strings.TrimSpace(c.Auth.AuthURL)
	if c.Auth.AuthURL == "" {
		c.Auth.AuthURL = defaultAuthURL
	}
	c.Auth.Scope = strings.TrimSpace(c.Auth.Scope)
	if c.Auth.Scope == "" {
		c.Auth.Scope = defaultScope
	}
	if c.Auth.ConsentTimeoutSeconds == 0 {
		c.Auth.ConsentTimeoutSeconds = defaultConsentTimeoutSeconds
	}
	if strings.TrimSpace(c.Auth.TokenFile) == "" {
		c.Auth.TokenFile = filepath.Join(c.Paths.StateDir, defaultTokenFileName)
	}
	var err error
	if c.Auth.TokenFile, err = expandPath(c.Auth.TokenFile); err != nil {
		return fmt.Errorf("auth.token_file: %w", err)
	}
	return nil
}

func (c *Config) normalizePage() error {
	c.Page.BrowserBin = strings.TrimSpace(c.Page.BrowserBin)
	if c.Page.BrowserBin != "" {
		var err error
		if c.Page.BrowserBin, err = expandPath(c.Page.BrowserBin); err != nil {
			return fmt.Errorf("page.browser_bin: %w", err)
		}
	}
	if c.Page.LoadTimeoutSeconds == 0 {
		c.Page.LoadTimeoutSeconds = defaultPageLoadTimeout
	}
	if c.Page.BridgeTimeoutSeconds == 0 {
		c.Page.BridgeTimeoutSeconds = defaultBridgeTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("TUBESCRIPT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
