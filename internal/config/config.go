package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Fetch contains configuration for transcript acquisition.
type Fetch struct {
	Strategy           string  `toml:"strategy"`
	HTTPTimeoutSeconds int     `toml:"http_timeout_seconds"`
	UserAgent          string  `toml:"user_agent"`
	WatchURL           string  `toml:"watch_url"`
	APIBaseURL         string  `toml:"api_base_url"`
	RequestsPerSecond  float64 `toml:"requests_per_second"`
}

// Auth contains configuration for the interactive OAuth consent flow.
type Auth struct {
	ClientID              string `toml:"client_id"`
	AuthURL               string `toml:"auth_url"`
	Scope                 string `toml:"scope"`
	RedirectPort          int    `toml:"redirect_port"`
	ConsentTimeoutSeconds int    `toml:"consent_timeout_seconds"`
	TokenFile             string `toml:"token_file"`
}

// Page contains configuration for the headless browser page strategy.
type Page struct {
	BrowserBin           string `toml:"browser_bin"`
	Headless             bool   `toml:"headless"`
	LoadTimeoutSeconds   int    `toml:"load_timeout_seconds"`
	BridgeTimeoutSeconds int    `toml:"bridge_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for tubescript.
//
// Configuration sections by subsystem:
//   - Paths: state/log directories and API bind address
//   - Fetch: strategy selection, HTTP timeouts and endpoints
//   - Auth: OAuth client and consent settings for the Data API
//   - Page: headless browser settings for the in-page strategy
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Fetch   Fetch   `toml:"fetch"`
	Auth    Auth    `toml:"auth"`
	Page    Page    `toml:"page"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tubescript.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HTTPTimeout returns the per-request timeout for outbound HTTP calls.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Fetch.HTTPTimeoutSeconds) * time.Second
}

// ConsentTimeout bounds how long the interactive consent flow may wait.
func (c *Config) ConsentTimeout() time.Duration {
	return time.Duration(c.Auth.ConsentTimeoutSeconds) * time.Second
}

// PageLoadTimeout bounds navigation of the headless watch page.
func (c *Config) PageLoadTimeout() time.Duration {
	return time.Duration(c.Page.LoadTimeoutSeconds) * time.Second
}

// BridgeTimeout bounds a single in-page request/response exchange.
func (c *Config) BridgeTimeout() time.Duration {
	return time.Duration(c.Page.BridgeTimeoutSeconds) * time.Second
}

// LockPath returns the lock file guarding a single serve instance.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "tubescript.lock")
}

// LogPath returns the log file used when stdout is reserved for messages.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "tubescript.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

const sampleClientID = "your_client_id_here.apps.googleusercontent.com"

// Sample returns the annotated sample configuration. A non-empty clientID
// replaces the placeholder OAuth client id.
func Sample(clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return sampleConfig
	}
	return strings.Replace(sampleConfig, sampleClientID, clientID, 1)
}
