package config

const (
	defaultConfigPath            = "~/.config/tubescript/config.toml"
	defaultStateDir              = "~/.local/share/tubescript"
	defaultLogDir                = "~/.local/share/tubescript/logs"
	defaultAPIBind               = "127.0.0.1:7488"
	defaultStrategy              = StrategyAPI
	defaultHTTPTimeoutSeconds    = 20
	defaultUserAgent             = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	defaultWatchURL              = "https://www.youtube.com/watch"
	defaultAPIBaseURL            = "https://www.googleapis.com/youtube/v3"
	defaultRequestsPerSecond     = 5
	defaultAuthURL               = "https://accounts.google.com/o/oauth2/auth"
	defaultScope                 = "https://www.googleapis.com/auth/youtube.readonly"
	defaultRedirectPort          = 8765
	defaultConsentTimeoutSeconds = 180
	defaultTokenFileName         = "token.json"
	defaultPageLoadTimeout       = 30
	defaultBridgeTimeout         = 15
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Strategy names accepted by fetch.strategy.
const (
	StrategyAPI    = "api"
	StrategyPage   = "page"
	StrategyScrape = "scrape"
)

// Strategies lists the acquisition strategies in documentation order.
var Strategies = []string{StrategyAPI, StrategyPage, StrategyScrape}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
		},
		Fetch: Fetch{
			Strategy:           defaultStrategy,
			HTTPTimeoutSeconds: defaultHTTPTimeoutSeconds,
			UserAgent:          defaultUserAgent,
			WatchURL:           defaultWatchURL,
			APIBaseURL:         defaultAPIBaseURL,
			RequestsPerSecond:  defaultRequestsPerSecond,
		},
		Auth: Auth{
			AuthURL:               defaultAuthURL,
			Scope:                 defaultScope,
			RedirectPort:          defaultRedirectPort,
			ConsentTimeoutSeconds: defaultConsentTimeoutSeconds,
		},
		Page: Page{
			Headless:             true,
			LoadTimeoutSeconds:   defaultPageLoadTimeout,
			BridgeTimeoutSeconds: defaultBridgeTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
