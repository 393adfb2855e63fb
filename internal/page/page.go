package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"tubescript/internal/logging"
	"tubescript/internal/services"
)

// Evaluator runs scripts inside one loaded page.
type Evaluator interface {
	// Evaluate runs js, a function expression, with args and returns its
	// string result. Promises are awaited.
	Evaluate(ctx context.Context, js string, args ...any) (string, error)
	Close() error
}

// Loader opens pages.
type Loader interface {
	Load(ctx context.Context, url string) (Evaluator, error)
}

// Options configure the browser launched by RodLoader.
type Options struct {
	BrowserBin  string
	Headless    bool
	UserAgent   string
	LoadTimeout time.Duration
	Logger      *slog.Logger
}

// RodLoader launches a browser on first use and opens one tab per Load.
type RodLoader struct {
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodLoader returns a loader that starts the browser lazily.
func NewRodLoader(opts Options) *RodLoader {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RodLoader{opts: opts, logger: logging.NewComponentLogger(logger, "page")}
}

// Load opens url in a new tab and waits for the load event.
func (l *RodLoader) Load(ctx context.Context, url string) (Evaluator, error) {
	browser, err := l.ensureBrowser()
	if err != nil {
		return nil, err
	}

	loadCtx := ctx
	if l.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, l.opts.LoadTimeout)
		defer cancel()
	}

	tab, err := browser.Context(loadCtx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, services.Wrap(services.ErrNetwork, "page", "open", url, err)
	}
	if err := tab.WaitLoad(); err != nil {
		_ = tab.Close()
		return nil, services.Wrap(services.ErrNetwork, "page", "load", url, err)
	}
	l.logger.Debug("page loaded", logging.String("url", url))
	// detach from the load deadline; callers bound evaluation themselves
	return &rodTab{page: tab.Context(context.Background())}, nil
}

// Close shuts down the browser if one was started.
func (l *RodLoader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var err error
	if l.browser != nil {
		err = l.browser.Close()
		l.browser = nil
	}
	if l.launcher != nil {
		l.launcher.Kill()
		l.launcher.Cleanup()
		l.launcher = nil
	}
	return err
}

func (l *RodLoader) ensureBrowser() (*rod.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.browser != nil {
		return l.browser, nil
	}

	launch := launcher.New().
		Headless(l.opts.Headless).
		Set("mute-audio").
		Set("disable-blink-features", "AutomationControlled")
	if bin := strings.TrimSpace(l.opts.BrowserBin); bin != "" {
		launch = launch.Bin(bin)
	}
	if ua := strings.TrimSpace(l.opts.UserAgent); ua != "" {
		launch = launch.Set("user-agent", ua)
	}
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "page", "launch browser", "", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		launch.Kill()
		return nil, services.Wrap(services.ErrNetwork, "page", "connect browser", "", err)
	}
	l.logger.Info("browser started", logging.Bool("headless", l.opts.Headless))
	l.launcher = launch
	l.browser = browser
	return browser, nil
}

type rodTab struct {
	page *rod.Page
}

func (t *rodTab) Evaluate(ctx context.Context, js string, args ...any) (string, error) {
	result, err := t.page.Context(ctx).Evaluate(rod.Eval(js, args...).ByPromise())
	if err != nil {
		var evalErr *rod.EvalError
		if errors.As(err, &evalErr) && evalErr.RuntimeExceptionDetails != nil && evalErr.Exception != nil {
			return "", fmt.Errorf("script failed: %s", evalErr.Exception.Description)
		}
		return "", err
	}
	return result.Value.Str(), nil
}

func (t *rodTab) Close() error {
	return t.page.Close()
}
