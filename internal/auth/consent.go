package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"tubescript/internal/bridge"
	"tubescript/internal/logging"
	"tubescript/internal/services"
)

const (
	callbackPath          = "/callback"
	tokenPath             = "/token"
	defaultConsentTimeout = 3 * time.Minute
)

// ConsentConfig describes the implicit-grant consent flow.
type ConsentConfig struct {
	ClientID     string
	AuthURL      string
	Scope        string
	RedirectPort int
	Timeout      time.Duration
	// Open presents the consent URL to the user. Defaults to the system browser.
	Open   func(url string)
	Logger *slog.Logger
}

// BrowserConsent runs the implicit grant: it opens the provider's consent
// page and waits for the redirect on a loopback listener. The callback page
// relays the URL fragment, which never reaches the server on its own.
type BrowserConsent struct {
	oauth   oauth2.Config
	port    int
	timeout time.Duration
	open    func(string)
	logger  *slog.Logger
	now     func() time.Time
}

// NewBrowserConsent validates cfg and builds a BrowserConsent.
func NewBrowserConsent(cfg ConsentConfig) (*BrowserConsent, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		return nil, services.Wrap(services.ErrConfiguration, "auth", "consent", "client id is required", nil)
	}
	if strings.TrimSpace(cfg.AuthURL) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "auth", "consent", "auth url is required", nil)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConsentTimeout
	}
	open := cfg.Open
	if open == nil {
		open = launcher.Open
	}
	return &BrowserConsent{
		oauth: oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{AuthURL: strings.TrimSpace(cfg.AuthURL)},
			Scopes:   strings.Fields(cfg.Scope),
		},
		port:    cfg.RedirectPort,
		timeout: timeout,
		open:    open,
		logger:  logging.NewComponentLogger(cfg.Logger, "consent"),
		now:     time.Now,
	}, nil
}

// AuthCodeURL builds the consent URL for redirectURL and state with
// response_type=token.
func (c *BrowserConsent) AuthCodeURL(redirectURL, state string) string {
	cfg := c.oauth
	cfg.RedirectURL = redirectURL
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", "token"))
}

// Authorize opens the consent page and blocks until the redirect delivers a
// token, the user denies access, the timeout elapses or ctx is cancelled.
func (c *BrowserConsent) Authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(c.port)))
	if err != nil {
		return nil, services.Wrap(services.ErrAuth, "auth", "consent", "listen for redirect", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	redirectURL := fmt.Sprintf("http://127.0.0.1:%d%s", port, callbackPath)
	state := uuid.NewString()
	pending := bridge.NewPending[*oauth2.Token]()

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = io.WriteString(w, callbackPage)
	})
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 16<<10))
		if err != nil {
			http.Error(w, "read failed", http.StatusBadRequest)
			return
		}
		fragment, err := ParseFragment(string(body))
		if fragment.State != state {
			// a stale tab or a forged redirect; keep waiting for the real one
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if err != nil {
			pending.Reject(err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pending.Resolve(fragment.Token(c.now()))
		_, _ = io.WriteString(w, "Authorization complete. You can close this tab.")
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			pending.Reject(err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := c.AuthCodeURL(redirectURL, state)
	c.logger.Info("opening consent page", logging.String("redirect", redirectURL))
	c.open(authURL)

	token, err := pending.Wait(ctx, c.timeout)
	if err != nil {
		if errors.Is(err, bridge.ErrTimeout) {
			return nil, services.Wrap(services.ErrAuth, "auth", "consent", "timed out waiting for authorization", err)
		}
		return nil, services.Wrap(services.ErrAuth, "auth", "consent", "", err)
	}
	return token, nil
}

const callbackPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>tubescript</title></head>
<body>
<p id="status">Completing authorization...</p>
<script>
(function () {
  var status = document.getElementById("status");
  var fragment = window.location.hash.substring(1);
  if (!fragment) {
    status.textContent = "No authorization data in redirect.";
    return;
  }
  fetch("/token", {
    method: "POST",
    headers: {"Content-Type": "application/x-www-form-urlencoded"},
    body: fragment
  }).then(function (resp) {
    return resp.text();
  }).then(function (text) {
    status.textContent = text;
    history.replaceState(null, "", window.location.pathname);
  }).catch(function (err) {
    status.textContent = "Authorization failed: " + err;
  });
})();
</script>
</body>
</html>
`
