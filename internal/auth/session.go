package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"tubescript/internal/logging"
	"tubescript/internal/services"
)

// expiryLeeway treats tokens this close to expiry as already expired.
const expiryLeeway = 30 * time.Second

// Consent obtains a fresh access token, typically by prompting the user.
type Consent interface {
	Authorize(ctx context.Context) (*oauth2.Token, error)
}

// ConsentFunc adapts a function to the Consent interface.
type ConsentFunc func(ctx context.Context) (*oauth2.Token, error)

// Authorize calls f(ctx).
func (f ConsentFunc) Authorize(ctx context.Context) (*oauth2.Token, error) {
	return f(ctx)
}

// SessionOption customises Session construction.
type SessionOption func(*Session)

// WithTokenStore persists tokens across process restarts.
func WithTokenStore(store TokenStore) SessionOption {
	return func(s *Session) {
		s.store = store
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logging.NewComponentLogger(logger, "auth")
	}
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// Session caches the access token and serializes its acquisition.
type Session struct {
	consent Consent
	store   TokenStore
	logger  *slog.Logger
	now     func() time.Time

	group singleflight.Group

	mu     sync.RWMutex
	token  *oauth2.Token
	loaded bool
}

// NewSession builds a Session that prompts through consent when no usable
// token is cached.
func NewSession(consent Consent, opts ...SessionOption) *Session {
	s := &Session{
		consent: consent,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns a usable access token, prompting for consent at most once
// for any number of concurrent callers.
func (s *Session) Token(ctx context.Context) (*oauth2.Token, error) {
	if token, ok := s.cachedToken(); ok {
		return token, nil
	}

	// the shared acquisition outlives any single waiter's cancellation
	ch := s.group.DoChan("token", func() (any, error) {
		return s.acquire(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*oauth2.Token), nil
	case <-ctx.Done():
		return nil, services.Wrap(services.ErrAuth, "auth", "token", "cancelled while waiting for consent", ctx.Err())
	}
}

// Login discards any cached token and prompts for a new one.
func (s *Session) Login(ctx context.Context) (*oauth2.Token, error) {
	s.mu.Lock()
	s.token = nil
	s.loaded = true
	s.mu.Unlock()
	return s.Token(ctx)
}

// Cached returns the current token without prompting. Expired tokens are
// reported with ok false.
func (s *Session) Cached() (*oauth2.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	if s.token == nil {
		return nil, false
	}
	return s.token, s.validLocked(s.token)
}

// Invalidate drops rejected when it is still the cached token so the next
// Token call prompts again. A nil argument drops whatever is cached.
func (s *Session) Invalidate(rejected *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if s.token == nil {
		return
	}
	if rejected != nil && rejected.AccessToken != s.token.AccessToken {
		return
	}
	s.token = nil
	s.logger.Info("access token invalidated")
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			s.logger.Warn("clear stored token failed", logging.Error(err))
		}
	}
}

// Logout forgets the cached and persisted token.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.loaded = true
	if s.store != nil {
		return s.store.Clear()
	}
	return nil
}

func (s *Session) cachedToken() (*oauth2.Token, bool) {
	s.mu.RLock()
	if s.loaded {
		token := s.token
		ok := token != nil && s.validLocked(token)
		s.mu.RUnlock()
		return token, ok
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	if s.token != nil && s.validLocked(s.token) {
		return s.token, true
	}
	return nil, false
}

func (s *Session) acquire(ctx context.Context) (*oauth2.Token, error) {
	if token, ok := s.cachedToken(); ok {
		return token, nil
	}
	if s.consent == nil {
		return nil, services.Wrap(services.ErrAuth, "auth", "consent", "no consent flow configured", nil)
	}

	s.logger.Info("requesting interactive consent")
	token, err := s.consent.Authorize(ctx)
	if err != nil {
		if errors.Is(err, services.ErrAuth) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrAuth, "auth", "consent", "", err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, services.Wrap(services.ErrAuth, "auth", "consent", "no access token in response", nil)
	}

	s.mu.Lock()
	s.token = token
	s.loaded = true
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Save(token); err != nil {
			s.logger.Warn("persist token failed", logging.Error(err))
		}
	}
	s.logger.Info("access token acquired", logging.String("expires", token.Expiry.Format(time.RFC3339)))
	return token, nil
}

func (s *Session) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	if s.store == nil {
		return
	}
	token, err := s.store.Load()
	if err != nil {
		s.logger.Warn("load stored token failed", logging.Error(err))
		return
	}
	s.token = token
}

func (s *Session) validLocked(token *oauth2.Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	if token.Expiry.IsZero() {
		return true
	}
	return s.now().Add(expiryLeeway).Before(token.Expiry)
}
