package auth

import (
	"log/slog"

	"tubescript/internal/config"
	"tubescript/internal/services"
)

// NewSessionFromConfig builds a Session that prompts through the system
// browser and persists tokens to auth.token_file.
func NewSessionFromConfig(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "auth", "session", "config is required", nil)
	}
	if err := cfg.RequireClientID(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "auth", "session", "", err)
	}
	consent, err := NewBrowserConsent(ConsentConfig{
		ClientID:     cfg.Auth.ClientID,
		AuthURL:      cfg.Auth.AuthURL,
		Scope:        cfg.Auth.Scope,
		RedirectPort: cfg.Auth.RedirectPort,
		Timeout:      cfg.ConsentTimeout(),
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	opts := []SessionOption{WithLogger(logger)}
	if cfg.Auth.TokenFile != "" {
		opts = append(opts, WithTokenStore(NewFileTokenStore(cfg.Auth.TokenFile)))
	}
	return NewSession(consent, opts...), nil
}
