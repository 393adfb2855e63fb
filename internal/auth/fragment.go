package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Fragment is the parameter set returned in the redirect URL fragment of an
// implicit grant.
type Fragment struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	Scope       string
	State       string
}

// ParseFragment decodes a redirect fragment such as
// "access_token=...&token_type=Bearer&expires_in=3599&state=...". A leading
// '#' is ignored. An error parameter from the authorization server is
// returned as an error. State is filled in whenever the fragment carries one,
// including on error, so callers can discard responses meant for another
// request.
func ParseFragment(fragment string) (Fragment, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(fragment), "#"))
	if err != nil {
		return Fragment{}, fmt.Errorf("parse redirect fragment: %w", err)
	}
	state := Fragment{State: values.Get("state")}
	if code := values.Get("error"); code != "" {
		if desc := values.Get("error_description"); desc != "" {
			return state, fmt.Errorf("authorization denied: %s: %s", code, desc)
		}
		return state, fmt.Errorf("authorization denied: %s", code)
	}

	result := Fragment{
		AccessToken: values.Get("access_token"),
		TokenType:   values.Get("token_type"),
		Scope:       values.Get("scope"),
		State:       values.Get("state"),
	}
	if result.AccessToken == "" {
		return state, errors.New("no access token in response")
	}
	if raw := values.Get("expires_in"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 0 {
			return state, fmt.Errorf("invalid expires_in %q", raw)
		}
		result.ExpiresIn = time.Duration(seconds) * time.Second
	}
	return result, nil
}

// Token converts the fragment into an oauth2 token issued at now.
func (f Fragment) Token(now time.Time) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken: f.AccessToken,
		TokenType:   f.TokenType,
	}
	if f.ExpiresIn > 0 {
		token.Expiry = now.Add(f.ExpiresIn)
	}
	return token
}
