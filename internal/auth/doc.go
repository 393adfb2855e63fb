// Package auth obtains and caches the OAuth access token used by the Data
// API strategy.
//
// Session owns the token for the life of the process: concurrent first-time
// callers share one interactive consent prompt, an expired or rejected token
// triggers a fresh prompt, and tokens are optionally persisted through a
// TokenStore so short-lived CLI invocations can reuse them. BrowserConsent
// runs the implicit grant against a loopback redirect page that relays the
// URL fragment back to the process.
package auth
