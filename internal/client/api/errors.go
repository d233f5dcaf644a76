package api

import "errors"

// Callers match these with errors.Is.
var (
	// ErrUnauthorized is a 401 from the backend: the access token was not
	// accepted. The HTTP client normally absorbs it via the refresh protocol;
	// it only escapes on unauthenticated endpoints (e.g. bad login).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transient transport failures: connection errors,
	// timeouts, and 5xx responses. Read paths fall back to the offline cache
	// on this error.
	ErrUnavailable = errors.New("server unavailable")

	// ErrSessionExpired means credential renewal itself failed. Stored
	// credentials are already cleared and the expiry signal has fired; the
	// user has to authenticate again.
	ErrSessionExpired = errors.New("session expired")
)
