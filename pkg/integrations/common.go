package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

// lookupTimeout bounds one request; retries get their own.
const lookupTimeout = 10 * time.Second

// UserAgent identifies ihmgraph to remote services.
const UserAgent = "ihmgraph (+https://github.com/matzehuels/ihmgraph)"

var (
	// ErrNotFound is returned when the remote service has no such record.
	ErrNotFound = errors.New("record not found")

	// ErrNetwork is returned for connection failures and error responses.
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient returns the client used for lookups.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: lookupTimeout}
}

// URLEncode escapes s for a query string, e.g. "Shi Y[Author]".
func URLEncode(s string) string { return url.QueryEscape(s) }
