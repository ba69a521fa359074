package backend

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// defaultTimeout is applied to every request unless overridden.
const defaultTimeout = 10 * time.Second

// HTTP implements API over the REST member endpoints.
// Session credentials travel as cookies: the client's jar stores whatever the
// server sets and replays it on every later request.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "https://api.example.com")
	baseURL string
	// endpoints contains the URL paths for the member endpoints
	endpoints Endpoints
	// client is the underlying HTTP client with configured timeout and cookie jar
	client *http.Client
	log    *slog.Logger
}

// Option configures the HTTP client.
type Option func(*HTTP)

// WithEndpoints overrides the endpoint paths; empty paths keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(h *HTTP) { h.endpoints = e.withDefaults() }
}

// WithHTTPClient replaces the underlying client. If it has no cookie jar one
// is attached so credentials are still sent.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithJar sets the cookie jar holding the session credentials.
func WithJar(jar http.CookieJar) Option {
	return func(h *HTTP) {
		if jar != nil {
			h.client.Jar = jar
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// newHTTP creates a new HTTP client with the given base URL.
// It configures a 10-second timeout and an in-memory cookie jar.
func newHTTP(baseURL string, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: DefaultEndpoints(),
		client:    &http.Client{Timeout: defaultTimeout},
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.client.Jar == nil {
		h.client.Jar = NewJar()
	}
	return h
}

// NewJar returns an empty cookie jar using the public suffix list.
func NewJar() http.CookieJar {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		// cookiejar.New never fails with a non-nil Options
		panic(err)
	}
	return jar
}

// setStandardHeaders applies headers common to every identity API call.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sss-cli/1.0")
}
