package backend

// New creates a backend API implementation for the identity API at baseURL.
// Returns HTTP client (real backend).
func New(baseURL string, opts ...Option) API {
	return newHTTP(baseURL, opts...)
}
