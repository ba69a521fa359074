// Package navigation implements the client-side navigation service: an
// in-process history stack whose current location is reactive, so views that
// read it re-render after every transition.
package navigation

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"sss/cli/internal/reactive"
)

// ErrNoHistory is returned by Back when there is no earlier entry.
var ErrNoHistory = errors.New("navigation: no earlier history entry")

// Options tunes a single navigation.
type Options struct {
	// Replace overwrites the current history entry instead of pushing.
	Replace bool
}

// Navigator performs client-side transitions.
type Navigator interface {
	Navigate(to string, opts Options)
	// CurrentURL returns the absolute URL of the current entry.
	CurrentURL() string
}

// History is a Navigator backed by an in-memory stack of entries.
type History struct {
	mu      sync.Mutex
	base    *url.URL
	entries []string
	current *reactive.Signal[string]

	listeners []func(from, to string, replaced bool)
}

// NewHistory creates a history rooted at "/". baseURL is the front-end
// origin used to build absolute URLs; a malformed value leaves CurrentURL
// returning bare paths.
func NewHistory(rt *reactive.Runtime, baseURL string) *History {
	h := &History{
		entries: []string{"/"},
		current: reactive.NewSignal(rt, "/"),
	}
	if u, err := url.Parse(strings.TrimRight(baseURL, "/")); err == nil && u.Scheme != "" {
		h.base = u
	}
	return h
}

// OnNavigate registers fn to be called after every transition.
func (h *History) OnNavigate(fn func(from, to string, replaced bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Navigate moves to the given location. Absolute URLs on the front-end
// origin are reduced to their path, query and fragment.
func (h *History) Navigate(to string, opts Options) {
	to = h.relative(to)

	h.mu.Lock()
	from := h.entries[len(h.entries)-1]
	if opts.Replace {
		h.entries[len(h.entries)-1] = to
	} else {
		h.entries = append(h.entries, to)
	}
	listeners := append([]func(string, string, bool){}, h.listeners...)
	h.mu.Unlock()

	h.current.Set(to)
	for _, fn := range listeners {
		fn(from, to, opts.Replace)
	}
}

// Back pops the current entry.
func (h *History) Back() error {
	h.mu.Lock()
	if len(h.entries) < 2 {
		h.mu.Unlock()
		return ErrNoHistory
	}
	from := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	to := h.entries[len(h.entries)-1]
	listeners := append([]func(string, string, bool){}, h.listeners...)
	h.mu.Unlock()

	h.current.Set(to)
	for _, fn := range listeners {
		fn(from, to, false)
	}
	return nil
}

// Current returns the current location (path plus query) and tracks it as a
// dependency of the running effect.
func (h *History) Current() string {
	return h.current.Get()
}

// Path returns the path component of the current location.
func (h *History) Path() string {
	cur := h.Current()
	if u, err := url.Parse(cur); err == nil {
		return u.Path
	}
	return cur
}

// CurrentURL returns the absolute URL of the current entry. Unlike Current
// it does not register a dependency, so effects may navigate relative to it.
func (h *History) CurrentURL() string {
	cur := h.current.Peek()
	if h.base == nil || !strings.HasPrefix(cur, "/") {
		return cur
	}
	return h.base.String() + cur
}

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

func (h *History) relative(to string) string {
	u, err := url.Parse(to)
	if err != nil {
		return to
	}
	if u.IsAbs() {
		if h.base == nil || !strings.EqualFold(u.Host, h.base.Host) {
			return to
		}
		u.Scheme, u.Host, u.User = "", "", nil
		to = u.String()
	}
	if !strings.HasPrefix(to, "/") {
		to = "/" + to
	}
	return to
}
