// Package auth persists the CLI's identity session between runs.
//
// The identity API tracks sessions with cookies. After a login the cookies
// held by the HTTP client's jar are written to the OS keychain; the next
// process loads them back before asking the API who is logged in. A snapshot
// of the member is kept alongside for offline display.
package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"sss/cli/internal/member"
)

// Service binds a Store to one cookie jar and API base URL.
type Service struct {
	store Store
	jar   http.CookieJar
	base  *url.URL
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(store Store, jar http.CookieJar, base *url.URL, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, jar: jar, base: base, now: time.Now, log: log}
}

// Restore loads stored cookies into the jar.
func (s *Service) Restore() error {
	n, err := RestoreCookies(s.store, s.jar, s.base)
	if err != nil {
		return err
	}
	s.log.Debug("session cookies restored", "count", n)
	return nil
}

// Persist stores the jar's cookies and the snapshot of d.
func (s *Service) Persist(d member.Dto) error {
	if err := SaveCookies(s.store, s.jar, s.base); err != nil {
		return err
	}
	if err := SaveState(s.store, d, s.now()); err != nil {
		return err
	}
	s.log.Debug("session persisted", "member_id", d.ID)
	return nil
}

// Forget removes the stored session.
func (s *Service) Forget() error {
	s.log.Debug("session forgotten")
	return s.store.ClearSession()
}

// LastMember returns the stored snapshot, if any.
func (s *Service) LastMember() (State, bool, error) {
	return LoadState(s.store)
}
