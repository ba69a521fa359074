// Package session is the client's session facade.
//
// A Facade owns the reactive member record for one client process and is the
// only writer of it. Views read identity through the facade (or through
// Member directly) inside effects and are re-run when the fields they read
// change. Around that core the facade wraps three collaborators it is handed
// at construction: the identity API, the navigator, and the notifier.
package session

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"sss/cli/internal/backend"
	apperrors "sss/cli/internal/errors"
	"sss/cli/internal/member"
	"sss/cli/internal/navigation"
	"sss/cli/internal/notify"
	"sss/cli/internal/reactive"
)

const (
	// DefaultAdminAuthority marks members allowed into the admin area.
	DefaultAdminAuthority = "ROLE_ADMIN"
	// DefaultAdminPathPrefix is the path prefix of the admin area.
	DefaultAdminPathPrefix = "/adm"
	// DefaultRedirectPath is the route Reload bounces through.
	DefaultRedirectPath = "/redirect"
	// DefaultSettleDelay is how long NotifyAndRedirect waits before running
	// its post-navigation hook.
	DefaultSettleDelay = 100 * time.Millisecond
)

// Notifier shows transient messages.
type Notifier interface {
	Notify(kind notify.Kind, message string) notify.Toast
}

// Config holds the environment-provided settings the facade uses verbatim.
type Config struct {
	APIBaseURL      string
	FrontBaseURL    string
	AdminPathPrefix string
	AdminAuthority  string
	RedirectPath    string
}

func (c Config) withDefaults() Config {
	if c.AdminPathPrefix == "" {
		c.AdminPathPrefix = DefaultAdminPathPrefix
	}
	if c.AdminAuthority == "" {
		c.AdminAuthority = DefaultAdminAuthority
	}
	if c.RedirectPath == "" {
		c.RedirectPath = DefaultRedirectPath
	}
	return c
}

// Facade is the process-wide session facade.
type Facade struct {
	rt       *reactive.Runtime
	member   *member.Member
	api      backend.API
	nav      navigation.Navigator
	notifier Notifier
	cfg      Config

	settleDelay time.Duration
	afterFunc   func(d time.Duration, f func())
	log         *slog.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Facade) {
		if d >= 0 {
			f.settleDelay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc for post-navigation hooks.
func WithScheduler(after func(d time.Duration, fn func())) Option {
	return func(f *Facade) {
		if after != nil {
			f.afterFunc = after
		}
	}
}

// WithLogger sets the facade's logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Facade) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates a facade with an anonymous member bound to rt.
func New(rt *reactive.Runtime, api backend.API, nav navigation.Navigator, notifier Notifier, cfg Config, opts ...Option) *Facade {
	f := &Facade{
		rt:          rt,
		member:      member.New(rt),
		api:         api,
		nav:         nav,
		notifier:    notifier,
		cfg:         cfg.withDefaults(),
		settleDelay: DefaultSettleDelay,
		afterFunc:   func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Member returns the reactive member record. Callers read it; all writes go
// through the facade's lifecycle methods.
func (f *Facade) Member() *member.Member { return f.member }

// Config returns the effective configuration.
func (f *Facade) Config() Config { return f.cfg }

// Effect runs fn now and again whenever identity or navigation state it
// read changes. Call the returned func to stop it.
func (f *Facade) Effect(fn func()) (stop func()) {
	return f.rt.Effect(fn)
}

// IsLogin reports whether a member is authenticated.
func (f *Facade) IsLogin() bool {
	return !f.member.IsAnonymous()
}

// IsLogout reports whether the session is anonymous.
func (f *Facade) IsLogout() bool {
	return !f.IsLogin()
}

// IsAdmin reports whether the authenticated member holds the admin marker.
// An anonymous session is never admin, whatever its authorities hold.
func (f *Facade) IsAdmin() bool {
	admin := false
	f.member.View(func(m *member.Member) {
		if m.IsAnonymous() {
			return
		}
		admin = slices.Contains(m.Authorities(), f.cfg.AdminAuthority)
	})
	return admin
}

// IsAdminArea reports whether path lies in the admin area.
func (f *Facade) IsAdminArea(path string) bool {
	return strings.HasPrefix(path, f.cfg.AdminPathPrefix)
}

// IsUserArea is the complement of IsAdminArea.
func (f *Facade) IsUserArea(path string) bool {
	return !f.IsAdminArea(path)
}

// SetLoggedIn populates the member from an identity payload.
func (f *Facade) SetLoggedIn(d member.Dto) {
	f.member.Populate(d)
	f.log.Debug("member populated", "id", d.ID)
}

// SetLoggedOut resets the member to the anonymous state.
func (f *Facade) SetLoggedOut() {
	f.member.Clear()
	f.log.Debug("member cleared")
}

// Init restores the session from the identity API. An absent session leaves
// the member untouched; a failed call is returned and nothing is changed.
func (f *Facade) Init(ctx context.Context) error {
	d, err := f.api.GetMe(ctx)
	if err != nil {
		return err
	}
	if d == nil {
		f.log.DebugContext(ctx, "no active session")
		return nil
	}
	f.SetLoggedIn(*d)
	return nil
}

// Login authenticates with the identity API and populates the member.
func (f *Facade) Login(ctx context.Context, username, password string) error {
	d, err := f.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if d == nil {
		return apperrors.New(apperrors.DecodeFailed, "login response carried no member")
	}
	f.SetLoggedIn(*d)
	return nil
}

// LogoutAndRedirect ends the session on the server, then clears the member
// and replaces the current location with to. If the server call fails the
// error is returned before any local state changes.
func (f *Facade) LogoutAndRedirect(ctx context.Context, to string) error {
	if err := f.api.Logout(ctx); err != nil {
		return err
	}
	f.SetLoggedOut()
	f.Replace(to)
	return nil
}
