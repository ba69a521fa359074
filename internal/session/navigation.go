package session

import (
	"net/url"

	"sss/cli/internal/navigation"
	"sss/cli/internal/notify"
)

// Msg is a message returned by the identity API alongside a result.
type Msg struct {
	Msg string `json:"msg"`
}

// Go navigates forward to the given location.
func (f *Facade) Go(to string) {
	f.nav.Navigate(to, navigation.Options{})
}

// Replace navigates to the given location, overwriting the current history entry.
func (f *Facade) Replace(to string) {
	f.nav.Navigate(to, navigation.Options{Replace: true})
}

// Reload re-enters the current page through the redirect route, passing the
// current absolute URL in the url query parameter.
func (f *Facade) Reload() {
	var cur string
	f.rt.Untracked(func() { cur = f.nav.CurrentURL() })
	f.Replace(f.cfg.RedirectPath + "?url=" + url.QueryEscape(cur))
}

// NotifyInfo shows an informational toast.
func (f *Facade) NotifyInfo(message string) {
	f.notifier.Notify(notify.Info, message)
}

// NotifyError shows an error toast.
func (f *Facade) NotifyError(message string) {
	f.notifier.Notify(notify.Error, message)
}

// NotifyAndRedirect shows whichever of data and failure is present, replaces
// the location with to and, when after is non-nil, schedules it once the
// settle delay has passed. The hook is best effort: it does not wait for
// anything the navigation itself triggers.
func (f *Facade) NotifyAndRedirect(data, failure *Msg, to string, after func()) {
	if data != nil {
		f.NotifyInfo(data.Msg)
	}
	if failure != nil {
		f.NotifyError(failure.Msg)
	}

	f.Replace(to)

	if after != nil {
		f.afterFunc(f.settleDelay, after)
	}
}
