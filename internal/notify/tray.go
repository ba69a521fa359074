// Package notify renders transient user-facing messages ("toasts").
//
// A toast is printed once through a pterm prefix printer and stays in the
// tray's active set until its display time runs out. Hovering a toast holds
// it; leaving it starts a shorter linger timer.
package notify

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

// Kind is the severity of a toast.
type Kind string

const (
	Info  Kind = "info"
	Error Kind = "error"
)

// Options holds toast timing.
type Options struct {
	// ShowDuration is the fade-in time.
	ShowDuration time.Duration
	// HideDuration is the fade-out time.
	HideDuration time.Duration
	// TimeOut is how long a toast stays fully visible.
	TimeOut time.Duration
	// ExtendedTimeOut is how long a toast lingers after the pointer leaves it.
	ExtendedTimeOut time.Duration
}

// DefaultOptions returns 300ms fades, a 3s display time and a 1s linger.
func DefaultOptions() Options {
	return Options{
		ShowDuration:    300 * time.Millisecond,
		HideDuration:    300 * time.Millisecond,
		TimeOut:         3000 * time.Millisecond,
		ExtendedTimeOut: 1000 * time.Millisecond,
	}
}

// lifetime is the time from creation until a toast is removed.
func (o Options) lifetime() time.Duration { return o.ShowDuration + o.TimeOut + o.HideDuration }

// linger is the time from pointer leave until a toast is removed.
func (o Options) linger() time.Duration { return o.ExtendedTimeOut + o.HideDuration }

// Toast is a single displayed message.
type Toast struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Timer is the subset of *time.Timer the tray uses.
type Timer interface {
	Stop() bool
}

// Clock schedules dismissals.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time                              { return time.Now() }
func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type entry struct {
	toast   Toast
	timer   Timer
	// gen changes whenever the pending dismissal is cancelled or replaced;
	// a timer callback carrying an older gen is ignored.
	gen     uint64
	hovered bool
}

// Tray displays toasts and tracks which are still visible.
// All methods are safe for concurrent use.
type Tray struct {
	mu        sync.Mutex
	opts      Options
	clock     Clock
	out       io.Writer
	active    map[string]*entry
	order     []string
	closed    bool
	onDismiss func(Toast)
}

// Option configures a Tray.
type Option func(*Tray)

// WithOptions sets toast timing.
func WithOptions(o Options) Option {
	return func(t *Tray) { t.opts = o }
}

// WithWriter sets where toasts are printed. Nil writers are ignored.
func WithWriter(w io.Writer) Option {
	return func(t *Tray) {
		if w != nil {
			t.out = w
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(t *Tray) {
		if c != nil {
			t.clock = c
		}
	}
}

// OnDismiss registers a callback run after a toast leaves the tray.
func OnDismiss(fn func(Toast)) Option {
	return func(t *Tray) { t.onDismiss = fn }
}

// NewTray creates a tray printing to stdout with DefaultOptions.
func NewTray(opts ...Option) *Tray {
	t := &Tray{
		opts:   DefaultOptions(),
		clock:  realClock{},
		out:    os.Stdout,
		active: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify prints message with the given severity and schedules its dismissal.
// After Close the message is still printed but not tracked.
func (t *Tray) Notify(kind Kind, message string) Toast {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: t.clock.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.printer(kind).Println(message)
	if t.closed {
		return toast
	}

	e := &entry{toast: toast}
	e.timer = t.clock.AfterFunc(t.opts.lifetime(), func() { t.expire(toast.ID, 0) })
	t.active[toast.ID] = e
	t.order = append(t.order, toast.ID)
	return toast
}

// Info shows an informational toast.
func (t *Tray) Info(message string) Toast { return t.Notify(Info, message) }

// Error shows an error toast.
func (t *Tray) Error(message string) Toast { return t.Notify(Error, message) }

// Hover holds the toast until Leave is called. It reports whether the toast
// is still active.
func (t *Tray) Hover(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.active[id]
	if !ok {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen++
	e.hovered = true
	return true
}

// Leave releases a hovered toast; it is removed after the linger time.
func (t *Tray) Leave(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.active[id]
	if !ok || !e.hovered {
		return ok
	}
	e.hovered = false
	e.gen++
	gen := e.gen
	e.timer = t.clock.AfterFunc(t.opts.linger(), func() { t.expire(id, gen) })
	return true
}

// expire is the timer callback. A timer that fired while Hover or Leave
// was replacing it loses to the newer state.
func (t *Tray) expire(id string, gen uint64) {
	t.remove(id, func(e *entry) bool { return !e.hovered && e.gen == gen })
}

// Dismiss removes a toast immediately. Unknown ids are ignored.
func (t *Tray) Dismiss(id string) {
	t.remove(id, nil)
}

func (t *Tray) remove(id string, keep func(*entry) bool) {
	t.mu.Lock()
	e, ok := t.active[id]
	if !ok || (keep != nil && !keep(e)) {
		t.mu.Unlock()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(t.active, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	fn := t.onDismiss
	t.mu.Unlock()

	if fn != nil {
		fn(e.toast)
	}
}

// Active returns the visible toasts, oldest first.
func (t *Tray) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Toast, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.active[id].toast)
	}
	return out
}

// Close stops every pending dismissal and drops the active set.
func (t *Tray) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	for _, e := range t.active {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	clear(t.active)
	t.order = nil
	return nil
}

func (t *Tray) printer(kind Kind) *pterm.PrefixPrinter {
	switch kind {
	case Error:
		return pterm.Error.WithWriter(t.out)
	default:
		return pterm.Info.WithWriter(t.out)
	}
}
