package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the most recent live timer.
func (c *fakeClock) fire(t *testing.T) time.Duration {
	t.Helper()
	c.mu.Lock()
	var live *fakeTimer
	for i := len(c.timers) - 1; i >= 0; i-- {
		if !c.timers[i].stopped {
			live = c.timers[i]
			break
		}
	}
	c.mu.Unlock()
	require.NotNil(t, live, "no live timer")
	live.stopped = true
	live.f()
	return live.d
}

func newTestTray(clock *fakeClock, opts ...Option) (*Tray, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append([]Option{WithWriter(&buf), WithClock(clock)}, opts...)
	return NewTray(opts...), &buf
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 300*time.Millisecond, o.ShowDuration)
	assert.Equal(t, 300*time.Millisecond, o.HideDuration)
	assert.Equal(t, 3*time.Second, o.TimeOut)
	assert.Equal(t, time.Second, o.ExtendedTimeOut)
}

func TestNotifyPrintsAndTracks(t *testing.T) {
	tests := []struct {
		name    string
		notify  func(tr *Tray) Toast
		want    Kind
		message string
	}{
		{name: "info", notify: func(tr *Tray) Toast { return tr.Info("Welcome back") }, want: Info, message: "Welcome back"},
		{name: "error", notify: func(tr *Tray) Toast { return tr.Error("Wrong password") }, want: Error, message: "Wrong password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, buf := newTestTray(&fakeClock{})

			toast := tt.notify(tr)

			assert.NotEmpty(t, toast.ID)
			assert.Equal(t, tt.want, toast.Kind)
			assert.Contains(t, buf.String(), tt.message)
			assert.Equal(t, []Toast{toast}, tr.Active())
		})
	}
}

func TestAutoDismiss(t *testing.T) {
	clock := &fakeClock{}
	var dismissed []string
	tr, _ := newTestTray(clock, OnDismiss(func(t Toast) { dismissed = append(dismissed, t.Message) }))

	tr.Info("saved")
	d := clock.fire(t)

	assert.Equal(t, 3600*time.Millisecond, d)
	assert.Empty(t, tr.Active())
	assert.Equal(t, []string{"saved"}, dismissed)
}

func TestHoverHoldsAndLeaveLingers(t *testing.T) {
	clock := &fakeClock{}
	tr, _ := newTestTray(clock)

	toast := tr.Info("hover me")
	require.True(t, tr.Hover(toast.ID))
	assert.True(t, clock.timers[0].stopped)
	assert.Len(t, tr.Active(), 1)

	require.True(t, tr.Leave(toast.ID))
	d := clock.fire(t)

	assert.Equal(t, 1300*time.Millisecond, d)
	assert.Empty(t, tr.Active())
	assert.False(t, tr.Hover(toast.ID))
}

func TestLeaveWithoutHoverKeepsTimer(t *testing.T) {
	clock := &fakeClock{}
	tr, _ := newTestTray(clock)

	toast := tr.Info("x")
	assert.True(t, tr.Leave(toast.ID))
	assert.Len(t, clock.timers, 1)
}

func TestActiveOrderAndDismiss(t *testing.T) {
	tr, _ := newTestTray(&fakeClock{})

	a := tr.Info("a")
	b := tr.Error("b")
	c := tr.Info("c")

	tr.Dismiss(b.ID)
	tr.Dismiss("unknown")

	assert.Equal(t, []Toast{a, c}, tr.Active())
}

func TestClose(t *testing.T) {
	clock := &fakeClock{}
	tr, buf := newTestTray(clock)

	tr.Info("one")
	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())

	assert.True(t, clock.timers[0].stopped)
	assert.Empty(t, tr.Active())

	tr.Info("after close")
	assert.Contains(t, buf.String(), "after close")
	assert.Empty(t, tr.Active())
}

func TestLateTimerDoesNotDismissHoveredToast(t *testing.T) {
	clock := &fakeClock{}
	tr, _ := newTestTray(clock)

	toast := tr.Info("hold me")
	lifetime := clock.timers[0]

	require.True(t, tr.Hover(toast.ID))
	// the lifetime timer already fired and its callback ran after Hover
	lifetime.f()
	assert.Len(t, tr.Active(), 1)

	require.True(t, tr.Leave(toast.ID))
	require.True(t, tr.Hover(toast.ID))
	clock.timers[1].f()
	assert.Len(t, tr.Active(), 1)

	require.True(t, tr.Leave(toast.ID))
	clock.fire(t)
	assert.Empty(t, tr.Active())
}
