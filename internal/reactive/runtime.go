// Package reactive provides fine-grained reactive cells for the client.
//
// A Signal is a mutable value whose readers are tracked. An Effect is a
// callback that re-runs whenever any signal it read during its previous run
// changes. Notification is synchronous: by the time Set (or the outermost
// Batch) returns on the goroutine that started the flush, every dependent
// effect has re-run.
//
// Effects execute one at a time. A Set issued while a flush is already in
// progress only queues its dependents; the running flush picks them up.
package reactive

import (
	"fmt"
	"sync"
)

// maxFlushRuns bounds effect executions in a single flush. Exceeding it means
// an effect keeps invalidating its own dependencies.
const maxFlushRuns = 10000

// Runtime owns dependency tracking and the effect queue.
// The zero value is not usable; call NewRuntime.
type Runtime struct {
	mu       sync.Mutex
	tracking *effect
	batch    int
	flushing bool
	pending  []*effect
	queued   map[*effect]struct{}
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{queued: make(map[*effect]struct{})}
}

// source is anything an effect can depend on.
type source interface {
	subscribe(e *effect)
	unsubscribe(e *effect)
}

type effect struct {
	rt      *Runtime
	fn      func()
	deps    map[source]struct{}
	stopped bool
}

// Effect runs fn immediately and again whenever a signal read during its last
// run changes. Dependencies are re-collected on every run. The returned func
// stops the effect; it is safe to call more than once.
func (rt *Runtime) Effect(fn func()) (stop func()) {
	e := &effect{rt: rt, fn: fn, deps: make(map[source]struct{})}
	// writes made by the first run are flushed after it completes
	rt.Batch(e.run)
	return e.stop
}

// Batch runs fn and defers every notification it causes until fn returns.
// Each affected effect runs at most once per batch. Nested batches flush
// when the outermost one exits.
func (rt *Runtime) Batch(fn func()) {
	rt.mu.Lock()
	rt.batch++
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		rt.batch--
		start := rt.batch == 0 && !rt.flushing && len(rt.pending) > 0
		if start {
			rt.flushing = true
		}
		rt.mu.Unlock()
		if start {
			rt.flush()
		}
	}()

	fn()
}

// Untracked runs fn without registering any signal reads as dependencies of
// the currently running effect.
func (rt *Runtime) Untracked(fn func()) {
	rt.mu.Lock()
	prev := rt.tracking
	rt.tracking = nil
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		rt.tracking = prev
		rt.mu.Unlock()
	}()

	fn()
}

// track registers src as a dependency of the running effect, if any.
func (rt *Runtime) track(src source) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	e := rt.tracking
	if e == nil || e.stopped {
		return
	}
	if _, ok := e.deps[src]; ok {
		return
	}
	e.deps[src] = struct{}{}
	src.subscribe(e)
}

// schedule queues effects and flushes unless a batch or flush is active.
func (rt *Runtime) schedule(effects []*effect) {
	rt.mu.Lock()
	for _, e := range effects {
		if e.stopped {
			continue
		}
		if _, ok := rt.queued[e]; ok {
			continue
		}
		rt.queued[e] = struct{}{}
		rt.pending = append(rt.pending, e)
	}
	if rt.batch > 0 || rt.flushing || len(rt.pending) == 0 {
		rt.mu.Unlock()
		return
	}
	rt.flushing = true
	rt.mu.Unlock()

	rt.flush()
}

func (rt *Runtime) flush() {
	done := false
	defer func() {
		if done {
			return
		}
		// an effect panicked; drop the rest of this flush so the runtime
		// keeps working for callers that recover
		rt.mu.Lock()
		rt.pending = nil
		clear(rt.queued)
		rt.flushing = false
		rt.mu.Unlock()
	}()

	runs := 0
	for {
		rt.mu.Lock()
		if len(rt.pending) == 0 {
			rt.flushing = false
			rt.mu.Unlock()
			done = true
			return
		}
		e := rt.pending[0]
		rt.pending = rt.pending[1:]
		delete(rt.queued, e)
		rt.mu.Unlock()

		runs++
		if runs > maxFlushRuns {
			panic(fmt.Sprintf("reactive: more than %d effect runs in one flush, an effect keeps invalidating itself", maxFlushRuns))
		}
		e.run()
	}
}

func (e *effect) run() {
	rt := e.rt

	rt.mu.Lock()
	if e.stopped {
		rt.mu.Unlock()
		return
	}
	old := e.deps
	e.deps = make(map[source]struct{})
	prev := rt.tracking
	rt.tracking = e
	rt.mu.Unlock()

	for src := range old {
		src.unsubscribe(e)
	}

	defer func() {
		rt.mu.Lock()
		rt.tracking = prev
		rt.mu.Unlock()
	}()

	e.fn()
}

func (e *effect) stop() {
	rt := e.rt
	rt.mu.Lock()
	if e.stopped {
		rt.mu.Unlock()
		return
	}
	e.stopped = true
	deps := e.deps
	e.deps = nil
	rt.mu.Unlock()

	for src := range deps {
		src.unsubscribe(e)
	}
}
