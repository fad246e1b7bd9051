// Package navigation owns the storefront's current path: a single writer
// updates it, any number of listeners observe it, and a pure resolver maps
// it to the page to show.
package navigation

import "sync"

// maxHistory caps the history stack. Browsers bound their session history
// too; without a cap a long-lived session grows one entry per click.
const maxHistory = 100

// Listener observes path changes.
type Listener func(path string)

type listenerEntry struct {
	id int
	fn Listener
}

type pendingDispatch struct {
	path      string
	listeners []listenerEntry
}

// Router is the single source of truth for "what path is the app showing".
// Navigate pushes onto an internal history stack, NavigateReplace swaps the
// top entry, and Back pops it (the back-button analogue). Listeners are
// notified in registration order, one navigation at a time; a listener that
// itself navigates queues a follow-up dispatch instead of interleaving.
type Router struct {
	mu          sync.Mutex
	history     []string
	epoch       uint64
	listeners   []listenerEntry
	nextID      int
	dispatching bool
	queue       []pendingDispatch
}

// NewRouter starts at initialPath, or "/" when it is empty.
func NewRouter(initialPath string) *Router {
	if initialPath == "" {
		initialPath = "/"
	}
	return &Router{history: []string{initialPath}}
}

// Path returns the current path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// Epoch increments on every navigation. Async loaders capture it before a
// fetch and drop the result if it moved, so a stale response never lands on
// a page the user already left.
func (r *Router) Epoch() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epoch
}

// Navigate pushes path onto the history stack and notifies listeners. It
// cannot fail; unrecognized paths simply resolve to the home view.
func (r *Router) Navigate(path string) {
	r.apply(path, false)
}

// NavigateReplace swaps the current history entry instead of pushing. Used
// for forced redirects such as unauthorized admin access.
func (r *Router) NavigateReplace(path string) {
	r.apply(path, true)
}

// Back pops the history stack, reporting whether there was anywhere to go.
func (r *Router) Back() bool {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return false
	}
	r.history = r.history[:len(r.history)-1]
	r.epoch++
	r.enqueueLocked(r.history[len(r.history)-1])
	r.drain()
	return true
}

// Subscribe registers fn and returns its unsubscribe func. Owners must call
// it on teardown so listeners do not leak.
func (r *Router) Subscribe(fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Router) apply(path string, replace bool) {
	if path == "" {
		path = "/"
	}
	r.mu.Lock()
	if replace {
		r.history[len(r.history)-1] = path
	} else {
		if len(r.history) == maxHistory {
			copy(r.history, r.history[1:])
			r.history = r.history[:maxHistory-1]
		}
		r.history = append(r.history, path)
	}
	r.epoch++
	r.enqueueLocked(path)
	r.drain()
}

// enqueueLocked snapshots the listener list for the given path. Caller holds mu.
func (r *Router) enqueueLocked(path string) {
	snapshot := make([]listenerEntry, len(r.listeners))
	copy(snapshot, r.listeners)
	r.queue = append(r.queue, pendingDispatch{path: path, listeners: snapshot})
}

// drain delivers queued dispatches in order. Called with mu held; releases it.
// Only the first caller on the stack drains, so re-entrant navigation from a
// listener is deferred until the current pass finishes.
func (r *Router) drain() {
	if r.dispatching {
		r.mu.Unlock()
		return
	}
	r.dispatching = true
	for {
		if len(r.queue) == 0 {
			r.dispatching = false
			r.mu.Unlock()
			return
		}
		next := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		for _, l := range next.listeners {
			l.fn(next.path)
		}
		r.mu.Lock()
	}
}
