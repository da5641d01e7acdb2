package bot

import "sync"

// waiters hands one value from a Discord event to the goroutine waiting for
// it. Each key has at most one waiter; a newer registration replaces it.
type waiters[T any] struct {
	mu sync.Mutex
	m  map[string]*waiter[T]
}

type waiter[T any] struct {
	owner string
	ch    chan T
}

func newWaiters[T any]() *waiters[T] {
	return &waiters[T]{m: make(map[string]*waiter[T])}
}

// register returns the channel the value arrives on and a func that removes
// the registration.
func (w *waiters[T]) register(key, owner string) (<-chan T, func()) {
	wt := &waiter[T]{owner: owner, ch: make(chan T, 1)}
	w.mu.Lock()
	w.m[key] = wt
	w.mu.Unlock()
	return wt.ch, func() {
		w.mu.Lock()
		if w.m[key] == wt {
			delete(w.m, key)
		}
		w.mu.Unlock()
	}
}

// deliver passes v to the waiter for key if from owns it. It reports whether
// a waiter took the value.
func (w *waiters[T]) deliver(key, from string, v T) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	wt, ok := w.m[key]
	if !ok || wt.owner != from {
		return false
	}
	delete(w.m, key)
	wt.ch <- v
	return true
}

func (w *waiters[T]) owner(key string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wt, ok := w.m[key]
	if !ok {
		return "", false
	}
	return wt.owner, true
}
