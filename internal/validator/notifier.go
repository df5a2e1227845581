package validator

import "sync"

// Notifier fans a lookup notification out to every registered listener. The
// zero value is ready to use.
type Notifier struct {
	mu        sync.RWMutex
	listeners []func()
}

// Subscribe registers fn. nil is ignored.
func (n *Notifier) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// Notify calls every listener synchronously, in registration order.
func (n *Notifier) Notify() {
	n.mu.RLock()
	listeners := make([]func(), len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
