package pref

import (
	"sync"
)

// eventBuffer is the per-store capacity for pending change notifications.
const eventBuffer = 64

// notifier delivers key-change events to registered listeners.
//
// Delivery is asynchronous: changed keys are buffered on a channel and
// drained by a single goroutine, preserving per-store ordering. The listener
// set is snapshotted at delivery time, so listeners registered after a
// change was enqueued may still observe it.
type notifier struct {
	mu        sync.Mutex
	listeners []ChangeListener
	buffer    chan string
	done      chan struct{}
	wg        sync.WaitGroup
	closed    bool
}

func newNotifier() *notifier {
	n := &notifier{
		buffer: make(chan string, eventBuffer),
		done:   make(chan struct{}),
	}
	n.wg.Add(1)
	go n.process()
	return n
}

// register adds l to the listener set. Duplicates are ignored.
func (n *notifier) register(l ChangeListener) {
	if l == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, existing := range n.listeners {
		if existing == l {
			return
		}
	}
	n.listeners = append(n.listeners, l)
}

// unregister removes l from the listener set by identity.
func (n *notifier) unregister(l ChangeListener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, existing := range n.listeners {
		if existing == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// notify enqueues a change event for key.
func (n *notifier) notify(key string) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()

	select {
	case n.buffer <- key:
	case <-n.done:
	}
}

// close stops delivery. Buffered events are drained before close returns.
// It is safe to call close multiple times.
func (n *notifier) close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// deliver calls every registered listener with the changed key.
// Listeners are invoked outside the lock.
func (n *notifier) deliver(key string) {
	n.mu.Lock()
	listeners := make([]ChangeListener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, l := range listeners {
		l.PreferenceChanged(key)
	}
}

// process drains the event buffer until the notifier is closed.
func (n *notifier) process() {
	defer n.wg.Done()

	for {
		select {
		case key := <-n.buffer:
			n.deliver(key)
		case <-n.done:
			// Drain remaining buffered events
			for {
				select {
				case key := <-n.buffer:
					n.deliver(key)
				default:
					return
				}
			}
		}
	}
}
