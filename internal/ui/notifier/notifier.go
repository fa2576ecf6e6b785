// Package notifier fans out reload pings to connected browsers.
package notifier

import (
	"net/http"
	"sync"

	"github.com/starfederation/datastar-go/datastar"
)

// ReloadPath is where live-reloading pages open their stream.
const ReloadPath = "/__reload"

// reloadScript is executed by a subscribed page on every ping.
const reloadScript = "window.location.reload()"

// Notifier broadcasts pings to all subscribed listeners. A ping carries no
// payload: listeners reload whatever they show.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives pings.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Listeners returns the number of subscribed channels.
func (n *Notifier) Listeners() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Broadcast pings every listener without blocking. A listener that has not
// drained its previous ping keeps that one.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ReloadHandler streams a datastar reload script to the page on every
// broadcast until the client goes away.
func (n *Notifier) ReloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updates := n.Subscribe()
		defer n.Unsubscribe(updates)

		sse := datastar.NewSSE(w, r)
		for {
			select {
			case <-r.Context().Done():
				return
			case <-updates:
				if err := sse.ExecuteScript(reloadScript); err != nil {
					return
				}
			}
		}
	}
}

// TriggerHandler broadcasts a ping. External watchers call it after a rebuild.
func (n *Notifier) TriggerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		n.Broadcast()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
