// pkg/events/notifier.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package events

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/neuroview/neuroview/pkg/log"
)

// Notifier provides a basic typed publish/subscribe interface: any part
// of the system that owns a piece of mutable state creates a Notifier for
// it, anything that cares about changes subscribes under a unique name,
// and the owner posts a change event after each mutation. Dispatch is
// synchronous: all listeners have run by the time Post returns, so a
// listener that triggers a redraw is guaranteed to have requested it
// before the mutating caller regains control.
type Notifier[E any] struct {
	mu   sync.Mutex
	subs map[string]*subscription[E]
	// order holds subscriber names in subscription order; dispatch
	// follows it, so earlier subscribers observe an event first. The
	// display state owner subscribes to the overlay list before the
	// canvas does and its handler must run first.
	order []string
	lg    *log.Logger
}

type subscription[E any] struct {
	callback func(E)
	// source records the subscriber's callsite, so that leaked or doubled
	// subscriptions can be tracked down.
	source string
}

func NewNotifier[E any](lg *log.Logger) *Notifier[E] {
	return &Notifier[E]{subs: make(map[string]*subscription[E]), lg: lg}
}

// Subscribe registers the given callback under the given name; the name
// identifies the subscriber and is the handle later passed to
// Unsubscribe. Subscribing twice under one name replaces the earlier
// callback.
func (n *Notifier[E]) Subscribe(name string, callback func(E)) {
	_, fn, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", fn, line)

	n.mu.Lock()
	defer n.mu.Unlock()

	if prev, ok := n.subs[name]; ok {
		// Replacing a callback keeps the subscriber's original dispatch
		// position.
		n.lg.Warnf("%s: replacing subscription previously made at %s", name, prev.source)
	} else {
		n.order = append(n.order, name)
	}
	n.subs[name] = &subscription[E]{callback: callback, source: source}
}

// Unsubscribe removes the subscription registered under the given name.
// Unsubscribing a name that is not subscribed is logged but is otherwise
// harmless, which makes teardown paths safe to run more than once.
func (n *Notifier[E]) Unsubscribe(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.subs[name]; !ok {
		n.lg.Debugf("%s: attempted to unsubscribe inactive subscription", name)
		return
	}
	delete(n.subs, name)
	n.order = slices.DeleteFunc(n.order, func(s string) bool { return s == name })
}

// Subscribed reports whether a subscription is registered under the given
// name.
func (n *Notifier[E]) Subscribed(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.subs[name]
	return ok
}

// Post dispatches the given event to all current subscribers before
// returning. Callbacks run without the Notifier's lock held, so they may
// subscribe or unsubscribe re-entrantly; a callback removed by an earlier
// callback during the same Post is still invoked.
func (n *Notifier[E]) Post(ev E) {
	n.mu.Lock()
	callbacks := make([]func(E), 0, len(n.subs))
	for _, name := range n.order {
		callbacks = append(callbacks, n.subs[name].callback)
	}
	n.mu.Unlock()

	for _, cb := range callbacks {
		cb(ev)
	}
}

// implements slog.LogValuer
func (n *Notifier[E]) LogValue() slog.Value {
	n.mu.Lock()
	defer n.mu.Unlock()

	items := []slog.Attr{slog.Int("subscribers", len(n.subs))}
	for name, sub := range n.subs {
		items = append(items, slog.String(name, sub.source))
	}
	return slog.GroupValue(items...)
}
