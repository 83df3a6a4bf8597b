// pkg/events/notifier_test.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package events

import (
	"testing"
)

func TestNotifierBasics(t *testing.T) {
	n := NewNotifier[int](nil)

	var got []int
	n.Subscribe("a", func(ev int) { got = append(got, ev) })

	n.Post(1)
	n.Post(2)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v, expected [1 2]", got)
	}

	if !n.Subscribed("a") {
		t.Errorf("expected \"a\" to be subscribed")
	}
	n.Unsubscribe("a")
	if n.Subscribed("a") {
		t.Errorf("expected \"a\" to be unsubscribed")
	}

	n.Post(3)
	if len(got) != 2 {
		t.Errorf("callback ran after unsubscribe: %v", got)
	}
}

func TestNotifierResubscribeReplaces(t *testing.T) {
	n := NewNotifier[string](nil)

	var first, second int
	n.Subscribe("a", func(string) { first++ })
	n.Subscribe("a", func(string) { second++ })

	n.Post("ev")
	if first != 0 {
		t.Errorf("replaced callback ran %d times", first)
	}
	if second != 1 {
		t.Errorf("replacement callback ran %d times, expected 1", second)
	}
}

func TestNotifierReentrant(t *testing.T) {
	n := NewNotifier[int](nil)

	// A callback that unsubscribes itself must not deadlock or panic,
	// and must not run again on later posts.
	count := 0
	n.Subscribe("once", func(int) {
		count++
		n.Unsubscribe("once")
	})

	n.Post(0)
	n.Post(0)
	if count != 1 {
		t.Errorf("self-unsubscribing callback ran %d times, expected 1", count)
	}
}

func TestNotifierUnsubscribeUnknown(t *testing.T) {
	n := NewNotifier[int](nil)
	// Must be harmless.
	n.Unsubscribe("never-subscribed")
}

func TestNotifierDispatchOrder(t *testing.T) {
	n := NewNotifier[int](nil)

	// Subscribers run in subscription order: the display state owner
	// subscribes to the overlay list before the canvas and must see
	// additions first.
	var got []string
	record := func(name string) func(int) {
		return func(int) { got = append(got, name) }
	}
	n.Subscribe("c", record("c"))
	n.Subscribe("a", record("a"))
	n.Subscribe("b", record("b"))

	check := func(want ...string) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("got %v, expected %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, expected %v", got, want)
			}
		}
		got = nil
	}

	n.Post(0)
	check("c", "a", "b")

	// Replacing a callback keeps its dispatch position.
	n.Subscribe("c", record("c2"))
	n.Post(0)
	check("c2", "a", "b")

	n.Unsubscribe("a")
	n.Subscribe("d", record("d"))
	n.Post(0)
	check("c2", "b", "d")
}
