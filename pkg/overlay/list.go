// pkg/overlay/list.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overlay

import (
	"slices"

	"github.com/neuroview/neuroview/pkg/events"
	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/util"
)

// ListEvent describes a change to the overlay list. A pure reorder has
// empty Added and Removed.
type ListEvent struct {
	Added   []Overlay
	Removed []Overlay
}

// List is the ordered collection of loaded overlays; insertion order
// defines the default draw order. Anything that needs to react to
// overlays coming and going subscribes via OnChange.
type List struct {
	overlays []Overlay
	notifier *events.Notifier[ListEvent]
	lg       *log.Logger
}

func NewList(lg *log.Logger) *List {
	return &List{notifier: events.NewNotifier[ListEvent](lg), lg: lg}
}

// OnChange returns the notifier used to subscribe to list changes.
func (l *List) OnChange() *events.Notifier[ListEvent] {
	return l.notifier
}

// Overlays returns the overlays in order. The returned slice is a copy;
// the caller may hold on to it.
func (l *List) Overlays() []Overlay {
	return util.DuplicateSlice(l.overlays)
}

func (l *List) Len() int {
	return len(l.overlays)
}

func (l *List) Contains(o Overlay) bool {
	return slices.Contains(l.overlays, o)
}

// Add appends the given overlay to the end of the list; adding an overlay
// that is already present is a logged no-op.
func (l *List) Add(o Overlay) {
	if l.Contains(o) {
		l.lg.Warnf("%s: overlay added to list twice", o.Name())
		return
	}
	l.overlays = append(l.overlays, o)
	l.notifier.Post(ListEvent{Added: []Overlay{o}})
}

// Remove removes the given overlay from the list; removing an overlay
// that is not present is a logged no-op.
func (l *List) Remove(o Overlay) {
	idx := slices.Index(l.overlays, o)
	if idx == -1 {
		l.lg.Warnf("%s: removed overlay is not in the list", o.Name())
		return
	}
	l.overlays = util.DeleteSliceElement(l.overlays, idx)
	l.notifier.Post(ListEvent{Removed: []Overlay{o}})
}

// Move moves the overlay at index from to index to, shifting the
// intervening overlays, and notifies subscribers of the reorder.
func (l *List) Move(from, to int) {
	if from == to {
		return
	}
	o := l.overlays[from]
	l.overlays = util.DeleteSliceElement(l.overlays, from)
	l.overlays = slices.Insert(l.overlays, to, o)
	l.notifier.Post(ListEvent{})
}
