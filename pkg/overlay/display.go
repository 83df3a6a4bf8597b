// pkg/overlay/display.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overlay

import (
	"errors"

	"github.com/neuroview/neuroview/pkg/events"
	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/math"
)

// ErrInvalidOverlay is returned for display lookups of overlays that have
// been removed from the overlay list. Teardown paths that race with list
// removal are expected to hit this and ignore it.
var ErrInvalidOverlay = errors.New("overlay is no longer in the overlay list")

// Type is the declared display type of an overlay: how the user has asked
// for it to be shown, as opposed to Kind, which is what the data is. Only
// some types are renderable by the 3D canvas; the rest are silently
// skipped at registration.
type Type int

const (
	TypeUnknown Type = iota
	TypeVolume
	TypeMesh
	TypeGIFTIMesh
	TypeLabel
)

func (t Type) String() string {
	return [...]string{"unknown", "volume", "mesh", "giftimesh", "label"}[t]
}

// Renderable reports whether the 3D canvas knows how to build a GL object
// for an overlay displayed with this type.
func (t Type) Renderable() bool {
	return t == TypeVolume || t == TypeMesh || t == TypeGIFTIMesh
}

func defaultType(o Overlay) Type {
	switch o.Kind() {
	case KindVolume:
		return TypeVolume
	case KindMesh:
		return TypeMesh
	default:
		return TypeUnknown
	}
}

// The default orientation labels assume the world x axis runs left to
// right, y posterior to anterior, and z inferior to superior, in the
// order (xlo, xhi, ylo, yhi, zlo, zhi).
var defaultLabels = [6]string{"L", "R", "P", "A", "I", "S"}

///////////////////////////////////////////////////////////////////////////
// Display

// Display holds the per-overlay display settings that the 3D canvas cares
// about: whether the overlay is shown at all and what type it is
// displayed as. Both are observable.
type Display struct {
	overlay  Overlay
	enabled  bool
	otype    Type
	labels   [6]string
	enabledN *events.Notifier[bool]
	typeN    *events.Notifier[Type]
}

func newDisplay(o Overlay, lg *log.Logger) *Display {
	return &Display{
		overlay:  o,
		enabled:  true,
		otype:    defaultType(o),
		labels:   defaultLabels,
		enabledN: events.NewNotifier[bool](lg),
		typeN:    events.NewNotifier[Type](lg),
	}
}

func (d *Display) Overlay() Overlay { return d.overlay }

func (d *Display) Enabled() bool { return d.enabled }

func (d *Display) SetEnabled(enabled bool) {
	if d.enabled != enabled {
		d.enabled = enabled
		d.enabledN.Post(enabled)
	}
}

func (d *Display) Type() Type { return d.otype }

func (d *Display) SetType(t Type) {
	if d.otype != t {
		d.otype = t
		d.typeN.Post(t)
	}
}

// OrientationLabels returns the anatomical direction labels for the
// overlay's six bounds faces, in the order (xlo, xhi, ylo, yhi, zlo,
// zhi).
func (d *Display) OrientationLabels() [6]string { return d.labels }

func (d *Display) SetOrientationLabels(labels [6]string) { d.labels = labels }

func (d *Display) OnEnabled() *events.Notifier[bool] { return d.enabledN }

func (d *Display) OnType() *events.Notifier[Type] { return d.typeN }

///////////////////////////////////////////////////////////////////////////
// Context

// BoundsEvent is posted when the world-space scene bounds change.
type BoundsEvent struct {
	Bounds math.Box3
}

// Context (the display context) tracks the scene-level display state
// shared by all views: the bounds of the world-space box that encloses
// every loaded overlay, the per-overlay Display records, and which
// overlay is currently selected. It watches the overlay list and keeps
// all of these up to date.
type Context struct {
	list     *List
	displays map[Overlay]*Display
	bounds   math.Box3
	selected Overlay
	boundsN  *events.Notifier[BoundsEvent]
	lg       *log.Logger
}

const contextListenerName = "DisplayContext"

func NewContext(list *List, lg *log.Logger) *Context {
	c := &Context{
		list:     list,
		displays: make(map[Overlay]*Display),
		bounds:   math.EmptyBox3(),
		boundsN:  events.NewNotifier[BoundsEvent](lg),
		lg:       lg,
	}
	list.OnChange().Subscribe(contextListenerName, c.overlayListChanged)
	c.overlayListChanged(ListEvent{Added: list.Overlays()})
	return c
}

// Destroy unsubscribes the context from the overlay list; it must be
// called exactly once when the context is no longer needed.
func (c *Context) Destroy() {
	c.list.OnChange().Unsubscribe(contextListenerName)
	clear(c.displays)
}

func (c *Context) overlayListChanged(ev ListEvent) {
	for _, o := range ev.Removed {
		delete(c.displays, o)
		if c.selected == o {
			c.selected = nil
		}
	}
	for _, o := range ev.Added {
		if _, ok := c.displays[o]; !ok {
			c.displays[o] = newDisplay(o, c.lg)
		}
		c.selected = o
	}
	if c.selected == nil {
		if overlays := c.list.Overlays(); len(overlays) > 0 {
			c.selected = overlays[len(overlays)-1]
		}
	}

	c.updateBounds()
}

func (c *Context) updateBounds() {
	bounds := math.EmptyBox3()
	for _, o := range c.list.Overlays() {
		bounds = math.Union3(bounds, o.Bounds())
	}
	if bounds != c.bounds {
		c.bounds = bounds
		c.boundsN.Post(BoundsEvent{Bounds: bounds})
	}
}

// Bounds returns the world-space box enclosing all loaded overlays; it is
// empty (inverted) when no overlays are loaded.
func (c *Context) Bounds() math.Box3 { return c.bounds }

func (c *Context) OnBounds() *events.Notifier[BoundsEvent] { return c.boundsN }

// Display returns the Display record for the given overlay, or
// ErrInvalidOverlay if the overlay is not (or is no longer) in the list.
func (c *Context) Display(o Overlay) (*Display, error) {
	d, ok := c.displays[o]
	if !ok {
		return nil, ErrInvalidOverlay
	}
	return d, nil
}

// OrderedOverlays returns the overlays in their current list order.
func (c *Context) OrderedOverlays() []Overlay {
	return c.list.Overlays()
}

func (c *Context) SelectedOverlay() Overlay { return c.selected }

func (c *Context) SetSelectedOverlay(o Overlay) {
	if o != nil && !c.list.Contains(o) {
		c.lg.Warnf("%s: selecting overlay that is not in the list", o.Name())
		return
	}
	c.selected = o
}
