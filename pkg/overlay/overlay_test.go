// pkg/overlay/overlay_test.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overlay

import (
	"errors"
	"testing"

	"github.com/neuroview/neuroview/pkg/math"

	"github.com/go-gl/mathgl/mgl32"
)

func testVolume(name string, translate [3]float32) *Volume {
	dims := [3]int{4, 4, 4}
	data := make([]float32, 64)
	for i := range data {
		data[i] = float32(i)
	}
	xf := mgl32.Translate3D(translate[0], translate[1], translate[2])
	return NewVolume(name, dims, data, xf)
}

func TestVolumeValue(t *testing.T) {
	v := testVolume("vol", [3]float32{})

	if val := v.Value(1, 2, 3); val != 1+4*(2+4*3) {
		t.Errorf("Value(1,2,3) = %g", val)
	}
	// Out-of-grid lookups return 0 rather than panicking.
	for _, idx := range [][3]int{{-1, 0, 0}, {4, 0, 0}, {0, 0, 17}} {
		if val := v.Value(idx[0], idx[1], idx[2]); val != 0 {
			t.Errorf("Value(%v) = %g, expected 0", idx, val)
		}
	}

	dmin, dmax := v.DataRange()
	if dmin != 0 || dmax != 63 {
		t.Errorf("DataRange() = %g, %g", dmin, dmax)
	}
}

func TestVolumeBounds(t *testing.T) {
	v := testVolume("vol", [3]float32{10, 20, 30})
	b := v.Bounds()
	if b.P0 != [3]float32{10, 20, 30} || b.P1 != [3]float32{14, 24, 34} {
		t.Errorf("bounds %+v", b)
	}
}

func TestListEvents(t *testing.T) {
	l := NewList(nil)

	var added, removed []Overlay
	l.OnChange().Subscribe("test", func(ev ListEvent) {
		added = append(added, ev.Added...)
		removed = append(removed, ev.Removed...)
	})

	v := testVolume("a", [3]float32{})
	l.Add(v)
	if len(added) != 1 || added[0] != Overlay(v) {
		t.Errorf("added %v", added)
	}

	// Duplicate adds are ignored.
	l.Add(v)
	if l.Len() != 1 || len(added) != 1 {
		t.Errorf("duplicate add changed the list")
	}

	l.Remove(v)
	if len(removed) != 1 || removed[0] != Overlay(v) {
		t.Errorf("removed %v", removed)
	}
	if l.Contains(v) {
		t.Errorf("list still contains removed overlay")
	}
}

func TestListMove(t *testing.T) {
	l := NewList(nil)
	a := testVolume("a", [3]float32{})
	b := testVolume("b", [3]float32{})
	c := testVolume("c", [3]float32{})
	l.Add(a)
	l.Add(b)
	l.Add(c)

	events := 0
	l.OnChange().Subscribe("test", func(ListEvent) { events++ })

	l.Move(0, 2)
	overlays := l.Overlays()
	if overlays[0] != Overlay(b) || overlays[1] != Overlay(c) || overlays[2] != Overlay(a) {
		t.Errorf("order after move: %v %v %v", overlays[0].Name(), overlays[1].Name(), overlays[2].Name())
	}
	if events != 1 {
		t.Errorf("%d events posted for move", events)
	}
}

func TestContextBounds(t *testing.T) {
	l := NewList(nil)
	ctx := NewContext(l, nil)
	defer ctx.Destroy()

	if !ctx.Bounds().IsEmpty() {
		t.Errorf("bounds not empty with no overlays")
	}

	var boundsEvents []math.Box3
	ctx.OnBounds().Subscribe("test", func(ev BoundsEvent) { boundsEvents = append(boundsEvents, ev.Bounds) })

	a := testVolume("a", [3]float32{0, 0, 0})
	b := testVolume("b", [3]float32{10, 0, 0})
	l.Add(a)
	l.Add(b)

	want := math.Box3{P1: [3]float32{14, 4, 4}}
	if bounds := ctx.Bounds(); bounds != want {
		t.Errorf("bounds %+v, expected %+v", bounds, want)
	}
	if len(boundsEvents) != 2 {
		t.Errorf("%d bounds events, expected 2", len(boundsEvents))
	}

	// A reorder doesn't change the bounds, so no event is posted.
	l.Move(0, 1)
	if len(boundsEvents) != 2 {
		t.Errorf("bounds event posted for pure reorder")
	}

	l.Remove(b)
	if bounds := ctx.Bounds(); bounds != a.Bounds() {
		t.Errorf("bounds %+v after removal", bounds)
	}
}

func TestContextDisplayLifetime(t *testing.T) {
	l := NewList(nil)
	ctx := NewContext(l, nil)
	defer ctx.Destroy()

	v := testVolume("a", [3]float32{})
	l.Add(v)

	d, err := ctx.Display(v)
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if !d.Enabled() {
		t.Errorf("new display not enabled")
	}
	if d.Type() != TypeVolume {
		t.Errorf("display type %s, expected volume", d.Type())
	}

	l.Remove(v)
	if _, err := ctx.Display(v); !errors.Is(err, ErrInvalidOverlay) {
		t.Errorf("Display after removal: %v, expected ErrInvalidOverlay", err)
	}
}

func TestContextSelection(t *testing.T) {
	l := NewList(nil)
	ctx := NewContext(l, nil)
	defer ctx.Destroy()

	if ctx.SelectedOverlay() != nil {
		t.Errorf("selection with empty list")
	}

	a := testVolume("a", [3]float32{})
	b := testVolume("b", [3]float32{})
	l.Add(a)
	l.Add(b)
	// The most recently added overlay becomes the selection.
	if ctx.SelectedOverlay() != Overlay(b) {
		t.Errorf("selected %v, expected b", ctx.SelectedOverlay())
	}

	l.Remove(b)
	if ctx.SelectedOverlay() != Overlay(a) {
		t.Errorf("selection did not fall back after removal")
	}
}

func TestDisplayNotifiers(t *testing.T) {
	l := NewList(nil)
	ctx := NewContext(l, nil)
	defer ctx.Destroy()

	v := testVolume("a", [3]float32{})
	l.Add(v)
	d, _ := ctx.Display(v)

	var enabledEvents []bool
	var typeEvents []Type
	d.OnEnabled().Subscribe("test", func(e bool) { enabledEvents = append(enabledEvents, e) })
	d.OnType().Subscribe("test", func(ty Type) { typeEvents = append(typeEvents, ty) })

	d.SetEnabled(false)
	d.SetEnabled(false) // no-op
	if len(enabledEvents) != 1 || enabledEvents[0] != false {
		t.Errorf("enabled events %v", enabledEvents)
	}

	d.SetType(TypeMesh)
	if len(typeEvents) != 1 || typeEvents[0] != TypeMesh {
		t.Errorf("type events %v", typeEvents)
	}
}
