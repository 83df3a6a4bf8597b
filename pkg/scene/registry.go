// pkg/scene/registry.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/util"
)

// The canvas keeps one GLObject per renderable overlay in glObjects. A
// nil entry means construction is pending: it has been scheduled on the
// idle queue but has not run yet. The pending entry both dedupes repeated
// construction requests and lets the compositor distinguish "not yet
// ready" from "never registered".

// registerOverlay starts tracking an overlay: it requests a GL object and
// subscribes to the display settings whose changes matter to this canvas.
// Overlays that cannot be drawn in 3D are ignored.
func (c *Canvas) registerOverlay(o overlay.Overlay) {
	if o.Kind() == overlay.KindOther {
		return
	}

	c.lg.Debugf("%s: registering overlay", o.Name())

	if !c.genGLObject(o) {
		return
	}

	if d, err := c.displayCtx.Display(o); err == nil {
		d.OnEnabled().Subscribe(c.name, func(bool) { c.Refresh() })
		d.OnType().Subscribe(c.name, func(overlay.Type) { c.overlayTypeChanged(o) })
	}
}

// deregisterOverlay stops tracking an overlay, destroying its GL object
// if one was built. The overlay's display record may already be gone if
// deregistration was triggered by list removal.
func (c *Canvas) deregisterOverlay(o overlay.Overlay) {
	c.lg.Debugf("%s: deregistering overlay", o.Name())

	if d, err := c.displayCtx.Display(o); err == nil {
		d.OnEnabled().Unsubscribe(c.name)
		d.OnType().Unsubscribe(c.name)
	}

	if globj, ok := c.glObjects[o]; ok {
		delete(c.glObjects, o)
		if globj != nil {
			globj.Deregister(c.name)
			globj.Destroy()
		}
	}
}

// genGLObject schedules construction of a GL object for the given
// overlay. Construction is deferred to the idle queue because it needs
// the GL context current, and because several overlays may be added in
// one batch before the canvas next draws. It returns false if the
// overlay already has an object (or one pending), or if its current
// display type is not renderable.
func (c *Canvas) genGLObject(o overlay.Overlay) bool {
	if _, ok := c.glObjects[o]; ok {
		return false
	}
	d, err := c.displayCtx.Display(o)
	if err != nil || !d.Type().Renderable() {
		return false
	}

	c.glObjects[o] = nil

	c.queue.Schedule(func() {
		// The canvas, or this overlay's registration, may have been torn
		// down between scheduling and now.
		if c.destroyed {
			return
		}
		if globj, ok := c.glObjects[o]; !ok || globj != nil {
			return
		}
		if !c.surface.MakeContextCurrent() {
			delete(c.glObjects, o)
			return
		}

		c.lg.Debugf("%s: creating GL object", o.Name())
		if globj := NewGLObject(o, c.displayCtx, c.renderer, true, c.lg); globj != nil {
			globj.Register(c.name, c.Refresh)
			c.glObjects[o] = globj
			c.Refresh()
		}
	})
	return true
}

// overlayTypeChanged rebuilds an overlay's GL object after its display
// type changes; the old object, if any, is destroyed.
func (c *Canvas) overlayTypeChanged(o overlay.Overlay) {
	if globj, ok := c.glObjects[o]; ok {
		delete(c.glObjects, o)
		if globj != nil {
			globj.Deregister(c.name)
			globj.Destroy()
		}
	}
	c.genGLObject(o)
	c.Refresh()
}

// GetGLObject returns the GL object for the given overlay, or nil if the
// overlay is unregistered or its object is still pending.
func (c *Canvas) GetGLObject(o overlay.Overlay) GLObject {
	return c.glObjects[o]
}

// orderOverlays returns the overlays in the order the compositor draws
// them. With occlusion on, surfaces go first so that the volume slices
// blend over them; with occlusion off, volumes go first, each clearing
// the depth buffer, so that surfaces always appear on top. Within each
// group the overlay list order is preserved.
func orderOverlays(overlays []overlay.Overlay, occlusion bool) []overlay.Overlay {
	surfs := util.FilterSlice(overlays, func(o overlay.Overlay) bool { return o.Kind() == overlay.KindMesh })
	vols := util.FilterSlice(overlays, func(o overlay.Overlay) bool { return o.Kind() == overlay.KindVolume })
	other := util.FilterSlice(overlays, func(o overlay.Overlay) bool { return o.Kind() == overlay.KindOther })

	var ordered []overlay.Overlay
	if occlusion {
		ordered = append(ordered, surfs...)
		ordered = append(ordered, vols...)
	} else {
		ordered = append(ordered, vols...)
		ordered = append(ordered, surfs...)
	}
	return append(ordered, other...)
}

// GetGLObjects returns the overlays that have a constructed GL object, in
// draw order, along with their objects. Overlays seen here for the first
// time are registered as a side effect, so a list change that somehow
// bypassed the canvas's listener still converges.
func (c *Canvas) GetGLObjects() ([]overlay.Overlay, []GLObject) {
	var overlays []overlay.Overlay
	var globjs []GLObject

	for _, o := range orderOverlays(c.displayCtx.OrderedOverlays(), c.opts.Occlusion()) {
		globj, ok := c.glObjects[o]
		if !ok {
			// No object and none pending; construction is asynchronous,
			// so the overlay is not drawable this frame regardless.
			c.registerOverlay(o)
		} else if globj != nil {
			overlays = append(overlays, o)
			globjs = append(globjs, globj)
		}
	}
	return overlays, globjs
}
