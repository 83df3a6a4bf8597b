// pkg/scene/globject.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/neuroview/neuroview/pkg/events"
	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// GLObject is the renderable form of an overlay. Construction may
// allocate GL resources (it runs on the idle queue with the GL context
// current), and an object may not be ready to draw immediately; the
// compositor skips objects until Ready reports true.
//
// Drawing is split into three phases so that the compositor can
// interleave per-object state changes with its own depth bookkeeping:
// PreDraw sets up GL state, Draw3D emits geometry under the given
// model-view transform, and PostDraw restores state.
type GLObject interface {
	Ready() bool

	PreDraw(cb *renderer.CommandBuffer, xform mgl32.Mat4)
	Draw3D(cb *renderer.CommandBuffer, xform mgl32.Mat4)
	PostDraw(cb *renderer.CommandBuffer, xform mgl32.Mat4)

	// Register arranges for notify to be called whenever the object
	// changes in a way that requires a redraw.
	Register(name string, notify func())
	Deregister(name string)

	// Destroy frees the object's GL resources; the object must not be
	// drawn afterwards.
	Destroy()
}

// glObjectNotifier provides the Register/Deregister half of GLObject for
// embedding in concrete implementations.
type glObjectNotifier struct {
	notifier *events.Notifier[struct{}]
}

func makeGLObjectNotifier(lg *log.Logger) glObjectNotifier {
	return glObjectNotifier{notifier: events.NewNotifier[struct{}](lg)}
}

func (g *glObjectNotifier) Register(name string, notify func()) {
	g.notifier.Subscribe(name, func(struct{}) { notify() })
}

func (g *glObjectNotifier) Deregister(name string) {
	g.notifier.Unsubscribe(name)
}

func (g *glObjectNotifier) changed() {
	g.notifier.Post(struct{}{})
}

// NewGLObject builds a GLObject for the given overlay according to its
// current display type. It returns nil if the overlay's display record is
// gone, if the display type is not renderable, or if the type does not
// match the overlay's data; the caller treats nil as "nothing to draw".
// gl21 indicates that the context supports OpenGL 2.1 or better, which
// enables smooth texture interpolation for volumes.
func NewGLObject(o overlay.Overlay, dctx *overlay.Context, r renderer.Renderer, gl21 bool, lg *log.Logger) GLObject {
	d, err := dctx.Display(o)
	if err != nil {
		return nil
	}

	switch d.Type() {
	case overlay.TypeVolume:
		if vol, ok := o.(*overlay.Volume); ok {
			return newGLVolume(vol, r, gl21, lg)
		}
	case overlay.TypeMesh, overlay.TypeGIFTIMesh:
		if mesh, ok := o.(*overlay.Mesh); ok {
			return newGLMesh(mesh, lg)
		}
	}

	lg.Warnf("%s: no GL object for display type %s", o.Name(), d.Type())
	return nil
}
