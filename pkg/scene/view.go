// pkg/scene/view.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/neuroview/neuroview/pkg/math"

	"github.com/go-gl/mathgl/mgl32"
)

// boundsTol is the absolute tolerance used to decide that a display
// bounds axis has collapsed to a point.
const boundsTol = 1e-5

// ViewParams carries the matrices for one frame: the composed view
// matrix, the orthographic projection, and the individual pieces the
// view was built from. Rotation is the bare 3x3 rotation, before it is
// re-centred on the scene; the legend uses it to orient its axes.
type ViewParams struct {
	View     mgl32.Mat4
	Proj     mgl32.Mat4
	Scale    mgl32.Mat4
	Offset   mgl32.Mat4
	Rotate   mgl32.Mat4
	Camera   mgl32.Mat4
	Rotation mgl32.Mat3
}

// ComputeView builds the view and projection matrices for a scene with
// the given display bounds, drawn into a width x height viewport. It
// returns false if the viewport is empty or the bounds are degenerate
// along more than one axis, in which case nothing can sensibly be drawn.
//
// The view matrix is composed as offset * scale * camera * rotate: the
// scene is first rotated about its centre, then viewed by a fixed camera
// sitting one unit up the world y axis looking back at the centre with
// +z up, then scaled by zoom/100, and finally panned. The projection is
// a plain ortho over the aspect-corrected bounds; zoom lives entirely in
// the view matrix, so the projection only needs a depth range generous
// enough to hold the zoomed scene.
func ComputeView(b math.Box3, zoom float32, offset [2]float32, rotation mgl32.Mat3, width, height int) (ViewParams, bool) {
	if width <= 0 || height <= 0 {
		return ViewParams{}, false
	}
	if b.IsEmpty() || b.DegenerateAxes(boundsTol) > 1 {
		return ViewParams{}, false
	}

	centre := b.Center()
	cv := mgl32.Vec3{centre[0], centre[1], centre[2]}

	s := zoom / 100
	scale := mgl32.Scale3D(s, s, s)

	rotate := mgl32.Translate3D(cv[0], cv[1], cv[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Translate3D(-cv[0], -cv[1], -cv[2]))

	eye := cv.Add(mgl32.Vec3{0, 1, 0})
	camera := mgl32.LookAtV(eye, cv, mgl32.Vec3{0, 0, 1})

	xlen, ylen := math.AdjustAspect(b.XLen(), b.YLen(), width, height)
	off := mgl32.Translate3D(xlen*offset[0]/2, ylen*offset[1]/2, 0)

	view := off.Mul4(scale).Mul4(camera).Mul4(rotate)

	// The scene may be arbitrarily rotated and magnified up to
	// ZoomMax/100, so size the depth range to the zoomed diagonal.
	zlen := math.Length3f(b.Lens())
	depth := math.Max(s, 1)*zlen + 1
	proj := mgl32.Ortho(-xlen/2, xlen/2, -ylen/2, ylen/2, -depth, depth)

	return ViewParams{
		View:     view,
		Proj:     proj,
		Scale:    scale,
		Offset:   off,
		Rotate:   rotate,
		Camera:   camera,
		Rotation: rotation,
	}, true
}

// CanvasToWorld maps a canvas position in pixels, origin at the bottom
// left, to the world-space point on the near plane that projects there
// under the given view.
func CanvasToWorld(v ViewParams, b math.Box3, x, y float32, width, height int) ([3]float32, bool) {
	if width <= 0 || height <= 0 {
		return [3]float32{}, false
	}

	xlen, ylen := math.AdjustAspect(b.XLen(), b.YLen(), width, height)
	xpos := xlen*(x/float32(width)) - xlen/2
	ypos := ylen*(y/float32(height)) - ylen/2

	inv := v.View.Inv()
	w := mgl32.TransformCoordinate(mgl32.Vec3{xpos, ypos, -1}, inv)
	return [3]float32{w[0], w[1], w[2]}, true
}
