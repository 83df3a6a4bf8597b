// pkg/scene/canvas.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"fmt"

	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/math"
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/platform"
	"github.com/neuroview/neuroview/pkg/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the subset of the windowing layer that the canvas needs: a
// way to bind the GL context, the drawable size, and a way to request
// that the next frame be drawn.
type Surface interface {
	MakeContextCurrent() bool
	WindowSize() [2]int
	DPIScale() float32
	PostRedisplay()
}

// Canvas draws a single 3D scene: all renderable overlays in the overlay
// list, composited by the occlusion rules in orderOverlays, plus the
// location cursor, orientation legend, light indicator, and bounding
// box. All canvas methods must be called from the main thread; deferred
// work goes through the idle queue rather than goroutines, matching the
// one-thread-owns-the-GL-context model.
type Canvas struct {
	name string
	lg   *log.Logger

	surface  Surface
	queue    *platform.IdleQueue
	renderer renderer.Renderer

	overlayList *overlay.List
	displayCtx  *overlay.Context
	opts        *CanvasOpts

	glObjects map[overlay.Overlay]GLObject

	view   ViewParams
	viewOK bool

	resetLightPos bool
	initialized   bool
	destroyed     bool
}

func NewCanvas(list *overlay.List, dctx *overlay.Context, r renderer.Renderer,
	surface Surface, queue *platform.IdleQueue, lg *log.Logger) *Canvas {
	c := &Canvas{
		lg:            lg,
		surface:       surface,
		queue:         queue,
		renderer:      r,
		overlayList:   list,
		displayCtx:    dctx,
		opts:          NewCanvasOpts(lg),
		glObjects:     make(map[overlay.Overlay]GLObject),
		resetLightPos: true,
	}
	c.name = fmt.Sprintf("Scene3DCanvas_%p", c)

	list.OnChange().Subscribe(c.name, c.overlayListChanged)
	dctx.OnBounds().Subscribe(c.name, c.displayBoundsChanged)
	c.opts.OnChange().Subscribe(c.name, func(OptChange) { c.Refresh() })

	return c
}

func (c *Canvas) Name() string { return c.name }

func (c *Canvas) Opts() *CanvasOpts { return c.opts }

// InitGL runs the initial synchronization against the overlay list and
// display bounds; it is called once, after the GL context exists.
func (c *Canvas) InitGL() {
	if c.initialized {
		return
	}
	c.initialized = true
	c.overlayListChanged(overlay.ListEvent{})
	c.displayBoundsChanged(overlay.BoundsEvent{Bounds: c.displayCtx.Bounds()})
}

// Destroy unhooks the canvas from the overlay list, display context, and
// options, and destroys all GL objects. Pending idle-queue construction
// tasks notice the destruction and become no-ops.
func (c *Canvas) Destroy() {
	if c.destroyed {
		return
	}

	c.overlayList.OnChange().Unsubscribe(c.name)
	c.displayCtx.OnBounds().Unsubscribe(c.name)
	c.opts.OnChange().Unsubscribe(c.name)

	var overlays []overlay.Overlay
	for o := range c.glObjects {
		overlays = append(overlays, o)
	}
	for _, o := range overlays {
		c.deregisterOverlay(o)
	}

	c.destroyed = true
}

func (c *Canvas) Destroyed() bool { return c.destroyed }

// Refresh requests that the scene be redrawn on the next frame.
func (c *Canvas) Refresh() {
	c.surface.PostRedisplay()
}

func (c *Canvas) overlayListChanged(ev overlay.ListEvent) {
	var stale []overlay.Overlay
	for o := range c.glObjects {
		if !c.overlayList.Contains(o) {
			stale = append(stale, o)
		}
	}
	for _, o := range stale {
		c.deregisterOverlay(o)
	}

	for _, o := range c.overlayList.Overlays() {
		if _, ok := c.glObjects[o]; !ok {
			c.registerOverlay(o)
		}
	}

	// Even a pure reorder changes the composite.
	c.Refresh()
}

func (c *Canvas) displayBoundsChanged(ev overlay.BoundsEvent) {
	if c.resetLightPos {
		c.DefaultLightPos()
	}
	c.Refresh()
}

// ResetLightPos reports whether the light position tracks the display
// bounds; when set, any bounds change moves the light back to its
// default position.
func (c *Canvas) ResetLightPos() bool { return c.resetLightPos }

func (c *Canvas) SetResetLightPos(reset bool) {
	c.resetLightPos = reset
	if reset {
		c.DefaultLightPos()
	}
}

// DefaultLightPos puts the light above and to the right of the scene:
// offset from the centre by the bounds' x and y extents.
func (c *Canvas) DefaultLightPos() {
	b := c.displayCtx.Bounds()
	if b.IsEmpty() {
		return
	}
	centre := b.Center()
	c.opts.SetLightPos([3]float32{
		centre[0] + b.XLen(),
		centre[1] + b.YLen(),
		centre[2],
	})
}

// ViewParams returns the matrices from the most recent draw; ok is false
// if no valid view has been computed (empty viewport or no drawable
// bounds).
func (c *Canvas) ViewParams() (ViewParams, bool) {
	return c.view, c.viewOK
}

// CanvasToWorld maps a canvas position in pixels, origin bottom left, to
// world coordinates using the view matrix from the most recent draw.
func (c *Canvas) CanvasToWorld(x, y float32) ([3]float32, bool) {
	if !c.viewOK {
		return [3]float32{}, false
	}
	sz := c.surface.WindowSize()
	return CanvasToWorld(c.view, c.displayCtx.Bounds(), x, y, sz[0], sz[1])
}

// setViewport recomputes the view for the current bounds, options, and
// window size, and emits the viewport and matrix-load commands. It
// returns false if there is nothing sensible to draw.
func (c *Canvas) setViewport(cb *renderer.CommandBuffer) bool {
	sz := c.surface.WindowSize()
	vp, ok := ComputeView(c.displayCtx.Bounds(), c.opts.Zoom(), c.opts.Offset(),
		c.opts.Rotation(), sz[0], sz[1])
	c.viewOK = ok
	if !ok {
		return false
	}
	c.view = vp

	scale := c.surface.DPIScale()
	cb.Viewport(0, 0, int(scale*float32(sz[0])), int(scale*float32(sz[1])))
	cb.LoadProjectionMatrix(vp.Proj)
	cb.LoadModelViewMatrix(mgl32.Ident4())
	return true
}

// Draw composites the scene into the given command buffer.
//
// With occlusion on, each successive overlay is drawn with a slightly
// larger depth offset, so that overlays later in the draw order win depth
// ties against earlier ones while genuine occlusion between them still
// resolves correctly. With occlusion off, the depth buffer is cleared
// before each volume, so every volume is fully visible regardless of what
// was drawn before it.
func (c *Canvas) Draw(cb *renderer.CommandBuffer) {
	if c.destroyed || !c.surface.MakeContextCurrent() {
		return
	}

	cb.ClearRGB(c.opts.BgColour())

	if !c.setViewport(cb) {
		return
	}

	overlays, globjs := c.GetGLObjects()

	depthOffset := mgl32.Translate3D(0, 0, 0.1)
	xform := c.view.View
	for i, o := range overlays {
		d, err := c.displayCtx.Display(o)
		if err != nil || !d.Enabled() || !globjs[i].Ready() {
			continue
		}

		if c.opts.Occlusion() {
			xform = depthOffset.Mul4(xform)
		} else if o.Kind() == overlay.KindVolume {
			cb.ClearDepth()
		}

		c.lg.Debugf("%s: drawing", o.Name())
		globjs[i].PreDraw(cb, xform)
		globjs[i].Draw3D(cb, xform)
		globjs[i].PostDraw(cb, xform)
	}

	// The decorations pre-transform their vertices on the CPU and must
	// not pick up the last overlay's modelview matrix.
	cb.LoadModelViewMatrix(mgl32.Ident4())

	if c.opts.ShowCursor() {
		c.drawCursor(cb)
	}
	if c.opts.ShowLegend() {
		c.drawLegend(cb)
	}
	if c.opts.ShowLight() {
		c.drawLight(cb)
	}
	if c.opts.ShowBoundingBox() {
		c.drawBoundingBox(cb)
	}
}

func (c *Canvas) transformPoint(p [3]float32) [3]float32 {
	w := mgl32.TransformCoordinate(mgl32.Vec3{p[0], p[1], p[2]}, c.view.View)
	return [3]float32{w[0], w[1], w[2]}
}

// drawCursor draws three lines through the cursor position, one spanning
// the display bounds along each world axis. The cursor depth-tests
// against the scene so that it is occluded like any other geometry.
func (c *Canvas) drawCursor(cb *renderer.CommandBuffer) {
	b := c.displayCtx.Bounds()
	pos := c.opts.Pos()

	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)

	for axis := 0; axis < 3; axis++ {
		p0, p1 := pos, pos
		p0[axis], p1[axis] = b.P0[axis], b.P1[axis]
		ld.AddLine(c.transformPoint(p0), c.transformPoint(p1))
	}

	cb.EnableDepthTest()
	cb.SetRGB(c.opts.CursorColour())
	cb.LineWidth(1, c.surface.DPIScale())
	ld.GenerateCommands(cb)
	cb.DisableDepthTest()
}

// legendTransform positions the orientation legend in the bottom left
// corner of the viewport. Its rotation is the full view rotation, camera
// included, so that the legend's arms track how the world axes actually
// appear on screen.
func legendTransform(v ViewParams, b math.Box3, width, height int) mgl32.Mat4 {
	xlen, ylen := math.AdjustAspect(b.XLen(), b.YLen(), width, height)

	// 30 pixels per axis arm, inset a couple of arm lengths from the
	// corner.
	scale := xlen * 30 / float32(width)
	rot := v.Camera.Mat3().Mul3(v.Rotation)
	return mgl32.Translate3D(-0.5*xlen+2*scale, -0.5*ylen+2*scale, 0).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// drawLegend draws a small set of axes in the bottom left corner,
// rotated with the scene and labelled with the selected overlay's
// anatomical orientation labels. It is drawn without depth testing, on
// top of everything else.
func (c *Canvas) drawLegend(cb *renderer.CommandBuffer) {
	b := c.displayCtx.Bounds()
	sz := c.surface.WindowSize()
	xlen, _ := math.AdjustAspect(b.XLen(), b.YLen(), sz[0], sz[1])
	xform := legendTransform(c.view, b, sz[0], sz[1])

	vertices := [6][3]float32{
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}
	transform := func(p [3]float32, f float32) [3]float32 {
		w := mgl32.TransformCoordinate(mgl32.Vec3{p[0] * f, p[1] * f, p[2] * f}, xform)
		return [3]float32{w[0], w[1], w[2]}
	}

	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)

	for axis := 0; axis < 3; axis++ {
		ld.AddLine(transform(vertices[2*axis], 1), transform(vertices[2*axis+1], 1))
	}

	cb.SetRGB(c.opts.CursorColour())
	cb.LineWidth(2, c.surface.DPIScale())
	ld.GenerateCommands(cb)

	selected := c.displayCtx.SelectedOverlay()
	if selected == nil {
		return
	}
	d, err := c.displayCtx.Display(selected)
	if err != nil {
		return
	}

	// Labels are a fixed 10 pixels tall regardless of the scene extent.
	labelSize := 10 * xlen / float32(sz[0])
	labels := d.OrientationLabels()
	lt := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(lt)
	for i, label := range labels {
		lt.AddText(label, transform(vertices[i], 1.2), labelSize)
	}

	cb.SetRGB(c.opts.LegendColour())
	cb.LineWidth(1, c.surface.DPIScale())
	lt.GenerateCommands(cb)
}

// drawLight draws a point at the light position and a line from there to
// the scene centre. The light position is a world-space property that the
// view's scale would otherwise apply twice, so it is scaled directly
// rather than going through the view matrix.
func (c *Canvas) drawLight(cb *renderer.CommandBuffer) {
	light := math.Scale3f(c.opts.LightPos(), c.opts.Zoom()/100)
	centre := c.transformPoint(c.displayCtx.Bounds().Center())

	pd := &renderer.PointsDrawBuilder{}
	pd.AddPoint(light)

	cb.SetRGB(renderer.RGB{R: 1, G: 1, B: 1})
	cb.PointSize(10, c.surface.DPIScale())
	pd.GenerateCommands(cb)

	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)
	ld.AddLine(light, centre)
	cb.SetRGB(renderer.RGB{R: 1, B: 1})
	cb.LineWidth(1, c.surface.DPIScale())
	ld.GenerateCommands(cb)
}

// drawBoundingBox draws the edges of the display bounds.
func (c *Canvas) drawBoundingBox(cb *renderer.CommandBuffer) {
	b := c.displayCtx.Bounds()
	corners := b.Corners()

	// Corners() orders each box face so that indices differing in one
	// bit share an edge.
	edges := [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7},
		{0, 2}, {1, 3}, {4, 6}, {5, 7},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	ld := renderer.GetLinesDrawBuilder()
	defer renderer.ReturnLinesDrawBuilder(ld)
	for _, e := range edges {
		ld.AddLine(c.transformPoint(corners[e[0]]), c.transformPoint(corners[e[1]]))
	}

	cb.SetRGB(renderer.RGB{R: 0.5})
	cb.LineWidth(2, c.surface.DPIScale())
	ld.GenerateCommands(cb)
}
