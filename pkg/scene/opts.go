// pkg/scene/opts.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/neuroview/neuroview/pkg/events"
	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/math"
	"github.com/neuroview/neuroview/pkg/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ZoomMin     = 1
	ZoomMax     = 5000
	ZoomDefault = 75
)

// OptChange identifies which canvas option changed; the canvas redraws on
// any of them, but other listeners may care which one it was.
type OptChange struct {
	Option string
}

// CanvasOpts holds the observable configuration for one 3D canvas: camera
// pose, colours, light, and the various show/hide flags. All mutation
// goes through setters, which notify subscribers synchronously; the zoom
// setter clamps to [ZoomMin, ZoomMax] so an out-of-range value is never
// stored.
type CanvasOpts struct {
	zoom         float32
	offset       [2]float32
	rotation     mgl32.Mat3
	pos          [3]float32
	bgColour     renderer.RGB
	cursorColour renderer.RGB
	legendColour renderer.RGB
	lightPos     [3]float32
	light        bool
	showCursor   bool
	showLegend   bool
	showLight    bool
	showBox      bool
	occlusion    bool

	notifier *events.Notifier[OptChange]
}

// OptsState is the plain-data snapshot of CanvasOpts, used for
// persistence and for resetting a canvas to saved settings.
type OptsState struct {
	Zoom         float32        `json:"zoom"`
	Offset       [2]float32     `json:"offset"`
	Rotation     mgl32.Mat3     `json:"rotation"`
	Pos          [3]float32     `json:"pos"`
	BgColour     renderer.RGB   `json:"bg_colour"`
	CursorColour renderer.RGB   `json:"cursor_colour"`
	LegendColour renderer.RGB   `json:"legend_colour"`
	LightPos     [3]float32     `json:"light_pos"`
	Light        bool           `json:"light"`
	ShowCursor   bool           `json:"show_cursor"`
	ShowLegend   bool           `json:"show_legend"`
	ShowLight    bool           `json:"show_light"`
	ShowBox      bool           `json:"show_bounding_box"`
	Occlusion    bool           `json:"occlusion"`
}

// DefaultOptsState returns the options a fresh canvas starts with.
func DefaultOptsState() OptsState {
	return OptsState{
		Zoom:         ZoomDefault,
		Rotation:     mgl32.Ident3(),
		BgColour:     renderer.RGB{R: 0.6, G: 0.6, B: 0.753},
		CursorColour: renderer.RGB{G: 1},
		LegendColour: renderer.RGB{G: 1},
		Light:        true,
		ShowCursor:   true,
		ShowLegend:   true,
		Occlusion:    true,
	}
}

func NewCanvasOpts(lg *log.Logger) *CanvasOpts {
	o := &CanvasOpts{notifier: events.NewNotifier[OptChange](lg)}
	o.Apply(DefaultOptsState())
	return o
}

// OnChange returns the notifier used to subscribe to option changes.
func (o *CanvasOpts) OnChange() *events.Notifier[OptChange] {
	return o.notifier
}

// State returns a snapshot of the current options.
func (o *CanvasOpts) State() OptsState {
	return OptsState{
		Zoom:         o.zoom,
		Offset:       o.offset,
		Rotation:     o.rotation,
		Pos:          o.pos,
		BgColour:     o.bgColour,
		CursorColour: o.cursorColour,
		LegendColour: o.legendColour,
		LightPos:     o.lightPos,
		Light:        o.light,
		ShowCursor:   o.showCursor,
		ShowLegend:   o.showLegend,
		ShowLight:    o.showLight,
		ShowBox:      o.showBox,
		Occlusion:    o.occlusion,
	}
}

// Apply sets all of the options from the given snapshot, posting a single
// change notification.
func (o *CanvasOpts) Apply(s OptsState) {
	o.zoom = math.Clamp(s.Zoom, ZoomMin, ZoomMax)
	o.offset = s.Offset
	o.rotation = s.Rotation
	o.pos = s.Pos
	o.bgColour = s.BgColour
	o.cursorColour = s.CursorColour
	o.legendColour = s.LegendColour
	o.lightPos = s.LightPos
	o.light = s.Light
	o.showCursor = s.ShowCursor
	o.showLegend = s.ShowLegend
	o.showLight = s.ShowLight
	o.showBox = s.ShowBox
	o.occlusion = s.Occlusion
	o.notifier.Post(OptChange{Option: "all"})
}

func (o *CanvasOpts) set(option string, changed bool) {
	if changed {
		o.notifier.Post(OptChange{Option: option})
	}
}

func (o *CanvasOpts) Zoom() float32 { return o.zoom }

func (o *CanvasOpts) SetZoom(z float32) {
	z = math.Clamp(z, ZoomMin, ZoomMax)
	changed := z != o.zoom
	o.zoom = z
	o.set("zoom", changed)
}

func (o *CanvasOpts) Offset() [2]float32 { return o.offset }

func (o *CanvasOpts) SetOffset(offset [2]float32) {
	changed := offset != o.offset
	o.offset = offset
	o.set("offset", changed)
}

func (o *CanvasOpts) Rotation() mgl32.Mat3 { return o.rotation }

func (o *CanvasOpts) SetRotation(r mgl32.Mat3) {
	changed := r != o.rotation
	o.rotation = r
	o.set("rotation", changed)
}

// Pos is the world-space position that the 3-axis cursor is drawn
// through.
func (o *CanvasOpts) Pos() [3]float32 { return o.pos }

func (o *CanvasOpts) SetPos(p [3]float32) {
	changed := p != o.pos
	o.pos = p
	o.set("pos", changed)
}

func (o *CanvasOpts) BgColour() renderer.RGB { return o.bgColour }

func (o *CanvasOpts) SetBgColour(c renderer.RGB) {
	changed := c != o.bgColour
	o.bgColour = c
	o.set("bgColour", changed)
}

func (o *CanvasOpts) CursorColour() renderer.RGB { return o.cursorColour }

func (o *CanvasOpts) SetCursorColour(c renderer.RGB) {
	changed := c != o.cursorColour
	o.cursorColour = c
	o.set("cursorColour", changed)
}

func (o *CanvasOpts) LegendColour() renderer.RGB { return o.legendColour }

func (o *CanvasOpts) SetLegendColour(c renderer.RGB) {
	changed := c != o.legendColour
	o.legendColour = c
	o.set("legendColour", changed)
}

func (o *CanvasOpts) LightPos() [3]float32 { return o.lightPos }

func (o *CanvasOpts) SetLightPos(p [3]float32) {
	changed := p != o.lightPos
	o.lightPos = p
	o.set("lightPos", changed)
}

func (o *CanvasOpts) Light() bool { return o.light }

func (o *CanvasOpts) SetLight(on bool) {
	changed := on != o.light
	o.light = on
	o.set("light", changed)
}

func (o *CanvasOpts) ShowCursor() bool { return o.showCursor }

func (o *CanvasOpts) SetShowCursor(show bool) {
	changed := show != o.showCursor
	o.showCursor = show
	o.set("showCursor", changed)
}

func (o *CanvasOpts) ShowLegend() bool { return o.showLegend }

func (o *CanvasOpts) SetShowLegend(show bool) {
	changed := show != o.showLegend
	o.showLegend = show
	o.set("showLegend", changed)
}

func (o *CanvasOpts) ShowLight() bool { return o.showLight }

func (o *CanvasOpts) SetShowLight(show bool) {
	changed := show != o.showLight
	o.showLight = show
	o.set("showLight", changed)
}

func (o *CanvasOpts) ShowBoundingBox() bool { return o.showBox }

func (o *CanvasOpts) SetShowBoundingBox(show bool) {
	changed := show != o.showBox
	o.showBox = show
	o.set("showBoundingBox", changed)
}

func (o *CanvasOpts) Occlusion() bool { return o.occlusion }

func (o *CanvasOpts) SetOcclusion(on bool) {
	changed := on != o.occlusion
	o.occlusion = on
	o.set("occlusion", changed)
}
