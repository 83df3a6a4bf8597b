// pkg/renderer/builders.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"sync"
)

///////////////////////////////////////////////////////////////////////////
// DrawBuilders

// The various *DrawBuilder classes provide capabilities for specifying a
// number of independent things of the same type to draw and then
// generating corresponding buffer storage and draw commands in a
// CommandBuffer. This allows batching up many things to be drawn all in a
// single draw command, with corresponding GPU performance benefits.

// LinesDrawBuilder accumulates 3D line segments to be drawn together. Note
// that it does not allow specifying the colors of the lines; instead,
// whatever the current color is (as set via the CommandBuffer SetRGB
// method) is used when drawing them.
type LinesDrawBuilder struct {
	p       [][3]float32
	indices []int32
}

// Reset resets the internal arrays used for accumulating lines,
// maintaining the initial allocations.
func (l *LinesDrawBuilder) Reset() {
	l.p = l.p[:0]
	l.indices = l.indices[:0]
}

// AddLine adds a line with the specified vertex positions to the set of
// lines to be drawn.
func (l *LinesDrawBuilder) AddLine(p0, p1 [3]float32) {
	idx := int32(len(l.p))
	l.p = append(l.p, p0, p1)
	l.indices = append(l.indices, idx, idx+1)
}

// AddLineStrip adds multiple lines to the lines draw builder where each
// line is given by a successive pair of points, a la GL_LINE_STRIP.
func (l *LinesDrawBuilder) AddLineStrip(p [][3]float32) {
	idx := int32(len(l.p))
	l.p = append(l.p, p...)
	for i := 0; i < len(p)-1; i++ {
		l.indices = append(l.indices, idx+int32(i), idx+int32(i+1))
	}
}

// Letters are drawn with line strokes on a 2x2 unit grid; this table only
// covers the characters that can appear as anatomical orientation labels.
var letterStrokes = map[byte][][2][2]float32{
	'A': {{{0, 0}, {1, 2}}, {{1, 2}, {2, 0}}, {{0.5, 1}, {1.5, 1}}},
	'P': {{{0, 0}, {0, 2}}, {{0, 2}, {2, 2}}, {{2, 2}, {2, 1}}, {{2, 1}, {0, 1}}},
	'L': {{{0, 2}, {0, 0}}, {{0, 0}, {2, 0}}},
	'R': {{{0, 0}, {0, 2}}, {{0, 2}, {2, 2}}, {{2, 2}, {2, 1}}, {{2, 1}, {0, 1}}, {{1, 1}, {2, 0}}},
	'I': {{{1, 0}, {1, 2}}, {{0, 2}, {2, 2}}, {{0, 0}, {2, 0}}},
	'S': {{{2, 2}, {0, 2}}, {{0, 2}, {0, 1}}, {{0, 1}, {2, 1}}, {{2, 1}, {2, 0}}, {{2, 0}, {0, 0}}},
}

// AddText adds line strokes that draw the given text centered at p in the
// x/y plane, where sz gives the height of the letters in the same units
// as p. Characters without a stroke table entry are skipped. This is used
// for the handful of orientation labels in the scene legend, where a full
// font rendering path would be overkill and the label size should track
// viewport units rather than font rasterization.
func (l *LinesDrawBuilder) AddText(s string, p [3]float32, sz float32) {
	half := sz / 2
	// Advance per character; letters are 2 units wide on the stroke grid.
	adv := 1.25 * sz
	x0 := p[0] - 0.5*adv*float32(len(s)-1)

	for i := 0; i < len(s); i++ {
		strokes, ok := letterStrokes[s[i]]
		if !ok {
			continue
		}
		cx := x0 + float32(i)*adv
		for _, seg := range strokes {
			l.AddLine(
				[3]float32{cx + (seg[0][0]-1)*half, p[1] + (seg[0][1]-1)*half, p[2]},
				[3]float32{cx + (seg[1][0]-1)*half, p[1] + (seg[1][1]-1)*half, p[2]})
		}
	}
}

// GenerateCommands adds commands to the specified command buffer to draw
// the lines stored in the LinesDrawBuilder.
func (l *LinesDrawBuilder) GenerateCommands(cb *CommandBuffer) {
	if len(l.indices) == 0 {
		return
	}

	// Add the vertex positions to the command buffer.
	p := cb.Float3Buffer(l.p)
	cb.VertexArray(p, 3, 3*4)

	// Add the vertex indices and issue the draw command.
	ind := cb.IntBuffer(l.indices)
	cb.DrawLines(ind, len(l.indices))

	// Clean up
	cb.DisableVertexArray()
}

// LinesDrawBuilders are managed using a sync.Pool so that their buf slice
// allocations persist across multiple uses.
var linesDrawBuilderPool = sync.Pool{New: func() any { return &LinesDrawBuilder{} }}

func GetLinesDrawBuilder() *LinesDrawBuilder {
	return linesDrawBuilderPool.Get().(*LinesDrawBuilder)
}

func ReturnLinesDrawBuilder(ld *LinesDrawBuilder) {
	ld.Reset()
	linesDrawBuilderPool.Put(ld)
}

///////////////////////////////////////////////////////////////////////////

// TrianglesDrawBuilder collects triangles to be batched up in a single
// draw call. Note that it does not allow specifying per-vertex or
// per-triangle color; rather, the current color as specified by a call to
// the CommandBuffer SetRGB method is used for all triangles.
type TrianglesDrawBuilder struct {
	p       [][3]float32
	indices []int32
}

func (t *TrianglesDrawBuilder) Reset() {
	t.p = t.p[:0]
	t.indices = t.indices[:0]
}

// AddTriangle adds a triangle with the specified three vertices to be
// drawn.
func (t *TrianglesDrawBuilder) AddTriangle(p0, p1, p2 [3]float32) {
	idx := int32(len(t.p))
	t.p = append(t.p, p0, p1, p2)
	t.indices = append(t.indices, idx, idx+1, idx+2)
}

// AddMesh adds a set of vertices with shared indexed triangles to be
// drawn.
func (t *TrianglesDrawBuilder) AddMesh(p [][3]float32, tris [][3]int32) {
	idx := int32(len(t.p))
	t.p = append(t.p, p...)
	for _, tri := range tris {
		t.indices = append(t.indices, idx+tri[0], idx+tri[1], idx+tri[2])
	}
}

func (t *TrianglesDrawBuilder) GenerateCommands(cb *CommandBuffer) {
	if len(t.indices) == 0 {
		return
	}

	p := cb.Float3Buffer(t.p)
	cb.VertexArray(p, 3, 3*4)

	ind := cb.IntBuffer(t.indices)
	cb.DrawTriangles(ind, len(t.indices))

	cb.DisableVertexArray()
}

var trianglesDrawBuilderPool = sync.Pool{New: func() any { return &TrianglesDrawBuilder{} }}

func GetTrianglesDrawBuilder() *TrianglesDrawBuilder {
	return trianglesDrawBuilderPool.Get().(*TrianglesDrawBuilder)
}

func ReturnTrianglesDrawBuilder(td *TrianglesDrawBuilder) {
	td.Reset()
	trianglesDrawBuilderPool.Put(td)
}

///////////////////////////////////////////////////////////////////////////

// TexturedQuadsDrawBuilder collects textured quads, e.g. the volume slice
// planes, to be drawn together. The texture to use is specified separately
// via the CommandBuffer EnableTexture method.
type TexturedQuadsDrawBuilder struct {
	p       [][3]float32
	uv      [][2]float32
	indices []int32
}

func (q *TexturedQuadsDrawBuilder) Reset() {
	q.p = q.p[:0]
	q.uv = q.uv[:0]
	q.indices = q.indices[:0]
}

// AddQuad adds a quad with the given four vertices, with texture
// coordinates (0,0), (1,0), (1,1), (0,1) at the respective vertices.
func (q *TexturedQuadsDrawBuilder) AddQuad(p0, p1, p2, p3 [3]float32) {
	idx := int32(len(q.p))
	q.p = append(q.p, p0, p1, p2, p3)
	q.uv = append(q.uv, [2]float32{0, 0}, [2]float32{1, 0}, [2]float32{1, 1}, [2]float32{0, 1})
	q.indices = append(q.indices, idx, idx+1, idx+2, idx+3)
}

func (q *TexturedQuadsDrawBuilder) GenerateCommands(cb *CommandBuffer) {
	if len(q.indices) == 0 {
		return
	}

	p := cb.Float3Buffer(q.p)
	cb.VertexArray(p, 3, 3*4)

	uv := cb.Float2Buffer(q.uv)
	cb.TexCoordArray(uv, 2, 2*4)

	ind := cb.IntBuffer(q.indices)
	cb.DrawQuads(ind, len(q.indices))

	cb.DisableVertexArray()
	cb.DisableTexCoordArray()
}

var texturedQuadsDrawBuilderPool = sync.Pool{New: func() any { return &TexturedQuadsDrawBuilder{} }}

func GetTexturedQuadsDrawBuilder() *TexturedQuadsDrawBuilder {
	return texturedQuadsDrawBuilderPool.Get().(*TexturedQuadsDrawBuilder)
}

func ReturnTexturedQuadsDrawBuilder(qd *TexturedQuadsDrawBuilder) {
	qd.Reset()
	texturedQuadsDrawBuilderPool.Put(qd)
}

///////////////////////////////////////////////////////////////////////////

// PointsDrawBuilder accumulates single points to be drawn, e.g. the light
// position marker; the point size and color come from the CommandBuffer
// state.
type PointsDrawBuilder struct {
	p       [][3]float32
	indices []int32
}

func (p *PointsDrawBuilder) Reset() {
	p.p = p.p[:0]
	p.indices = p.indices[:0]
}

func (p *PointsDrawBuilder) AddPoint(pt [3]float32) {
	p.indices = append(p.indices, int32(len(p.p)))
	p.p = append(p.p, pt)
}

func (p *PointsDrawBuilder) GenerateCommands(cb *CommandBuffer) {
	if len(p.indices) == 0 {
		return
	}

	pos := cb.Float3Buffer(p.p)
	cb.VertexArray(pos, 3, 3*4)

	ind := cb.IntBuffer(p.indices)
	cb.DrawPoints(ind, len(p.indices))

	cb.DisableVertexArray()
}
