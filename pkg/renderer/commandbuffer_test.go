// pkg/renderer/commandbuffer_test.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCommandBufferMatrix(t *testing.T) {
	var cb CommandBuffer
	m := mgl32.Ortho(-1, 1, -1, 1, -10, 10)
	cb.LoadProjectionMatrix(m)

	if len(cb.Buf) != 17 {
		t.Fatalf("buffer length %d, expected 17", len(cb.Buf))
	}
	if cb.Buf[0] != RendererLoadProjectionMatrix {
		t.Errorf("command %d", cb.Buf[0])
	}
	// Matrix values follow in mgl32's column-major order.
	for i := 0; i < 16; i++ {
		if cb.Buf[1+i] != gomath.Float32bits(m[i]) {
			t.Errorf("matrix element %d mismatch", i)
		}
	}
}

func TestCommandBufferBufferOffsets(t *testing.T) {
	var cb CommandBuffer
	cb.ClearRGB(RGB{}) // a command before the buffer, so the offset is nonzero

	p := [][3]float32{{1, 2, 3}, {4, 5, 6}}
	offset := cb.Float3Buffer(p)

	if offset%4 != 0 {
		t.Fatalf("offset %d is not 32-bit aligned", offset)
	}
	i := offset / 4
	if cb.Buf[i] != gomath.Float32bits(1) || cb.Buf[i+5] != gomath.Float32bits(6) {
		t.Errorf("vertex data not at returned offset")
	}
	// The size prefix precedes the data.
	if cb.Buf[i-1] != 6 {
		t.Errorf("size prefix %d, expected 6", cb.Buf[i-1])
	}
	if cb.Buf[i-2] != RendererFloatBuffer {
		t.Errorf("command %d, expected RendererFloatBuffer", cb.Buf[i-2])
	}

	ind := cb.IntBuffer([]int32{0, 1})
	j := ind / 4
	if cb.Buf[j] != 0 || cb.Buf[j+1] != 1 {
		t.Errorf("index data not at returned offset")
	}
}

func TestCommandBufferReset(t *testing.T) {
	cb := GetCommandBuffer()
	cb.ClearRGB(RGB{R: 1})
	cb.Reset()
	if len(cb.Buf) != 0 {
		t.Errorf("buffer not empty after reset")
	}
	ReturnCommandBuffer(cb)
}

func TestLineWidthScaling(t *testing.T) {
	var cb CommandBuffer
	cb.LineWidth(2, 1.5)
	if len(cb.Buf) != 2 || cb.Buf[0] != RendererLineWidth {
		t.Fatalf("unexpected encoding %v", cb.Buf)
	}
	if cb.Buf[1] != gomath.Float32bits(3) {
		t.Errorf("line width not scaled by DPI scale")
	}
}

func TestLinesDrawBuilder(t *testing.T) {
	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)

	ld.AddLine([3]float32{0, 0, 0}, [3]float32{1, 0, 0})
	ld.AddLine([3]float32{0, 1, 0}, [3]float32{0, 0, 1})

	var cb CommandBuffer
	ld.GenerateCommands(&cb)

	// Expect vertex buffer, vertex array, index buffer, draw, disable.
	i := 0
	expect := func(cmd uint32, skip int) {
		t.Helper()
		if cb.Buf[i] != cmd {
			t.Fatalf("command at %d is %d, expected %d", i, cb.Buf[i], cmd)
		}
		i += skip
	}
	expect(RendererFloatBuffer, 2+12) // 4 vertices
	expect(RendererVertexArray, 4)
	expect(RendererIntBuffer, 2+4)
	expect(RendererDrawLines, 3)
	expect(RendererDisableVertexArray, 1)
	if i != len(cb.Buf) {
		t.Errorf("trailing data in command buffer")
	}
}

func TestLinesDrawBuilderEmpty(t *testing.T) {
	var ld LinesDrawBuilder
	var cb CommandBuffer
	ld.GenerateCommands(&cb)
	if len(cb.Buf) != 0 {
		t.Errorf("commands generated for an empty builder")
	}
}

func TestAddText(t *testing.T) {
	var ld LinesDrawBuilder
	p := [3]float32{5, 5, 2}
	ld.AddText("L", p, 1)

	// 'L' is two strokes; both endpoints stay within the letter cell.
	if len(ld.p) != 4 {
		t.Fatalf("%d vertices for 'L', expected 4", len(ld.p))
	}
	for _, v := range ld.p {
		if v[0] < 4.5 || v[0] > 5.5 || v[1] < 4.5 || v[1] > 5.5 {
			t.Errorf("vertex %v outside the letter cell", v)
		}
		if v[2] != 2 {
			t.Errorf("vertex %v moved off the text plane", v)
		}
	}

	// Characters without stroke entries are skipped.
	before := len(ld.p)
	ld.AddText("?", p, 1)
	if len(ld.p) != before {
		t.Errorf("unknown character added vertices")
	}
}

func TestTrianglesAddMesh(t *testing.T) {
	var td TrianglesDrawBuilder
	td.AddTriangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})

	// Mesh indices are rebased past the existing vertices.
	td.AddMesh([][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}, [][3]int32{{0, 1, 2}})
	if len(td.indices) != 6 {
		t.Fatalf("%d indices, expected 6", len(td.indices))
	}
	if td.indices[3] != 3 || td.indices[4] != 4 || td.indices[5] != 5 {
		t.Errorf("mesh indices not offset: %v", td.indices[3:])
	}
}

func TestTexturedQuads(t *testing.T) {
	var qd TexturedQuadsDrawBuilder
	qd.AddQuad([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{1, 1, 0}, [3]float32{0, 1, 0})

	if len(qd.uv) != 4 {
		t.Fatalf("%d texture coordinates", len(qd.uv))
	}
	want := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, uv := range qd.uv {
		if uv != want[i] {
			t.Errorf("uv[%d] = %v, expected %v", i, uv, want[i])
		}
	}

	var cb CommandBuffer
	qd.GenerateCommands(&cb)
	if cb.Buf[len(cb.Buf)-1] != RendererDisableTexCoordArray {
		t.Errorf("texcoord array not disabled after drawing")
	}
}
