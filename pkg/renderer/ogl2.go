// pkg/renderer/ogl2.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"C"
	"fmt"
	"image"
	"image/draw"
	gomath "math"
	"unsafe"

	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/util"

	"github.com/go-gl/gl/v2.1/gl"
)

// Also available as a global, though only used by CommandBuffer
var lg *log.Logger

type OpenGL2Renderer struct {
	lg              *log.Logger
	createdTextures map[uint32]int
}

// NewOpenGL2Renderer initializes the GL bindings; a GL context must be
// current when it is called.
func NewOpenGL2Renderer(l *log.Logger) (Renderer, error) {
	lg = l

	lg.Info("Starting OpenGL2Renderer initialization")
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	vendor, renderer := gl.GetString(gl.VENDOR), gl.GetString(gl.RENDERER)
	v, r := (*C.char)(unsafe.Pointer(vendor)), (*C.char)(unsafe.Pointer(renderer))
	lg.Infof("OpenGL vendor %s renderer %s", C.GoString(v), C.GoString(r))

	lg.Info("Finished OpenGL2Renderer initialization")
	return &OpenGL2Renderer{
		lg:              lg,
		createdTextures: make(map[uint32]int),
	}, nil
}

func (ogl2 *OpenGL2Renderer) Dispose() {
	for texid := range ogl2.createdTextures {
		gl.DeleteTextures(1, &texid)
	}
}

func (ogl2 *OpenGL2Renderer) createdTexture(texid uint32, bytes int) {
	_, exists := ogl2.createdTextures[texid]

	ogl2.createdTextures[texid] = bytes

	reduce := func(id uint32, bytes int, total int) int { return total + bytes }
	total := util.ReduceMap[uint32, int, int](ogl2.createdTextures, reduce, 0)
	mb := float32(total) / (1024 * 1024)

	if exists {
		ogl2.lg.Infof("Updated tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	} else {
		ogl2.lg.Infof("Created tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	}
}

func (ogl2 *OpenGL2Renderer) CreateTextureFromImage(img image.Image, magNearest bool) uint32 {
	var texid uint32
	gl.GenTextures(1, &texid)
	ogl2.UpdateTextureFromImage(texid, img, magNearest)
	return texid
}

func (ogl2 *OpenGL2Renderer) UpdateTextureFromImage(texid uint32, img image.Image, magNearest bool) {
	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.BindTexture(gl.TEXTURE_2D, texid)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	mag := util.Select(magNearest, int32(gl.NEAREST), int32(gl.LINEAR))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mag)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	nbytes := 0
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, img.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	nbytes += 4 * rgba.Rect.Dx() * rgba.Rect.Dy()

	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	ogl2.createdTexture(texid, nbytes)
}

func (ogl2 *OpenGL2Renderer) DestroyTexture(texid uint32) {
	gl.DeleteTextures(1, &texid)
	delete(ogl2.createdTextures, texid)
}

func (ogl2 *OpenGL2Renderer) RenderCommandBuffer(cb *CommandBuffer) RendererStats {
	var stats RendererStats
	stats.nBuffers++
	stats.bufferBytes += 4 * len(cb.Buf)

	i := 0
	ui32 := func() uint32 {
		v := cb.Buf[i]
		i++
		return v
	}
	i32 := func() int32 {
		return int32(ui32())
	}
	float := func() float32 {
		return gomath.Float32frombits(ui32())
	}

	for i < len(cb.Buf) {
		cmd := cb.Buf[i]
		i++
		switch cmd {
		case RendererLoadProjectionMatrix:
			gl.MatrixMode(gl.PROJECTION)
			ptr := (*float32)(unsafe.Pointer(&cb.Buf[i]))
			gl.LoadMatrixf(ptr)
			i += 16

		case RendererLoadModelViewMatrix:
			gl.MatrixMode(gl.MODELVIEW)
			ptr := (*float32)(unsafe.Pointer(&cb.Buf[i]))
			gl.LoadMatrixf(ptr)
			i += 16

		case RendererClearRGBA:
			r := float()
			g := float()
			b := float()
			a := float()
			gl.ClearColor(r, g, b, a)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		case RendererClearDepth:
			gl.Clear(gl.DEPTH_BUFFER_BIT)

		case RendererScissor:
			x := i32()
			y := i32()
			w := i32()
			h := i32()
			gl.Enable(gl.SCISSOR_TEST)
			gl.Scissor(x, y, w, h)

		case RendererViewport:
			x := i32()
			y := i32()
			w := i32()
			h := i32()
			gl.Viewport(x, y, w, h)

		case RendererBlend:
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

		case RendererDisableBlend:
			gl.Disable(gl.BLEND)

		case RendererSetRGBA:
			r := float()
			g := float()
			b := float()
			a := float()
			gl.DisableClientState(gl.COLOR_ARRAY)
			gl.Color4f(r, g, b, a)

		case RendererEnableDepthTest:
			gl.Enable(gl.DEPTH_TEST)

		case RendererDisableDepthTest:
			gl.Disable(gl.DEPTH_TEST)

		case RendererFloatBuffer, RendererIntBuffer:
			// Nothing to do for the moment but skip ahead
			i += int(ui32())

		case RendererEnableTexture:
			gl.Enable(gl.TEXTURE_2D)
			gl.BindTexture(gl.TEXTURE_2D, ui32())

		case RendererDisableTexture:
			gl.Disable(gl.TEXTURE_2D)

		case RendererVertexArray:
			gl.EnableClientState(gl.VERTEX_ARRAY)
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			nc := i32()
			stride := i32()
			gl.VertexPointer(nc, gl.FLOAT, stride, unsafe.Pointer(ptr))

		case RendererDisableVertexArray:
			gl.DisableClientState(gl.VERTEX_ARRAY)

		case RendererRGB32Array:
			gl.EnableClientState(gl.COLOR_ARRAY)
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			nc := i32()
			stride := i32()
			gl.ColorPointer(nc, gl.FLOAT, stride, unsafe.Pointer(ptr))

		case RendererDisableColorArray:
			gl.DisableClientState(gl.COLOR_ARRAY)

		case RendererTexCoordArray:
			gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			nc := i32()
			stride := i32()
			gl.TexCoordPointer(nc, gl.FLOAT, stride, unsafe.Pointer(ptr))

		case RendererDisableTexCoordArray:
			gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)

		case RendererLineWidth:
			gl.LineWidth(float())

		case RendererPointSize:
			gl.PointSize(float())

		case RendererDrawPoints:
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			count := i32()
			gl.DrawElements(gl.POINTS, count, gl.UNSIGNED_INT, unsafe.Pointer(ptr))

			stats.nDrawCalls++
			stats.nPoints += int(count)

		case RendererDrawLines:
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			count := i32()
			gl.DrawElements(gl.LINES, count, gl.UNSIGNED_INT, unsafe.Pointer(ptr))

			stats.nDrawCalls++
			stats.nLines += int(count / 2)

		case RendererDrawTriangles:
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			count := i32()
			gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, unsafe.Pointer(ptr))

			stats.nDrawCalls++
			stats.nTriangles += int(count / 3)

		case RendererDrawQuads:
			offset := ui32()
			ptr := uintptr(unsafe.Pointer(&cb.Buf[0])) + uintptr(offset)
			count := i32()
			gl.DrawElements(gl.QUADS, count, gl.UNSIGNED_INT, unsafe.Pointer(ptr))

			stats.nDrawCalls++
			stats.nQuads += int(count / 4)

		case RendererResetState:
			gl.Disable(gl.SCISSOR_TEST)
			gl.Disable(gl.BLEND)
			gl.Disable(gl.DEPTH_TEST)
			gl.DisableClientState(gl.VERTEX_ARRAY)
			gl.DisableClientState(gl.COLOR_ARRAY)
			gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
			gl.Disable(gl.TEXTURE_2D)

		case RendererCallBuffer:
			idx := ui32()
			s2 := ogl2.RenderCommandBuffer(&cb.called[idx])
			stats.Merge(s2)

		default:
			ogl2.lg.Error("unhandled command")
		}
	}

	return stats
}
