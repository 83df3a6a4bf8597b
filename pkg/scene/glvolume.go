// pkg/scene/glvolume.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"image"

	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/math"
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/renderer"

	"github.com/go-gl/mathgl/mgl32"
	lru "github.com/hashicorp/golang-lru/v2"
)

///////////////////////////////////////////////////////////////////////////
// colormaps

// Colormap lookup tables are 256 entries and cheap to build, but volumes
// flip between maps interactively, so keep the recently-used ones around.
var lutCache, _ = lru.New[string, []renderer.RGB](16)

func colormapLUT(name string) []renderer.RGB {
	if lut, ok := lutCache.Get(name); ok {
		return lut
	}

	var lo, hi renderer.RGB
	switch name {
	case "red-yellow":
		lo, hi = renderer.RGB{R: 1}, renderer.RGB{R: 1, G: 1}
	case "blue-lightblue":
		lo, hi = renderer.RGB{B: 1}, renderer.RGB{G: 1, B: 1}
	case "green":
		lo, hi = renderer.RGB{}, renderer.RGB{G: 1}
	default: // greyscale
		lo, hi = renderer.RGB{}, renderer.RGB{R: 1, G: 1, B: 1}
	}

	lut := make([]renderer.RGB, 256)
	for i := range lut {
		lut[i] = renderer.LerpRGB(float32(i)/255, lo, hi)
	}
	lutCache.Add(name, lut)
	return lut
}

///////////////////////////////////////////////////////////////////////////
// GLVolume

// GLVolume renders a volumetric image as three orthogonal textured
// slices through the middle of the voxel grid, each colored through the
// volume's colormap. The textures are created at construction time, so a
// GLVolume is ready as soon as it exists.
type GLVolume struct {
	glObjectNotifier

	vol      *overlay.Volume
	renderer renderer.Renderer
	lg       *log.Logger

	cmap     string
	smooth   bool
	textures [3]uint32
	quads    [3][4][3]float32
	ready    bool
}

func newGLVolume(vol *overlay.Volume, r renderer.Renderer, gl21 bool, lg *log.Logger) *GLVolume {
	g := &GLVolume{
		glObjectNotifier: makeGLObjectNotifier(lg),
		vol:              vol,
		renderer:         r,
		lg:               lg,
		cmap:             "greyscale",
		smooth:           gl21,
	}

	for axis := 0; axis < 3; axis++ {
		g.textures[axis] = r.CreateTextureFromImage(g.sliceImage(axis), !g.smooth)
		g.quads[axis] = g.sliceQuad(axis)
	}
	g.ready = true
	return g
}

func (g *GLVolume) Ready() bool { return g.ready }

func (g *GLVolume) Colormap() string { return g.cmap }

// SetColormap switches the volume to the named colormap, re-uploading the
// slice textures. It must be called with the GL context current.
func (g *GLVolume) SetColormap(name string) {
	if name == g.cmap {
		return
	}
	g.cmap = name
	for axis := 0; axis < 3; axis++ {
		g.renderer.UpdateTextureFromImage(g.textures[axis], g.sliceImage(axis), !g.smooth)
	}
	g.changed()
}

// sliceAxes returns the two in-plane voxel axes for a slice normal to the
// given axis.
func sliceAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// sliceImage renders the mid-grid slice normal to the given axis through
// the current colormap. Zero-intensity voxels are left transparent so
// that stacked volumes remain visible through each other's background.
func (g *GLVolume) sliceImage(axis int) *image.RGBA {
	dims := g.vol.Dims()
	ua, va := sliceAxes(axis)
	mid := dims[axis] / 2

	dmin, dmax := g.vol.DataRange()
	drange := dmax - dmin
	if drange == 0 {
		drange = 1
	}
	lut := colormapLUT(g.cmap)

	img := image.NewRGBA(image.Rect(0, 0, dims[ua], dims[va]))
	var idx [3]int
	idx[axis] = mid
	for y := 0; y < dims[va]; y++ {
		for x := 0; x < dims[ua]; x++ {
			idx[ua], idx[va] = x, y
			v := g.vol.Value(idx[0], idx[1], idx[2])
			t := math.Clamp((v-dmin)/drange, 0, 1)
			c := lut[int(t*255)]

			o := img.PixOffset(x, y)
			img.Pix[o] = uint8(c.R * 255)
			img.Pix[o+1] = uint8(c.G * 255)
			img.Pix[o+2] = uint8(c.B * 255)
			if t > 0 {
				img.Pix[o+3] = 255
			}
		}
	}
	return img
}

// sliceQuad returns the world-space corners of the mid-grid slice normal
// to the given axis, ordered to match the texture coordinates that
// TexturedQuadsDrawBuilder assigns.
func (g *GLVolume) sliceQuad(axis int) [4][3]float32 {
	dims := g.vol.Dims()
	ua, va := sliceAxes(axis)
	mid := float32(dims[axis]) / 2

	var quad [4][3]float32
	uv := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, c := range uv {
		var vox [3]float32
		vox[axis] = mid
		vox[ua] = c[0] * float32(dims[ua])
		vox[va] = c[1] * float32(dims[va])

		w := mgl32.TransformCoordinate(mgl32.Vec3{vox[0], vox[1], vox[2]}, g.vol.VoxToWorld())
		quad[i] = [3]float32{w[0], w[1], w[2]}
	}
	return quad
}

func (g *GLVolume) PreDraw(cb *renderer.CommandBuffer, xform mgl32.Mat4) {
	cb.EnableDepthTest()
	cb.Blend()
}

func (g *GLVolume) Draw3D(cb *renderer.CommandBuffer, xform mgl32.Mat4) {
	cb.LoadModelViewMatrix(xform)
	cb.SetRGBA(renderer.RGBA{R: 1, G: 1, B: 1, A: 1})

	for axis := 0; axis < 3; axis++ {
		qb := renderer.GetTexturedQuadsDrawBuilder()
		q := g.quads[axis]
		qb.AddQuad(q[0], q[1], q[2], q[3])

		cb.EnableTexture(g.textures[axis])
		qb.GenerateCommands(cb)
		cb.DisableTexture()

		renderer.ReturnTexturedQuadsDrawBuilder(qb)
	}
}

func (g *GLVolume) PostDraw(cb *renderer.CommandBuffer, xform mgl32.Mat4) {
	cb.DisableBlend()
	cb.DisableDepthTest()
}

func (g *GLVolume) Destroy() {
	for _, tex := range g.textures {
		g.renderer.DestroyTexture(tex)
	}
	g.textures = [3]uint32{}
	g.ready = false
}
