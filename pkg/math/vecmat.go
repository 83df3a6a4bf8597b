// pkg/math/vecmat.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// 3d vectors

func Add3f(a [3]float32, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub3f(a [3]float32, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale3f(a [3]float32, s float32) [3]float32 {
	return [3]float32{s * a[0], s * a[1], s * a[2]}
}

func Cross3f(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

func Length3f(v [3]float32) float32 {
	return Sqrt(Sqr(v[0]) + Sqr(v[1]) + Sqr(v[2]))
}

func Normalize3f(v [3]float32) [3]float32 {
	l := Length3f(v)
	if l == 0 {
		return v
	}
	return Scale3f(v, 1/l)
}

///////////////////////////////////////////////////////////////////////////
// Box3

// Box3 represents a 3D axis-aligned bounding box with the two vertices at
// its opposite minimum and maximum corners.
type Box3 struct {
	P0, P1 [3]float32
}

// EmptyBox3 returns a Box3 representing an empty bounding box.
func EmptyBox3() Box3 {
	return Box3{P0: [3]float32{1e30, 1e30, 1e30}, P1: [3]float32{-1e30, -1e30, -1e30}}
}

// Box3FromPoints returns a Box3 that bounds all of the provided points.
func Box3FromPoints(pts [][3]float32) Box3 {
	b := EmptyBox3()
	for _, p := range pts {
		for d := 0; d < 3; d++ {
			if p[d] < b.P0[d] {
				b.P0[d] = p[d]
			}
			if p[d] > b.P1[d] {
				b.P1[d] = p[d]
			}
		}
	}
	return b
}

// Union3 returns the Box3 that bounds both of the given boxes.
func Union3(a, b Box3) Box3 {
	var u Box3
	for d := 0; d < 3; d++ {
		u.P0[d] = Min(a.P0[d], b.P0[d])
		u.P1[d] = Max(a.P1[d], b.P1[d])
	}
	return u
}

// IsEmpty reports whether the box is inverted along any axis, as an
// EmptyBox3 is; such a box bounds nothing at all.
func (b Box3) IsEmpty() bool {
	return b.P0[0] > b.P1[0] || b.P0[1] > b.P1[1] || b.P0[2] > b.P1[2]
}

func (b Box3) XLen() float32 { return b.P1[0] - b.P0[0] }
func (b Box3) YLen() float32 { return b.P1[1] - b.P0[1] }
func (b Box3) ZLen() float32 { return b.P1[2] - b.P0[2] }

func (b Box3) Lens() [3]float32 {
	return [3]float32{b.XLen(), b.YLen(), b.ZLen()}
}

func (b Box3) Center() [3]float32 {
	return [3]float32{
		b.P0[0] + 0.5*b.XLen(),
		b.P0[1] + 0.5*b.YLen(),
		b.P0[2] + 0.5*b.ZLen()}
}

// Corners returns the eight corner vertices of the box.
func (b Box3) Corners() [8][3]float32 {
	var c [8][3]float32
	for i := range c {
		for d := 0; d < 3; d++ {
			if i&(1<<d) != 0 {
				c[i][d] = b.P1[d]
			} else {
				c[i][d] = b.P0[d]
			}
		}
	}
	return c
}

// DegenerateAxes returns the number of axes along which the box has
// (nearly) zero extent. A single flat axis is fine for display purposes
// (it allows flattened 2D surfaces); more than one means there is nothing
// to show.
func (b Box3) DegenerateAxes(tol float32) int {
	n := 0
	for d := 0; d < 3; d++ {
		if NearlyEqual(b.P0[d], b.P1[d], tol) {
			n++
		}
	}
	return n
}

///////////////////////////////////////////////////////////////////////////

// AdjustAspect expands one of the two given extents so that their ratio
// matches the aspect ratio of a width x height pixel viewport; the scene
// is then centered in the viewport with no distortion. Note that the
// returned extents always cover at least the given ones.
func AdjustAspect(xlen, ylen float32, width, height int) (float32, float32) {
	if width == 0 || height == 0 || xlen == 0 || ylen == 0 {
		return xlen, ylen
	}

	aspect := float32(width) / float32(height)
	if xlen/ylen < aspect {
		xlen = ylen * aspect
	} else {
		ylen = xlen / aspect
	}
	return xlen, ylen
}
