// pkg/overlay/overlay.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package overlay

import (
	"github.com/neuroview/neuroview/pkg/math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind classifies an overlay's underlying data: a volumetric image, a
// triangulated surface, or something else that this viewer cannot draw
// itself. The scene compositor partitions overlays by Kind when deciding
// draw order, so switches over Kind should handle all three cases.
type Kind int

const (
	KindVolume Kind = iota
	KindMesh
	KindOther
)

func (k Kind) String() string {
	return [...]string{"Volume", "Mesh", "Other"}[k]
}

// Overlay is a displayable data item. Identity is by reference: two
// overlays are the same overlay only if they are the same object, and
// maps keyed by Overlay rely on that.
type Overlay interface {
	Name() string
	Kind() Kind
	// Bounds returns the world-space axis-aligned box enclosing the
	// overlay's data.
	Bounds() math.Box3
}

///////////////////////////////////////////////////////////////////////////
// Volume

// Volume is a regular 3D voxel grid with an affine transform mapping voxel
// indices to world coordinates.
type Volume struct {
	name       string
	dims       [3]int
	data       []float32
	voxToWorld mgl32.Mat4

	rangeValid       bool
	dataMin, dataMax float32
}

// NewVolume returns a Volume over the given data, which is indexed as
// data[i + dims[0]*(j + dims[1]*k)].
func NewVolume(name string, dims [3]int, data []float32, voxToWorld mgl32.Mat4) *Volume {
	return &Volume{name: name, dims: dims, data: data, voxToWorld: voxToWorld}
}

func (v *Volume) Name() string { return v.name }

func (v *Volume) Kind() Kind { return KindVolume }

func (v *Volume) Dims() [3]int { return v.dims }

func (v *Volume) VoxToWorld() mgl32.Mat4 { return v.voxToWorld }

// Value returns the value of the voxel at the given indices; out-of-grid
// indices return 0.
func (v *Volume) Value(i, j, k int) float32 {
	if i < 0 || j < 0 || k < 0 || i >= v.dims[0] || j >= v.dims[1] || k >= v.dims[2] {
		return 0
	}
	return v.data[i+v.dims[0]*(j+v.dims[1]*k)]
}

// DataRange returns the minimum and maximum values in the volume,
// computing them on first use.
func (v *Volume) DataRange() (float32, float32) {
	if !v.rangeValid {
		v.dataMin, v.dataMax = 0, 0
		if len(v.data) > 0 {
			v.dataMin, v.dataMax = v.data[0], v.data[0]
			for _, d := range v.data[1:] {
				v.dataMin = math.Min(v.dataMin, d)
				v.dataMax = math.Max(v.dataMax, d)
			}
		}
		v.rangeValid = true
	}
	return v.dataMin, v.dataMax
}

func (v *Volume) Bounds() math.Box3 {
	// Transform the corners of the voxel grid into world space. The full
	// grid, not just the voxel centers, so that bounds of adjacent
	// volumes with matching grids line up.
	vox := math.Box3{P1: [3]float32{float32(v.dims[0]), float32(v.dims[1]), float32(v.dims[2])}}
	var pts [][3]float32
	for _, c := range vox.Corners() {
		w := mgl32.TransformCoordinate(mgl32.Vec3{c[0], c[1], c[2]}, v.voxToWorld)
		pts = append(pts, [3]float32{w[0], w[1], w[2]})
	}
	return math.Box3FromPoints(pts)
}

///////////////////////////////////////////////////////////////////////////
// Mesh

// Mesh is a triangulated surface with world-space vertices. A mesh may be
// flat along one axis (e.g. a flattened cortical surface); the viewport
// code allows a single degenerate bounds axis for exactly this case.
type Mesh struct {
	name      string
	vertices  [][3]float32
	triangles [][3]int32
	bounds    math.Box3
}

func NewMesh(name string, vertices [][3]float32, triangles [][3]int32) *Mesh {
	return &Mesh{
		name:      name,
		vertices:  vertices,
		triangles: triangles,
		bounds:    math.Box3FromPoints(vertices),
	}
}

func (m *Mesh) Name() string { return m.name }

func (m *Mesh) Kind() Kind { return KindMesh }

func (m *Mesh) Vertices() [][3]float32 { return m.vertices }

func (m *Mesh) Triangles() [][3]int32 { return m.triangles }

func (m *Mesh) Bounds() math.Box3 { return m.bounds }
