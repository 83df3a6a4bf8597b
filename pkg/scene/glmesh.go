// pkg/scene/glmesh.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// GLMesh renders a triangulated surface in a single flat colour. It
// holds no GL resources of its own; the vertex data goes out through the
// command buffer each frame.
type GLMesh struct {
	glObjectNotifier

	mesh   *overlay.Mesh
	colour renderer.RGB
	ready  bool
}

func newGLMesh(mesh *overlay.Mesh, lg *log.Logger) *GLMesh {
	return &GLMesh{
		glObjectNotifier: makeGLObjectNotifier(lg),
		mesh:             mesh,
		colour:           renderer.RGB{R: 0.7, G: 0.7, B: 0.7},
		ready:            true,
	}
}

func (g *GLMesh) Ready() bool { return g.ready }

func (g *GLMesh) Colour() renderer.RGB { return g.colour }

func (g *GLMesh) SetColour(c renderer.RGB) {
	if !c.Equals(g.colour) {
		g.colour = c
		g.changed()
	}
}

func (g *GLMesh) PreDraw(cb *renderer.CommandBuffer, xform mgl32.Mat4) {
	cb.EnableDepthTest()
}

func (g *GLMesh) Draw3D(cb *renderer.CommandBuffer, xform mgl32.Mat4) {
	cb.LoadModelViewMatrix(xform)
	cb.SetRGB(g.colour)

	tb := renderer.GetTrianglesDrawBuilder()
	tb.AddMesh(g.mesh.Vertices(), g.mesh.Triangles())
	tb.GenerateCommands(cb)
	renderer.ReturnTrianglesDrawBuilder(tb)
}

func (g *GLMesh) PostDraw(cb *renderer.CommandBuffer, xform mgl32.Mat4) {
	cb.DisableDepthTest()
}

func (g *GLMesh) Destroy() {
	g.ready = false
}
