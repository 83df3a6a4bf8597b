// main.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// initializes the system and then runs the event loop until the viewer
// exits.

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/neuroview/neuroview/pkg/log"
	"github.com/neuroview/neuroview/pkg/math"
	"github.com/neuroview/neuroview/pkg/overlay"
	"github.com/neuroview/neuroview/pkg/platform"
	"github.com/neuroview/neuroview/pkg/renderer"
	"github.com/neuroview/neuroview/pkg/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	logLevel = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir   = flag.String("logdir", "", "log file directory")
)

func init() {
	// OpenGL and friends require that all calls be made from the primary
	// application thread, while by default, go allows the main thread to
	// run on different hardware threads over the course of
	// execution. Therefore, we must lock the main thread at startup time.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	config := LoadOrMakeDefaultConfig(lg)

	plat, err := platform.NewGLFW(&platform.Config{
		InitialWindowSize:  config.InitialWindowSize,
		InitialWindowTitle: "neuroview",
		EnableVSync:        true,
	}, lg)
	if err != nil {
		lg.Errorf("Unable to initialize GLFW: %v", err)
		os.Exit(1)
	}

	rend, err := renderer.NewOpenGL2Renderer(lg)
	if err != nil {
		lg.Errorf("Unable to initialize OpenGL: %v", err)
		os.Exit(1)
	}

	queue := &platform.IdleQueue{}
	list := overlay.NewList(lg)
	dctx := overlay.NewContext(list, lg)

	canvas := scene.NewCanvas(list, dctx, rend, plat, queue, lg)
	canvas.Opts().Apply(config.Canvas)
	canvas.InitGL()

	for _, path := range flag.Args() {
		lg.Warnf("%s: file loading not implemented; showing demo overlays", path)
	}
	list.Add(demoVolume())
	list.Add(demoMesh())

	// Drain once so that the GL objects exist before saved per-overlay
	// settings are applied to them.
	queue.Drain()
	applySavedDisplays(config, dctx, canvas)

	var stats renderer.RendererStats
	for !plat.ShouldStop() {
		plat.ProcessEvents()
		queue.Drain()

		if p, ok := plat.Clicked(); ok {
			if w, ok := canvas.CanvasToWorld(p[0], p[1]); ok {
				lg.Info("clicked", slog.Any("canvas", p), slog.Any("world", w))
				canvas.Opts().SetPos(w)
			}
		}

		if plat.RedisplayRequested() {
			cb := renderer.GetCommandBuffer()
			canvas.Draw(cb)
			stats.Merge(rend.RenderCommandBuffer(cb))
			renderer.ReturnCommandBuffer(cb)
			plat.PostRender()
		} else {
			time.Sleep(10 * time.Millisecond)
		}
	}

	lg.Info("shutting down", slog.Any("stats", stats))

	config.Canvas = canvas.Opts().State()
	config.InitialWindowSize = plat.WindowSize()
	recordDisplays(config, dctx, canvas)
	if err := config.Save(lg); err != nil {
		lg.Errorf("Error saving configuration: %v", err)
	}

	canvas.Destroy()
	dctx.Destroy()
	rend.Dispose()
	plat.Dispose()
	lg.Info("Goodbye logging", slog.Duration("uptime", time.Since(lg.Start)))
}

// demoVolume builds a synthetic spherical-falloff volume centred at the
// world origin, standing in for a NIfTI image.
func demoVolume() *overlay.Volume {
	const n = 48
	data := make([]float32, n*n*n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				r := math.Length3f([3]float32{float32(i) - n/2, float32(j) - n/2, float32(k) - n/2})
				data[i+n*(j+n*k)] = math.Max(0, 1-r/(n/2-2))
			}
		}
	}

	voxToWorld := mgl32.Translate3D(-n/2, -n/2, -n/2)
	return overlay.NewVolume("demo-volume", [3]int{n, n, n}, data, voxToWorld)
}

// demoMesh builds an octahedral surface poking out of the demo volume.
func demoMesh() *overlay.Mesh {
	const r = 30
	vertices := [][3]float32{
		{r, 0, 0}, {-r, 0, 0},
		{0, r, 0}, {0, -r, 0},
		{0, 0, r}, {0, 0, -r},
	}
	triangles := [][3]int32{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
	return overlay.NewMesh("demo-mesh", vertices, triangles)
}
