// pkg/platform/glfw.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"fmt"
	"runtime"

	"github.com/neuroview/neuroview/pkg/log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform implements the Platform interface using GLFW.
type glfwPlatform struct {
	lg     *log.Logger
	window *glfw.Window

	anyEvents     bool
	needsRedraw   bool
	clickPos      [2]float32
	clicked       bool
	lastMouseX    float64
	lastMouseY    float64
	windowTitle   string
	disposed      bool
}

type Config struct {
	InitialWindowSize  [2]int
	InitialWindowTitle string
	EnableVSync        bool
}

// NewGLFW returns a new instance of a glfwPlatform with a window of the
// specified size; the window's GL context is current when it returns.
func NewGLFW(config *Config, lg *log.Logger) (Platform, error) {
	lg.Info("Starting GLFW initialization")
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	w, h := config.InitialWindowSize[0], config.InitialWindowSize[1]
	if w == 0 || h == 0 {
		w, h = 1024, 768
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	window, err := glfw.CreateWindow(w, h, config.InitialWindowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	if config.EnableVSync {
		glfw.SwapInterval(1)
	}

	platform := &glfwPlatform{
		lg:          lg,
		window:      window,
		needsRedraw: true,
		windowTitle: config.InitialWindowTitle,
	}
	platform.installCallbacks()

	lg.Info("Finished GLFW initialization")
	return platform, nil
}

func (g *glfwPlatform) installCallbacks() {
	g.window.SetRefreshCallback(func(w *glfw.Window) {
		g.anyEvents = true
		g.needsRedraw = true
	})
	g.window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		g.anyEvents = true
		g.needsRedraw = true
	})
	g.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		g.anyEvents = true
		g.lastMouseX, g.lastMouseY = x, y
	})
	g.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton,
		action glfw.Action, mods glfw.ModifierKey) {
		g.anyEvents = true
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			// Flip y so that it follows the GL viewport convention.
			_, h := g.window.GetSize()
			g.clickPos = [2]float32{float32(g.lastMouseX), float32(h) - float32(g.lastMouseY)}
			g.clicked = true
		}
	})
}

func (g *glfwPlatform) ProcessEvents() bool {
	g.anyEvents = false
	glfw.PollEvents()
	return g.anyEvents
}

func (g *glfwPlatform) MakeContextCurrent() bool {
	if g.disposed || g.window == nil {
		return false
	}
	g.window.MakeContextCurrent()
	return true
}

func (g *glfwPlatform) PostRender() {
	g.window.SwapBuffers()
}

func (g *glfwPlatform) PostRedisplay() {
	g.needsRedraw = true
}

func (g *glfwPlatform) RedisplayRequested() bool {
	r := g.needsRedraw
	g.needsRedraw = false
	return r
}

func (g *glfwPlatform) WindowSize() [2]int {
	w, h := g.window.GetSize()
	return [2]int{w, h}
}

func (g *glfwPlatform) FramebufferSize() [2]float32 {
	w, h := g.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

func (g *glfwPlatform) DPIScale() float32 {
	if runtime.GOOS == "windows" {
		xs, _ := g.window.GetContentScale()
		return xs
	}
	return g.FramebufferSize()[0] / float32(g.WindowSize()[0])
}

func (g *glfwPlatform) SetWindowTitle(text string) {
	if text != g.windowTitle {
		g.window.SetTitle(text)
		g.windowTitle = text
	}
}

func (g *glfwPlatform) ShouldStop() bool {
	return g.window.ShouldClose()
}

func (g *glfwPlatform) Clicked() ([2]float32, bool) {
	p, c := g.clickPos, g.clicked
	g.clicked = false
	return p, c
}

func (g *glfwPlatform) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.window.Destroy()
	glfw.Terminate()
}
