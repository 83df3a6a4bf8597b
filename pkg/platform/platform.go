// pkg/platform/platform.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

// Platform is the interface that abstracts platform-specific features like
// creating windows, making the GL context current, and mouse handling.
type Platform interface {
	// ProcessEvents handles all pending window events. Returns true if
	// there were any events and false otherwise.
	ProcessEvents() bool
	// MakeContextCurrent makes the window's GL context current, returning
	// false if that is not possible (e.g. because the window has been
	// destroyed). No GL calls may be issued unless it has returned true.
	MakeContextCurrent() bool
	// PostRender performs the buffer swap.
	PostRender()
	// PostRedisplay requests that the scene be redrawn on the next trip
	// through the event loop; requests are coalesced.
	PostRedisplay()
	// RedisplayRequested reports whether a redisplay has been requested
	// since the last call, clearing the request.
	RedisplayRequested() bool
	// WindowSize returns the size of the window in screen coordinates.
	WindowSize() [2]int
	// FramebufferSize returns the dimension of the framebuffer.
	FramebufferSize() [2]float32
	// DPIScale returns the scaling factor to account for Retina-style
	// displays.
	DPIScale() float32
	// SetWindowTitle sets the title of the application window.
	SetWindowTitle(text string)
	// ShouldStop returns true if the window is to be closed.
	ShouldStop() bool
	// Clicked returns the position of a mouse click that has happened
	// since the last call, if any, in window coordinates with y=0 at the
	// bottom.
	Clicked() ([2]float32, bool)
	// Dispose is called when the application is shutting down and is when
	// resources are freed.
	Dispose()
}
