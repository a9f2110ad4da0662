// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"image"

	"github.com/glkit/gel/gl"
)

// A Surface is a render target: the screen or a framebuffer. Binding
// is cache-elided; the viewport is synchronized only when the draw
// target identity actually changes.
type Surface interface {
	bind()
	bindRead()

	// Size returns the surface's size in pixels.
	Size() image.Point
	// Clear clears one or more of the surface's buffers in a single
	// device clear. At least one buffer must be requested.
	Clear(buffers ...ClearBuffer)
}

// A ClearBuffer selects one buffer kind for Surface.Clear.
type ClearBuffer struct {
	mask  gl.Enum
	color [4]float32
}

// ClearColor clears the color buffer to the given RGBA value.
func ClearColor(r, g, b, a float32) ClearBuffer {
	return ClearBuffer{mask: gl.COLOR_BUFFER_BIT, color: [4]float32{r, g, b, a}}
}

// ClearDepth clears the depth buffer.
func ClearDepth() ClearBuffer {
	return ClearBuffer{mask: gl.DEPTH_BUFFER_BIT}
}

// clearSurface is the shared Clear implementation: bind the surface,
// then issue one combined clear covering every requested buffer.
func clearSurface(c *Context, s Surface, buffers []ClearBuffer) {
	if len(buffers) == 0 {
		panic("gel: Clear with no buffers")
	}
	s.bind()
	var mask gl.Enum
	for _, b := range buffers {
		mask |= b.mask
		if b.mask == gl.COLOR_BUFFER_BIT {
			c.gl.ClearColor(b.color[0], b.color[1], b.color[2], b.color[3])
		}
	}
	c.gl.Clear(mask)
}

// A ScreenSurface is the host's default render target. Its logical
// size is tracked here, not on the device; the host reports resizes
// through SetSize.
type ScreenSurface struct {
	ctx  *Context
	id   surfaceID
	size image.Point
}

func (s *ScreenSurface) bind() {
	// The default target is the zero framebuffer handle, cached
	// under this surface's id like any other binding.
	if s.ctx.bindDrawTarget(s.id, gl.Framebuffer{}) {
		s.ctx.gl.Viewport(0, 0, s.size.X, s.size.Y)
	}
}

func (s *ScreenSurface) bindRead() {
	s.ctx.bindReadTarget(s.id, gl.Framebuffer{})
}

// Size returns the screen's logical size in pixels.
func (s *ScreenSurface) Size() image.Point {
	return s.size
}

// SetSize records the host's new backbuffer size. If the screen is
// the currently bound draw target the viewport is re-applied
// immediately; a later elided bind would otherwise leave the
// viewport and backbuffer sizes diverged.
func (s *ScreenSurface) SetSize(size image.Point) {
	s.size = size
	if s.ctx.cache.drawTarget == s.id {
		s.ctx.gl.Viewport(0, 0, size.X, size.Y)
	}
}

// Clear clears one or more of the screen's buffers.
func (s *ScreenSurface) Clear(buffers ...ClearBuffer) {
	clearSurface(s.ctx, s, buffers)
}
