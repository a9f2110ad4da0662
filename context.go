// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"image"

	"github.com/glkit/gel/gl"
)

// MaxTextureUnits is the number of texture units whose bindings are
// tracked and elided.
const MaxTextureUnits = 32

// Identities for the cached binding slots. Device handles can be
// reused after deletion, so slots never cache handles; they cache
// process-unique ids minted by nextID. The zero id means "unknown",
// which forces the next bind on that slot to be issued.
type (
	programID uint64
	surfaceID uint64
	textureID uint64
	meshID    uint64
)

var lastID uint64

// nextID returns a fresh process-unique id. gel assumes a single
// rendering thread, so a plain counter suffices.
func nextID() uint64 {
	lastID++
	return lastID
}

// DrawMode is the coarse raster mode applied before a draw call.
type DrawMode int

const (
	// Draw2D disables face culling and depth testing.
	Draw2D DrawMode = iota + 1
	// Draw3D enables face culling and depth testing.
	Draw3D
)

type texBinding struct {
	target gl.Enum
	id     textureID
}

// cache mirrors the device-global binding slots gel mediates. Every
// slot mutation goes through the bind methods on Context, which
// update the cache and issue the device call as one step; the cache
// and the device therefore never diverge.
type cache struct {
	prog       programID
	drawTarget surfaceID
	readTarget surfaceID
	vertArray  meshID
	texUnits   [MaxTextureUnits]texBinding
	activeUnit int // unit+1, so the zero value is unknown
	drawMode   DrawMode
}

// Context owns the connection to the device and the binding cache.
// Every resource holds the Context it was created with and must not
// outlive it.
//
// A Context and all resources created from it must be driven from a
// single goroutine.
type Context struct {
	gl    gl.Context
	cache cache

	// Shared stream buffer for per-instance attributes. Instance
	// data is transient: DrawInstanced rewrites it on every call.
	instanceBuf gl.Buffer
}

// NewContext wraps a ready device context and returns it together
// with the surface representing the default framebuffer, sized to
// the host's initial render target size.
//
// The failure here (a missing device context) is the one recoverable
// creation error: hosts may present a fallback UI.
func NewContext(glctx gl.Context, size image.Point) (*Context, *ScreenSurface, error) {
	if glctx == nil {
		return nil, nil, &CreationError{Kind: KindContext, Reason: "no device context"}
	}
	glctx.Enable(gl.BLEND)
	glctx.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	glctx.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	c := &Context{
		gl:          glctx,
		instanceBuf: glctx.CreateBuffer(),
	}
	screen := &ScreenSurface{
		ctx:  c,
		id:   surfaceID(nextID()),
		size: size,
	}
	return c, screen, nil
}

// GL exposes the raw device context for performance-critical paths
// the typed layer does not cover. Calls made through it bypass the
// binding cache; callers must not change any tracked slot.
func (c *Context) GL() gl.Context {
	return c.gl
}

// Release deletes the device objects owned by the Context itself.
// All resources created from the Context must be released first.
func (c *Context) Release() {
	c.gl.DeleteBuffer(c.instanceBuf)
	c.instanceBuf = gl.Buffer{}
}

// useProgram binds p as the current program unless it already is.
func (c *Context) useProgram(id programID, p gl.Program) {
	if c.cache.prog != id {
		c.cache.prog = id
		c.gl.UseProgram(p)
	}
}

// bindDrawTarget binds fb as the draw framebuffer and reports
// whether a device call was issued. The default framebuffer is the
// zero handle under its surface's own id, so rebinding the screen is
// elided like any other target.
func (c *Context) bindDrawTarget(id surfaceID, fb gl.Framebuffer) bool {
	if c.cache.drawTarget == id {
		return false
	}
	c.cache.drawTarget = id
	c.gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fb)
	return true
}

// bindReadTarget is bindDrawTarget for the read slot. It never
// touches the viewport.
func (c *Context) bindReadTarget(id surfaceID, fb gl.Framebuffer) {
	if c.cache.readTarget == id {
		return
	}
	c.cache.readTarget = id
	c.gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
}

// bindFramebufferBoth binds fb to the combined FRAMEBUFFER target,
// which changes the draw and read slots at once. It reports whether
// the draw slot actually changed.
func (c *Context) bindFramebufferBoth(id surfaceID, fb gl.Framebuffer) bool {
	if c.cache.drawTarget == id && c.cache.readTarget == id {
		return false
	}
	drawChanged := c.cache.drawTarget != id
	c.cache.drawTarget = id
	c.cache.readTarget = id
	c.gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	return drawChanged
}

// activeTexture selects the device's active texture unit unless it
// already is active. Operations that address "the bound texture"
// through the active unit (TexSubImage2D and friends) must go through
// this even when the unit's binding itself is elided.
func (c *Context) activeTexture(unit int) {
	if unit < 0 || unit >= MaxTextureUnits {
		panic("gel: texture unit out of range")
	}
	if c.cache.activeUnit != unit+1 {
		c.cache.activeUnit = unit + 1
		c.gl.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
	}
}

// bindTexture binds t to the given unit unless that unit already
// holds it for the same target.
func (c *Context) bindTexture(unit int, target gl.Enum, id textureID, t gl.Texture) {
	if unit < 0 || unit >= MaxTextureUnits {
		panic("gel: texture unit out of range")
	}
	b := texBinding{target: target, id: id}
	if c.cache.texUnits[unit] != b {
		c.cache.texUnits[unit] = b
		c.activeTexture(unit)
		c.gl.BindTexture(target, t)
	}
}

// bindVertexArray binds a mesh's vertex array unless it is current.
func (c *Context) bindVertexArray(id meshID, a gl.VertexArray) {
	if c.cache.vertArray != id {
		c.cache.vertArray = id
		c.gl.BindVertexArray(a)
	}
}

// setDrawMode applies the coarse raster flags for m unless they are
// already in effect.
func (c *Context) setDrawMode(m DrawMode) {
	if c.cache.drawMode == m {
		return
	}
	c.cache.drawMode = m
	switch m {
	case Draw2D:
		c.gl.Disable(gl.CULL_FACE)
		c.gl.Disable(gl.DEPTH_TEST)
	case Draw3D:
		c.gl.Enable(gl.CULL_FACE)
		c.gl.Enable(gl.DEPTH_TEST)
	default:
		panic("gel: unknown draw mode")
	}
}

// forgetProgram invalidates the program slot if it names id, so a
// later bind is issued even if the device reuses the handle.
func (c *Context) forgetProgram(id programID) {
	if c.cache.prog == id {
		c.cache.prog = 0
	}
}

func (c *Context) forgetSurface(id surfaceID) {
	if c.cache.drawTarget == id {
		c.cache.drawTarget = 0
	}
	if c.cache.readTarget == id {
		c.cache.readTarget = 0
	}
}

func (c *Context) forgetTexture(id textureID) {
	for i, b := range c.cache.texUnits {
		if b.id == id {
			c.cache.texUnits[i] = texBinding{}
		}
	}
}

func (c *Context) forgetVertexArray(id meshID) {
	if c.cache.vertArray == id {
		c.cache.vertArray = 0
	}
}
