// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"fmt"
	"image"

	"github.com/glkit/gel/gl"
)

// A Renderbuffer owns one device renderbuffer with multisampled
// storage at the device's maximum sample count. Renderbuffers exist
// to back framebuffers; they cannot be sampled.
type Renderbuffer struct {
	ctx  *Context
	obj  gl.Renderbuffer
	size image.Point
}

// NewRenderbuffer allocates multisampled storage of the given size
// and format.
func NewRenderbuffer(ctx *Context, size image.Point, format TextureFormat) (*Renderbuffer, error) {
	r := &Renderbuffer{
		ctx:  ctx,
		obj:  ctx.gl.CreateRenderbuffer(),
		size: size,
	}
	ctx.gl.BindRenderbuffer(gl.RENDERBUFFER, r.obj)
	samples := ctx.gl.GetInteger(gl.MAX_SAMPLES)
	ctx.gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, format.internalFormat(), size.X, size.Y)
	if errno := ctx.gl.GetError(); errno != gl.NO_ERROR {
		r.Release()
		return nil, &CreationError{
			Kind:   KindRenderbuffer,
			Reason: fmt.Sprintf("glGetError: %#x", uint(errno)),
		}
	}
	return r, nil
}

// Size returns the renderbuffer's size in pixels.
func (r *Renderbuffer) Size() image.Point {
	return r.size
}

// Release deletes the device renderbuffer.
func (r *Renderbuffer) Release() {
	r.ctx.gl.DeleteRenderbuffer(r.obj)
	r.obj = gl.Renderbuffer{}
}

func (r *Renderbuffer) attach(c *Context) {
	c.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, r.obj)
}

func (r *Renderbuffer) release() {
	r.Release()
}

func (t *Texture2D) attach(c *Context) {
	c.gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.obj, 0)
}

func (t *Texture2D) release() {
	t.Release()
}

// An Attachment is the image a Framebuffer renders into: a Texture2D
// or a Renderbuffer. The set is closed; both call sites share one
// bind and completeness-check path.
type Attachment interface {
	Size() image.Point
	attach(c *Context)
	release()
}

// A Framebuffer is a non-default render target. It exclusively owns
// its attachment: releasing the framebuffer releases the attachment.
type Framebuffer struct {
	ctx        *Context
	obj        gl.Framebuffer
	attachment Attachment
	id         surfaceID
	size       image.Point
}

// NewFramebuffer attaches att to a fresh framebuffer and validates
// completeness. Ownership of att passes to the framebuffer even on
// failure: an incomplete framebuffer releases the attachment along
// with its own handle before the error is returned.
func NewFramebuffer(ctx *Context, att Attachment) (*Framebuffer, error) {
	f := &Framebuffer{
		ctx:        ctx,
		obj:        ctx.gl.CreateFramebuffer(),
		attachment: att,
		id:         surfaceID(nextID()),
		size:       att.Size(),
	}
	if ctx.bindFramebufferBoth(f.id, f.obj) {
		ctx.gl.Viewport(0, 0, f.size.X, f.size.Y)
	}
	att.attach(ctx)

	if status := ctx.gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		reason := completenessReason(status)
		logger().Error("framebuffer not complete", "reason", reason)
		ctx.forgetSurface(f.id)
		ctx.gl.DeleteFramebuffer(f.obj)
		att.release()
		return nil, &CreationError{Kind: KindFramebuffer, Reason: reason}
	}
	return f, nil
}

func completenessReason(status gl.Enum) string {
	switch status {
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return ReasonIncompleteAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return ReasonIncompleteMissingAttachment
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return ReasonUnsupported
	default:
		return ReasonUnknown
	}
}

// NewTextureFramebuffer creates a framebuffer backed by a fresh
// empty texture, which can later be sampled via Attachment.
func NewTextureFramebuffer(ctx *Context, size image.Point, format TextureFormat, minFilter MinFilter, magFilter MagFilter, wrap WrapMode) (*Framebuffer, error) {
	tex, err := NewTexture(ctx, size, format, minFilter, magFilter, wrap)
	if err != nil {
		return nil, err
	}
	return NewFramebuffer(ctx, tex)
}

// NewRenderbufferFramebuffer creates a framebuffer backed by a fresh
// multisampled renderbuffer.
func NewRenderbufferFramebuffer(ctx *Context, size image.Point, format TextureFormat) (*Framebuffer, error) {
	rb, err := NewRenderbuffer(ctx, size, format)
	if err != nil {
		return nil, err
	}
	return NewFramebuffer(ctx, rb)
}

// Attachment returns the owned attachment, e.g. to sample a
// texture-backed framebuffer's contents.
func (f *Framebuffer) Attachment() Attachment {
	return f.attachment
}

// BlitTo copies the framebuffer's color contents onto dst. This is
// how multisampled renderbuffer contents are resolved; dst must not
// itself be multisampled.
func (f *Framebuffer) BlitTo(dst Surface) {
	f.bindRead()
	dst.bind()
	f.ctx.gl.BlitFramebuffer(
		0, 0, f.size.X, f.size.Y,
		0, 0, f.size.X, f.size.Y,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
}

func (f *Framebuffer) bind() {
	if f.ctx.bindDrawTarget(f.id, f.obj) {
		f.ctx.gl.Viewport(0, 0, f.size.X, f.size.Y)
	}
}

func (f *Framebuffer) bindRead() {
	f.ctx.bindReadTarget(f.id, f.obj)
}

// Size returns the attachment's size in pixels.
func (f *Framebuffer) Size() image.Point {
	return f.size
}

// Clear clears one or more of the framebuffer's buffers.
func (f *Framebuffer) Clear(buffers ...ClearBuffer) {
	clearSurface(f.ctx, f, buffers)
}

// Release deletes the device framebuffer and the owned attachment.
func (f *Framebuffer) Release() {
	f.ctx.forgetSurface(f.id)
	f.ctx.gl.DeleteFramebuffer(f.obj)
	f.obj = gl.Framebuffer{}
	f.attachment.release()
}
