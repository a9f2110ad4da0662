// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/glkit/gel/gl"
)

// TextureFormat is the pixel format of a texture or renderbuffer.
type TextureFormat int

const (
	// R8 is a single-channel format; only the red component is
	// meaningful.
	R8 TextureFormat = iota
	RGB
	RGBA
	// SRGB and SRGBA are the gamma-encoded variants of RGB and RGBA.
	SRGB
	SRGBA
)

func (f TextureFormat) internalFormat() gl.Enum {
	switch f {
	case R8:
		return gl.R8
	case RGB:
		return gl.RGB8
	case RGBA:
		return gl.RGBA8
	case SRGB:
		return gl.SRGB8
	case SRGBA:
		return gl.SRGB8_ALPHA8
	default:
		panic("gel: unknown texture format")
	}
}

func (f TextureFormat) uploadFormat() gl.Enum {
	switch f {
	case R8:
		return gl.RED
	case RGB, SRGB:
		return gl.RGB
	case RGBA, SRGBA:
		return gl.RGBA
	default:
		panic("gel: unknown texture format")
	}
}

func (f TextureFormat) channels() int {
	switch f {
	case R8:
		return 1
	case RGB, SRGB:
		return 3
	default:
		return 4
	}
}

// IsSRGB reports whether the format is gamma encoded.
func (f TextureFormat) IsSRGB() bool {
	return f == SRGB || f == SRGBA
}

// MinFilter is the minification filter of a texture.
type MinFilter int

const (
	MinNearest MinFilter = iota
	MinLinear
	NearestMipmapNearest
	NearestMipmapLinear
	LinearMipmapNearest
	LinearMipmapLinear
)

func (f MinFilter) glEnum() gl.Enum {
	switch f {
	case MinNearest:
		return gl.NEAREST
	case MinLinear:
		return gl.LINEAR
	case NearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case NearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case LinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		panic("gel: unknown min filter")
	}
}

func (f MinFilter) hasMipmap() bool {
	return f != MinNearest && f != MinLinear
}

// MagFilter is the magnification filter of a texture.
type MagFilter int

const (
	MagNearest MagFilter = iota
	MagLinear
)

func (f MagFilter) glEnum() gl.Enum {
	switch f {
	case MagNearest:
		return gl.NEAREST
	case MagLinear:
		return gl.LINEAR
	default:
		panic("gel: unknown mag filter")
	}
}

// WrapMode is the texture coordinate wrap behavior.
type WrapMode int

const (
	ClampToEdge WrapMode = iota
	Repeat
)

func (w WrapMode) glEnum() gl.Enum {
	switch w {
	case ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case Repeat:
		return gl.REPEAT
	default:
		panic("gel: unknown wrap mode")
	}
}

// A Texture2D owns one device texture.
type Texture2D struct {
	ctx    *Context
	obj    gl.Texture
	id     textureID
	size   image.Point
	format TextureFormat
}

// NewTexture creates an empty texture, typically to be rendered into
// through a Framebuffer. Mipmap min filters are rejected: there is no
// data to build mipmaps from.
func NewTexture(ctx *Context, size image.Point, format TextureFormat, minFilter MinFilter, magFilter MagFilter, wrap WrapMode) (*Texture2D, error) {
	if minFilter.hasMipmap() {
		return nil, &CreationError{Kind: KindTexture, Reason: "mipmap min filter on empty texture"}
	}
	return newTexture(ctx, size, nil, format, minFilter, magFilter, wrap)
}

// NewTextureFromData creates a texture from tightly packed pixel
// data, len(data) == width*height*channels.
func NewTextureFromData(ctx *Context, size image.Point, data []byte, format TextureFormat, minFilter MinFilter, magFilter MagFilter, wrap WrapMode) (*Texture2D, error) {
	if want := size.X * size.Y * format.channels(); len(data) != want {
		return nil, &CreationError{
			Kind:   KindTexture,
			Reason: fmt.Sprintf("pixel data is %d bytes, want %d", len(data), want),
		}
	}
	return newTexture(ctx, size, data, format, minFilter, magFilter, wrap)
}

// NewTextureFromImage creates a texture from any image.Image. The
// pixels are converted to the tightly packed upload form; decoding
// the image is the caller's business.
func NewTextureFromImage(ctx *Context, img image.Image, format TextureFormat, minFilter MinFilter, magFilter MagFilter, wrap WrapMode) (*Texture2D, error) {
	b := img.Bounds()
	size := image.Pt(b.Dx(), b.Dy())
	return NewTextureFromData(ctx, size, packPixels(img, format), format, minFilter, magFilter, wrap)
}

// packPixels converts img into tightly packed bytes for format.
func packPixels(img image.Image, format TextureFormat) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*w {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	if format.channels() == 4 {
		return nrgba.Pix
	}
	ch := format.channels()
	out := make([]byte, w*h*ch)
	for i := 0; i < w*h; i++ {
		copy(out[i*ch:(i+1)*ch], nrgba.Pix[i*4:i*4+ch])
	}
	return out
}

func newTexture(ctx *Context, size image.Point, data []byte, format TextureFormat, minFilter MinFilter, magFilter MagFilter, wrap WrapMode) (*Texture2D, error) {
	t := &Texture2D{
		ctx:    ctx,
		obj:    ctx.gl.CreateTexture(),
		id:     textureID(nextID()),
		size:   size,
		format: format,
	}
	t.bind(0)
	ctx.gl.TexImage2D(gl.TEXTURE_2D, 0, format.internalFormat(), size.X, size.Y, format.uploadFormat(), gl.UNSIGNED_BYTE)
	if data != nil {
		ctx.gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, size.X, size.Y, format.uploadFormat(), gl.UNSIGNED_BYTE, data)
	}
	ctx.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int(minFilter.glEnum()))
	ctx.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int(magFilter.glEnum()))
	ctx.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int(wrap.glEnum()))
	ctx.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int(wrap.glEnum()))
	if minFilter.hasMipmap() {
		ctx.gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	if errno := ctx.gl.GetError(); errno != gl.NO_ERROR {
		t.Release()
		return nil, &CreationError{
			Kind:   KindTexture,
			Reason: fmt.Sprintf("glGetError: %#x", uint(errno)),
		}
	}
	return t, nil
}

// SetContents replaces the texture's pixels. The data must cover the
// whole texture in the texture's own format.
func (t *Texture2D) SetContents(data []byte) error {
	if want := t.size.X * t.size.Y * t.format.channels(); len(data) != want {
		return fmt.Errorf("gel: pixel data is %d bytes, want %d", len(data), want)
	}
	// TexSubImage2D addresses the texture through the active unit, so
	// unit 0 must be made active even when the bind itself is elided.
	t.ctx.activeTexture(0)
	t.bind(0)
	t.ctx.gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, t.size.X, t.size.Y, t.format.uploadFormat(), gl.UNSIGNED_BYTE, data)
	return nil
}

// Size returns the texture's size in pixels.
func (t *Texture2D) Size() image.Point {
	return t.size
}

// Format returns the texture's pixel format.
func (t *Texture2D) Format() TextureFormat {
	return t.format
}

// IsSRGB reports whether the texture uses a gamma-encoded format.
func (t *Texture2D) IsSRGB() bool {
	return t.format.IsSRGB()
}

func (t *Texture2D) bind(unit int) {
	t.ctx.bindTexture(unit, gl.TEXTURE_2D, t.id, t.obj)
}

// Release deletes the device texture and clears any texture unit
// slots naming it.
func (t *Texture2D) Release() {
	t.ctx.forgetTexture(t.id)
	t.ctx.gl.DeleteTexture(t.obj)
	t.obj = gl.Texture{}
}
