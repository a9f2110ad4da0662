// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gl is the device boundary of gel: the constants, handle types
and call surface of the underlying OpenGL (ES) context.

The library itself never talks to the platform; the host hands it a
ready Context. The Functions implementation in this package loads the
system GL library at runtime for hosts that don't bring their own.
*/
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER                              = 0x8892
	BLEND                                     = 0xbe2
	CLAMP_TO_EDGE                             = 0x812f
	COLOR_ATTACHMENT0                         = 0x8ce0
	COLOR_BUFFER_BIT                          = 0x4000
	COMPILE_STATUS                            = 0x8b81
	CULL_FACE                                 = 0xb44
	DEPTH_BUFFER_BIT                          = 0x100
	DEPTH_TEST                                = 0xb71
	DRAW_FRAMEBUFFER                          = 0x8CA9
	DYNAMIC_DRAW                              = 0x88E8
	ELEMENT_ARRAY_BUFFER                      = 0x8893
	FALSE                                     = 0
	FLOAT                                     = 0x1406
	FRAGMENT_SHADER                           = 0x8b30
	FRAMEBUFFER                               = 0x8d40
	FRAMEBUFFER_COMPLETE                      = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8cd7
	FRAMEBUFFER_UNSUPPORTED                   = 0x8cdd
	INFO_LOG_LENGTH                           = 0x8B84
	LINEAR                                    = 0x2601
	LINEAR_MIPMAP_LINEAR                      = 0x2703
	LINEAR_MIPMAP_NEAREST                     = 0x2701
	LINES                                     = 0x1
	LINK_STATUS                               = 0x8b82
	MAX_SAMPLES                               = 0x8d57
	NEAREST                                   = 0x2600
	NEAREST_MIPMAP_LINEAR                     = 0x2702
	NEAREST_MIPMAP_NEAREST                    = 0x2700
	NO_ERROR                                  = 0x0
	ONE                                       = 0x1
	ONE_MINUS_SRC_ALPHA                       = 0x303
	POINTS                                    = 0x0
	R8                                        = 0x8229
	READ_FRAMEBUFFER                          = 0x8ca8
	RED                                       = 0x1903
	RENDERBUFFER                              = 0x8d41
	REPEAT                                    = 0x2901
	RGB                                       = 0x1907
	RGB8                                      = 0x8051
	RGBA                                      = 0x1908
	RGBA8                                     = 0x8058
	SRGB8                                     = 0x8c41
	SRGB8_ALPHA8                              = 0x8c43
	STATIC_DRAW                               = 0x88e4
	STREAM_DRAW                               = 0x88e0
	TEXTURE_2D                                = 0xde1
	TEXTURE_MAG_FILTER                        = 0x2800
	TEXTURE_MIN_FILTER                        = 0x2801
	TEXTURE_WRAP_S                            = 0x2802
	TEXTURE_WRAP_T                            = 0x2803
	TEXTURE0                                  = 0x84c0
	TRIANGLES                                 = 0x4
	TRUE                                      = 1
	UNPACK_ALIGNMENT                          = 0xcf5
	UNSIGNED_BYTE                             = 0x1401
	UNSIGNED_SHORT                            = 0x1403
	VERSION                                   = 0x1f02
	VERTEX_SHADER                             = 0x8b31
)

// Context is the set of device entry points gel drives. The host
// supplies an implementation; *Functions is the library-provided one.
//
// A Context is not safe for concurrent use. All of gel assumes a
// single rendering thread.
type Context interface {
	ActiveTexture(unit Enum)
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindRenderbuffer(target Enum, rb Renderbuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendFunc(sfactor, dfactor Enum)
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum)
	BufferData(target Enum, src []byte, usage Enum)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateRenderbuffer() Renderbuffer
	CreateShader(typ Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	DeleteBuffer(b Buffer)
	DeleteFramebuffer(fb Framebuffer)
	DeleteProgram(p Program)
	DeleteRenderbuffer(rb Renderbuffer)
	DeleteShader(s Shader)
	DeleteTexture(t Texture)
	DeleteVertexArray(a VertexArray)
	Disable(cap Enum)
	DrawElements(mode Enum, count int, typ Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	GenerateMipmap(target Enum)
	GetAttribLocation(p Program, name string) int
	GetError() Enum
	GetInteger(pname Enum) int
	GetProgramInfoLog(p Program) string
	GetProgrami(p Program, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetShaderi(s Shader, pname Enum) int
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	RenderbufferStorageMultisample(target Enum, samples int, internalformat Enum, width, height int)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, typ Enum, data []byte)
	Uniform1f(dst Uniform, v float32)
	Uniform1i(dst Uniform, v int)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst Uniform, values []float32)
	UseProgram(p Program)
	VertexAttribDivisor(a Attrib, divisor int)
	VertexAttribPointer(a Attrib, size int, typ Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
