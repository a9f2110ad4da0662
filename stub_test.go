// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glkit/gel/gl"
)

// stubGL implements gl.Context in memory and counts every call, so
// tests can assert exactly which device calls a typed operation
// issued (and, more importantly, which ones it elided).
type stubGL struct {
	calls map[string]int

	// Configurable responses.
	attribLocs  map[string]int
	noUniforms  map[string]bool
	fbStatus    gl.Enum
	errs        []gl.Enum
	compileFail bool
	linkFail    bool
	shaderLog   string
	programLog  string
	maxSamples  int

	nextHandle  uint
	nextAttrib  int
	nextUniform int
	uniformLocs map[string]int

	// Recorded arguments of the calls the tests inspect.
	drawBinds  []gl.Framebuffer
	readBinds  []gl.Framebuffer
	bothBinds  []gl.Framebuffer
	viewports  [][4]int
	texBinds   []gl.Texture
	texUnits   []int
	pointers   []pointerCall
	divisors   []divisorCall
	uploads    []uploadCall
	drawCalls  []drawCall
	clearMasks []gl.Enum
	enables    []gl.Enum
	disables   []gl.Enum
	deletedFBs []gl.Framebuffer
	deletedRBs []gl.Renderbuffer
	deletedTex []gl.Texture
}

type pointerCall struct {
	attrib         gl.Attrib
	size           int
	stride, offset int
}

type divisorCall struct {
	attrib  gl.Attrib
	divisor int
}

type uploadCall struct {
	target gl.Enum
	size   int
	usage  gl.Enum
}

type drawCall struct {
	mode      gl.Enum
	count     int
	instances int // 0 for a plain draw
}

func newStubGL() *stubGL {
	return &stubGL{
		calls:       make(map[string]int),
		attribLocs:  make(map[string]int),
		noUniforms:  make(map[string]bool),
		uniformLocs: make(map[string]int),
		fbStatus:    gl.FRAMEBUFFER_COMPLETE,
		maxSamples:  4,
	}
}

// newTestContext wires a stub device into a fresh Context. The calls
// issued during setup are cleared so tests only see their own.
func newTestContext(t *testing.T) (*stubGL, *Context, *ScreenSurface) {
	t.Helper()
	stub := newStubGL()
	ctx, screen, err := NewContext(stub, image.Pt(640, 480))
	require.NoError(t, err)
	stub.reset()
	return stub, ctx, screen
}

func (s *stubGL) reset() {
	clear(s.calls)
	s.drawBinds = nil
	s.readBinds = nil
	s.bothBinds = nil
	s.viewports = nil
	s.texBinds = nil
	s.texUnits = nil
	s.pointers = nil
	s.divisors = nil
	s.uploads = nil
	s.drawCalls = nil
	s.clearMasks = nil
	s.enables = nil
	s.disables = nil
}

func (s *stubGL) count(name string) { s.calls[name]++ }

func (s *stubGL) handle() uint {
	s.nextHandle++
	return s.nextHandle
}

func (s *stubGL) ActiveTexture(unit gl.Enum) {
	s.count("ActiveTexture")
	s.texUnits = append(s.texUnits, int(unit-gl.TEXTURE0))
}

func (s *stubGL) AttachShader(p gl.Program, sh gl.Shader) { s.count("AttachShader") }

func (s *stubGL) BindBuffer(target gl.Enum, b gl.Buffer) { s.count("BindBuffer") }

func (s *stubGL) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	s.count("BindFramebuffer")
	switch target {
	case gl.DRAW_FRAMEBUFFER:
		s.drawBinds = append(s.drawBinds, fb)
	case gl.READ_FRAMEBUFFER:
		s.readBinds = append(s.readBinds, fb)
	case gl.FRAMEBUFFER:
		s.bothBinds = append(s.bothBinds, fb)
	}
}

func (s *stubGL) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) { s.count("BindRenderbuffer") }

func (s *stubGL) BindTexture(target gl.Enum, t gl.Texture) {
	s.count("BindTexture")
	s.texBinds = append(s.texBinds, t)
}

func (s *stubGL) BindVertexArray(a gl.VertexArray) { s.count("BindVertexArray") }

func (s *stubGL) BlendFunc(sfactor, dfactor gl.Enum) { s.count("BlendFunc") }

func (s *stubGL) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter gl.Enum) {
	s.count("BlitFramebuffer")
}

func (s *stubGL) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	s.count("BufferData")
	s.uploads = append(s.uploads, uploadCall{target: target, size: len(src), usage: usage})
}

func (s *stubGL) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	s.count("CheckFramebufferStatus")
	return s.fbStatus
}

func (s *stubGL) Clear(mask gl.Enum) {
	s.count("Clear")
	s.clearMasks = append(s.clearMasks, mask)
}

func (s *stubGL) ClearColor(red, green, blue, alpha float32) { s.count("ClearColor") }

func (s *stubGL) CompileShader(sh gl.Shader) { s.count("CompileShader") }

func (s *stubGL) CreateBuffer() gl.Buffer { s.count("CreateBuffer"); return gl.Buffer{V: s.handle()} }

func (s *stubGL) CreateFramebuffer() gl.Framebuffer {
	s.count("CreateFramebuffer")
	return gl.Framebuffer{V: s.handle()}
}

func (s *stubGL) CreateProgram() gl.Program {
	s.count("CreateProgram")
	return gl.Program{V: s.handle()}
}

func (s *stubGL) CreateRenderbuffer() gl.Renderbuffer {
	s.count("CreateRenderbuffer")
	return gl.Renderbuffer{V: s.handle()}
}

func (s *stubGL) CreateShader(typ gl.Enum) gl.Shader {
	s.count("CreateShader")
	return gl.Shader{V: s.handle()}
}

func (s *stubGL) CreateTexture() gl.Texture {
	s.count("CreateTexture")
	return gl.Texture{V: s.handle()}
}

func (s *stubGL) CreateVertexArray() gl.VertexArray {
	s.count("CreateVertexArray")
	return gl.VertexArray{V: s.handle()}
}

func (s *stubGL) DeleteBuffer(b gl.Buffer) { s.count("DeleteBuffer") }

func (s *stubGL) DeleteFramebuffer(fb gl.Framebuffer) {
	s.count("DeleteFramebuffer")
	s.deletedFBs = append(s.deletedFBs, fb)
}

func (s *stubGL) DeleteProgram(p gl.Program) { s.count("DeleteProgram") }

func (s *stubGL) DeleteRenderbuffer(rb gl.Renderbuffer) {
	s.count("DeleteRenderbuffer")
	s.deletedRBs = append(s.deletedRBs, rb)
}

func (s *stubGL) DeleteShader(sh gl.Shader) { s.count("DeleteShader") }

func (s *stubGL) DeleteTexture(t gl.Texture) {
	s.count("DeleteTexture")
	s.deletedTex = append(s.deletedTex, t)
}

func (s *stubGL) DeleteVertexArray(a gl.VertexArray) { s.count("DeleteVertexArray") }

func (s *stubGL) Disable(cap gl.Enum) {
	s.count("Disable")
	s.disables = append(s.disables, cap)
}

func (s *stubGL) DrawElements(mode gl.Enum, count int, typ gl.Enum, offset int) {
	s.count("DrawElements")
	s.drawCalls = append(s.drawCalls, drawCall{mode: mode, count: count})
}

func (s *stubGL) DrawElementsInstanced(mode gl.Enum, count int, typ gl.Enum, offset, instances int) {
	s.count("DrawElementsInstanced")
	s.drawCalls = append(s.drawCalls, drawCall{mode: mode, count: count, instances: instances})
}

func (s *stubGL) Enable(cap gl.Enum) {
	s.count("Enable")
	s.enables = append(s.enables, cap)
}

func (s *stubGL) EnableVertexAttribArray(a gl.Attrib) { s.count("EnableVertexAttribArray") }

func (s *stubGL) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb gl.Renderbuffer) {
	s.count("FramebufferRenderbuffer")
}

func (s *stubGL) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	s.count("FramebufferTexture2D")
}

func (s *stubGL) GenerateMipmap(target gl.Enum) { s.count("GenerateMipmap") }

func (s *stubGL) GetAttribLocation(p gl.Program, name string) int {
	s.count("GetAttribLocation")
	loc, ok := s.attribLocs[name]
	if !ok {
		// Leave room for matrix attributes so assigned locations
		// never overlap.
		loc = s.nextAttrib
		s.nextAttrib += 4
		s.attribLocs[name] = loc
	}
	return loc
}

func (s *stubGL) GetError() gl.Enum {
	s.count("GetError")
	if len(s.errs) == 0 {
		return gl.NO_ERROR
	}
	e := s.errs[0]
	s.errs = s.errs[1:]
	return e
}

func (s *stubGL) GetInteger(pname gl.Enum) int {
	s.count("GetInteger")
	if pname == gl.MAX_SAMPLES {
		return s.maxSamples
	}
	return 0
}

func (s *stubGL) GetProgramInfoLog(p gl.Program) string {
	s.count("GetProgramInfoLog")
	return s.programLog
}

func (s *stubGL) GetProgrami(p gl.Program, pname gl.Enum) int {
	s.count("GetProgrami")
	if pname == gl.LINK_STATUS && s.linkFail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (s *stubGL) GetShaderInfoLog(sh gl.Shader) string {
	s.count("GetShaderInfoLog")
	return s.shaderLog
}

func (s *stubGL) GetShaderi(sh gl.Shader, pname gl.Enum) int {
	s.count("GetShaderi")
	if pname == gl.COMPILE_STATUS && s.compileFail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (s *stubGL) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	s.count("GetUniformLocation")
	if s.noUniforms[name] {
		return gl.Uniform{V: -1}
	}
	loc, ok := s.uniformLocs[name]
	if !ok {
		loc = s.nextUniform
		s.nextUniform++
		s.uniformLocs[name] = loc
	}
	return gl.Uniform{V: loc}
}

func (s *stubGL) LinkProgram(p gl.Program) { s.count("LinkProgram") }

func (s *stubGL) PixelStorei(pname gl.Enum, param int) { s.count("PixelStorei") }

func (s *stubGL) RenderbufferStorageMultisample(target gl.Enum, samples int, internalformat gl.Enum, width, height int) {
	s.count("RenderbufferStorageMultisample")
}

func (s *stubGL) ShaderSource(sh gl.Shader, src string) { s.count("ShaderSource") }

func (s *stubGL) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, typ gl.Enum) {
	s.count("TexImage2D")
}

func (s *stubGL) TexParameteri(target, pname gl.Enum, param int) { s.count("TexParameteri") }

func (s *stubGL) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, typ gl.Enum, data []byte) {
	s.count("TexSubImage2D")
}

func (s *stubGL) Uniform1f(dst gl.Uniform, v float32) { s.count("Uniform1f") }

func (s *stubGL) Uniform1i(dst gl.Uniform, v int) { s.count("Uniform1i") }

func (s *stubGL) Uniform2f(dst gl.Uniform, v0, v1 float32) { s.count("Uniform2f") }

func (s *stubGL) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) { s.count("Uniform3f") }

func (s *stubGL) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) { s.count("Uniform4f") }

func (s *stubGL) UniformMatrix4fv(dst gl.Uniform, values []float32) { s.count("UniformMatrix4fv") }

func (s *stubGL) UseProgram(p gl.Program) { s.count("UseProgram") }

func (s *stubGL) VertexAttribDivisor(a gl.Attrib, divisor int) {
	s.count("VertexAttribDivisor")
	s.divisors = append(s.divisors, divisorCall{attrib: a, divisor: divisor})
}

func (s *stubGL) VertexAttribPointer(a gl.Attrib, size int, typ gl.Enum, normalized bool, stride, offset int) {
	s.count("VertexAttribPointer")
	s.pointers = append(s.pointers, pointerCall{attrib: a, size: size, stride: stride, offset: offset})
}

func (s *stubGL) Viewport(x, y, width, height int) {
	s.count("Viewport")
	s.viewports = append(s.viewports, [4]int{x, y, width, height})
}

var _ gl.Context = (*stubGL)(nil)
