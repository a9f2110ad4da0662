// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd || darwin

package gl

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Functions implements Context on top of the system GL library,
// loaded at runtime. No cgo is involved.
type Functions struct {
	glActiveTexture                  func(texture uint32)
	glAttachShader                   func(program, shader uint32)
	glBindBuffer                     func(target, buffer uint32)
	glBindFramebuffer                func(target, framebuffer uint32)
	glBindRenderbuffer               func(target, renderbuffer uint32)
	glBindTexture                    func(target, texture uint32)
	glBindVertexArray                func(array uint32)
	glBlendFunc                      func(sfactor, dfactor uint32)
	glBlitFramebuffer                func(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int32, mask, filter uint32)
	glBufferData                     func(target uint32, size uintptr, data *byte, usage uint32)
	glCheckFramebufferStatus         func(target uint32) uint32
	glClear                          func(mask uint32)
	glClearColor                     func(red, green, blue, alpha float32)
	glCompileShader                  func(shader uint32)
	glCreateProgram                  func() uint32
	glCreateShader                   func(typ uint32) uint32
	glDeleteBuffers                  func(n int32, buffers *uint32)
	glDeleteFramebuffers             func(n int32, framebuffers *uint32)
	glDeleteProgram                  func(program uint32)
	glDeleteRenderbuffers            func(n int32, renderbuffers *uint32)
	glDeleteShader                   func(shader uint32)
	glDeleteTextures                 func(n int32, textures *uint32)
	glDeleteVertexArrays             func(n int32, arrays *uint32)
	glDisable                        func(cap uint32)
	glDrawElements                   func(mode uint32, count int32, typ uint32, indices uintptr)
	glDrawElementsInstanced          func(mode uint32, count int32, typ uint32, indices uintptr, instancecount int32)
	glEnable                         func(cap uint32)
	glEnableVertexAttribArray        func(index uint32)
	glFramebufferRenderbuffer        func(target, attachment, rbTarget, renderbuffer uint32)
	glFramebufferTexture2D           func(target, attachment, texTarget, texture uint32, level int32)
	glGenBuffers                     func(n int32, buffers *uint32)
	glGenFramebuffers                func(n int32, framebuffers *uint32)
	glGenRenderbuffers               func(n int32, renderbuffers *uint32)
	glGenTextures                    func(n int32, textures *uint32)
	glGenVertexArrays                func(n int32, arrays *uint32)
	glGenerateMipmap                 func(target uint32)
	glGetAttribLocation              func(program uint32, name string) int32
	glGetError                       func() uint32
	glGetIntegerv                    func(pname uint32, data *int32)
	glGetProgramInfoLog              func(program uint32, bufSize int32, length *int32, infoLog *byte)
	glGetProgramiv                   func(program, pname uint32, params *int32)
	glGetShaderInfoLog               func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	glGetShaderiv                    func(shader, pname uint32, params *int32)
	glGetUniformLocation             func(program uint32, name string) int32
	glLinkProgram                    func(program uint32)
	glPixelStorei                    func(pname uint32, param int32)
	glRenderbufferStorageMultisample func(target uint32, samples int32, internalformat uint32, width, height int32)
	glShaderSource                   func(shader uint32, count int32, srcs *uintptr, lengths *int32)
	glTexImage2D                     func(target uint32, level, internalFormat, width, height, border int32, format, typ uint32, pixels *byte)
	glTexParameteri                  func(target, pname uint32, param int32)
	glTexSubImage2D                  func(target uint32, level, x, y, width, height int32, format, typ uint32, pixels *byte)
	glUniform1f                      func(location int32, v0 float32)
	glUniform1i                      func(location, v0 int32)
	glUniform2f                      func(location int32, v0, v1 float32)
	glUniform3f                      func(location int32, v0, v1, v2 float32)
	glUniform4f                      func(location int32, v0, v1, v2, v3 float32)
	glUniformMatrix4fv               func(location, count int32, transpose bool, value *float32)
	glUseProgram                     func(program uint32)
	glVertexAttribDivisor            func(index, divisor uint32)
	glVertexAttribPointer            func(index uint32, size int32, typ uint32, normalized bool, stride int32, pointer uintptr)
	glViewport                       func(x, y, width, height int32)
}

// NewFunctions loads the system GL library and resolves every entry
// point in Context. The calling goroutine must be the one holding the
// current GL context (callers typically pair this with
// runtime.LockOSThread).
func NewFunctions() (*Functions, error) {
	lib, err := loadGL()
	if err != nil {
		return nil, err
	}
	f := new(Functions)
	for _, fn := range []struct {
		ptr  any
		name string
	}{
		{&f.glActiveTexture, "glActiveTexture"},
		{&f.glAttachShader, "glAttachShader"},
		{&f.glBindBuffer, "glBindBuffer"},
		{&f.glBindFramebuffer, "glBindFramebuffer"},
		{&f.glBindRenderbuffer, "glBindRenderbuffer"},
		{&f.glBindTexture, "glBindTexture"},
		{&f.glBindVertexArray, "glBindVertexArray"},
		{&f.glBlendFunc, "glBlendFunc"},
		{&f.glBlitFramebuffer, "glBlitFramebuffer"},
		{&f.glBufferData, "glBufferData"},
		{&f.glCheckFramebufferStatus, "glCheckFramebufferStatus"},
		{&f.glClear, "glClear"},
		{&f.glClearColor, "glClearColor"},
		{&f.glCompileShader, "glCompileShader"},
		{&f.glCreateProgram, "glCreateProgram"},
		{&f.glCreateShader, "glCreateShader"},
		{&f.glDeleteBuffers, "glDeleteBuffers"},
		{&f.glDeleteFramebuffers, "glDeleteFramebuffers"},
		{&f.glDeleteProgram, "glDeleteProgram"},
		{&f.glDeleteRenderbuffers, "glDeleteRenderbuffers"},
		{&f.glDeleteShader, "glDeleteShader"},
		{&f.glDeleteTextures, "glDeleteTextures"},
		{&f.glDeleteVertexArrays, "glDeleteVertexArrays"},
		{&f.glDisable, "glDisable"},
		{&f.glDrawElements, "glDrawElements"},
		{&f.glDrawElementsInstanced, "glDrawElementsInstanced"},
		{&f.glEnable, "glEnable"},
		{&f.glEnableVertexAttribArray, "glEnableVertexAttribArray"},
		{&f.glFramebufferRenderbuffer, "glFramebufferRenderbuffer"},
		{&f.glFramebufferTexture2D, "glFramebufferTexture2D"},
		{&f.glGenBuffers, "glGenBuffers"},
		{&f.glGenFramebuffers, "glGenFramebuffers"},
		{&f.glGenRenderbuffers, "glGenRenderbuffers"},
		{&f.glGenTextures, "glGenTextures"},
		{&f.glGenVertexArrays, "glGenVertexArrays"},
		{&f.glGenerateMipmap, "glGenerateMipmap"},
		{&f.glGetAttribLocation, "glGetAttribLocation"},
		{&f.glGetError, "glGetError"},
		{&f.glGetIntegerv, "glGetIntegerv"},
		{&f.glGetProgramInfoLog, "glGetProgramInfoLog"},
		{&f.glGetProgramiv, "glGetProgramiv"},
		{&f.glGetShaderInfoLog, "glGetShaderInfoLog"},
		{&f.glGetShaderiv, "glGetShaderiv"},
		{&f.glGetUniformLocation, "glGetUniformLocation"},
		{&f.glLinkProgram, "glLinkProgram"},
		{&f.glPixelStorei, "glPixelStorei"},
		{&f.glRenderbufferStorageMultisample, "glRenderbufferStorageMultisample"},
		{&f.glShaderSource, "glShaderSource"},
		{&f.glTexImage2D, "glTexImage2D"},
		{&f.glTexParameteri, "glTexParameteri"},
		{&f.glTexSubImage2D, "glTexSubImage2D"},
		{&f.glUniform1f, "glUniform1f"},
		{&f.glUniform1i, "glUniform1i"},
		{&f.glUniform2f, "glUniform2f"},
		{&f.glUniform3f, "glUniform3f"},
		{&f.glUniform4f, "glUniform4f"},
		{&f.glUniformMatrix4fv, "glUniformMatrix4fv"},
		{&f.glUseProgram, "glUseProgram"},
		{&f.glVertexAttribDivisor, "glVertexAttribDivisor"},
		{&f.glVertexAttribPointer, "glVertexAttribPointer"},
		{&f.glViewport, "glViewport"},
	} {
		purego.RegisterLibFunc(fn.ptr, lib, fn.name)
	}
	return f, nil
}

func loadGL() (uintptr, error) {
	var names []string
	switch runtime.GOOS {
	case "darwin":
		names = []string{"/System/Library/Frameworks/OpenGL.framework/OpenGL"}
	default:
		names = []string{"libGLESv2.so.2", "libGLESv2.so", "libGL.so.1", "libGL.so"}
	}
	var firstErr error
	for _, name := range names {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return lib, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, fmt.Errorf("gl: loading GL library: %w", firstErr)
}

func (f *Functions) ActiveTexture(unit Enum) {
	f.glActiveTexture(uint32(unit))
}

func (f *Functions) AttachShader(p Program, s Shader) {
	f.glAttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindBuffer(target Enum, b Buffer) {
	f.glBindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindFramebuffer(target Enum, fb Framebuffer) {
	f.glBindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) BindRenderbuffer(target Enum, rb Renderbuffer) {
	f.glBindRenderbuffer(uint32(target), uint32(rb.V))
}

func (f *Functions) BindTexture(target Enum, t Texture) {
	f.glBindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) BindVertexArray(a VertexArray) {
	f.glBindVertexArray(uint32(a.V))
}

func (f *Functions) BlendFunc(sfactor, dfactor Enum) {
	f.glBlendFunc(uint32(sfactor), uint32(dfactor))
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum) {
	f.glBlitFramebuffer(int32(sx0), int32(sy0), int32(sx1), int32(sy1),
		int32(dx0), int32(dy0), int32(dx1), int32(dy1),
		uint32(mask), uint32(filter))
}

func (f *Functions) BufferData(target Enum, src []byte, usage Enum) {
	var p *byte
	if len(src) > 0 {
		p = &src[0]
	}
	f.glBufferData(uint32(target), uintptr(len(src)), p, uint32(usage))
}

func (f *Functions) CheckFramebufferStatus(target Enum) Enum {
	return Enum(f.glCheckFramebufferStatus(uint32(target)))
}

func (f *Functions) Clear(mask Enum) {
	f.glClear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.glClearColor(red, green, blue, alpha)
}

func (f *Functions) CompileShader(s Shader) {
	f.glCompileShader(uint32(s.V))
}

func (f *Functions) CreateBuffer() Buffer {
	var b uint32
	f.glGenBuffers(1, &b)
	return Buffer{uint(b)}
}

func (f *Functions) CreateFramebuffer() Framebuffer {
	var fb uint32
	f.glGenFramebuffers(1, &fb)
	return Framebuffer{uint(fb)}
}

func (f *Functions) CreateProgram() Program {
	return Program{uint(f.glCreateProgram())}
}

func (f *Functions) CreateRenderbuffer() Renderbuffer {
	var rb uint32
	f.glGenRenderbuffers(1, &rb)
	return Renderbuffer{uint(rb)}
}

func (f *Functions) CreateShader(typ Enum) Shader {
	return Shader{uint(f.glCreateShader(uint32(typ)))}
}

func (f *Functions) CreateTexture() Texture {
	var t uint32
	f.glGenTextures(1, &t)
	return Texture{uint(t)}
}

func (f *Functions) CreateVertexArray() VertexArray {
	var a uint32
	f.glGenVertexArrays(1, &a)
	return VertexArray{uint(a)}
}

func (f *Functions) DeleteBuffer(b Buffer) {
	v := uint32(b.V)
	f.glDeleteBuffers(1, &v)
}

func (f *Functions) DeleteFramebuffer(fb Framebuffer) {
	v := uint32(fb.V)
	f.glDeleteFramebuffers(1, &v)
}

func (f *Functions) DeleteProgram(p Program) {
	f.glDeleteProgram(uint32(p.V))
}

func (f *Functions) DeleteRenderbuffer(rb Renderbuffer) {
	v := uint32(rb.V)
	f.glDeleteRenderbuffers(1, &v)
}

func (f *Functions) DeleteShader(s Shader) {
	f.glDeleteShader(uint32(s.V))
}

func (f *Functions) DeleteTexture(t Texture) {
	v := uint32(t.V)
	f.glDeleteTextures(1, &v)
}

func (f *Functions) DeleteVertexArray(a VertexArray) {
	v := uint32(a.V)
	f.glDeleteVertexArrays(1, &v)
}

func (f *Functions) Disable(cap Enum) {
	f.glDisable(uint32(cap))
}

func (f *Functions) DrawElements(mode Enum, count int, typ Enum, offset int) {
	f.glDrawElements(uint32(mode), int32(count), uint32(typ), uintptr(offset))
}

func (f *Functions) DrawElementsInstanced(mode Enum, count int, typ Enum, offset, instances int) {
	f.glDrawElementsInstanced(uint32(mode), int32(count), uint32(typ), uintptr(offset), int32(instances))
}

func (f *Functions) Enable(cap Enum) {
	f.glEnable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a Attrib) {
	f.glEnableVertexAttribArray(uint32(a))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbTarget Enum, rb Renderbuffer) {
	f.glFramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), uint32(rb.V))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.glFramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) GenerateMipmap(target Enum) {
	f.glGenerateMipmap(uint32(target))
}

func (f *Functions) GetAttribLocation(p Program, name string) int {
	return int(f.glGetAttribLocation(uint32(p.V), name))
}

func (f *Functions) GetError() Enum {
	return Enum(f.glGetError())
}

func (f *Functions) GetInteger(pname Enum) int {
	var v int32
	f.glGetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p Program) string {
	n := f.GetProgrami(p, INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var length int32
	f.glGetProgramInfoLog(uint32(p.V), int32(len(buf)), &length, &buf[0])
	return string(buf[:length])
}

func (f *Functions) GetProgrami(p Program, pname Enum) int {
	var v int32
	f.glGetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s Shader) string {
	n := f.GetShaderi(s, INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var length int32
	f.glGetShaderInfoLog(uint32(s.V), int32(len(buf)), &length, &buf[0])
	return string(buf[:length])
}

func (f *Functions) GetShaderi(s Shader, pname Enum) int {
	var v int32
	f.glGetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetUniformLocation(p Program, name string) Uniform {
	return Uniform{int(f.glGetUniformLocation(uint32(p.V), name))}
}

func (f *Functions) LinkProgram(p Program) {
	f.glLinkProgram(uint32(p.V))
}

func (f *Functions) PixelStorei(pname Enum, param int) {
	f.glPixelStorei(uint32(pname), int32(param))
}

func (f *Functions) RenderbufferStorageMultisample(target Enum, samples int, internalformat Enum, width, height int) {
	f.glRenderbufferStorageMultisample(uint32(target), int32(samples), uint32(internalformat), int32(width), int32(height))
}

func (f *Functions) ShaderSource(s Shader, src string) {
	buf := append([]byte(src), 0)
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	f.glShaderSource(uint32(s.V), 1, &ptr, nil)
	runtime.KeepAlive(buf)
}

func (f *Functions) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum) {
	f.glTexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(typ), nil)
}

func (f *Functions) TexParameteri(target, pname Enum, param int) {
	f.glTexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) TexSubImage2D(target Enum, level, x, y, width, height int, format, typ Enum, data []byte) {
	var p *byte
	if len(data) > 0 {
		p = &data[0]
	}
	f.glTexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(typ), p)
}

func (f *Functions) Uniform1f(dst Uniform, v float32) {
	f.glUniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform1i(dst Uniform, v int) {
	f.glUniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform2f(dst Uniform, v0, v1 float32) {
	f.glUniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3f(dst Uniform, v0, v1, v2 float32) {
	f.glUniform3f(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4f(dst Uniform, v0, v1, v2, v3 float32) {
	f.glUniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) UniformMatrix4fv(dst Uniform, values []float32) {
	if len(values) != 16 {
		panic("gl: matrix must have 16 elements")
	}
	f.glUniformMatrix4fv(int32(dst.V), 1, false, &values[0])
}

func (f *Functions) UseProgram(p Program) {
	f.glUseProgram(uint32(p.V))
}

func (f *Functions) VertexAttribDivisor(a Attrib, divisor int) {
	f.glVertexAttribDivisor(uint32(a), uint32(divisor))
}

func (f *Functions) VertexAttribPointer(a Attrib, size int, typ Enum, normalized bool, stride, offset int) {
	f.glVertexAttribPointer(uint32(a), int32(size), uint32(typ), normalized, int32(stride), uintptr(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.glViewport(int32(x), int32(y), int32(width), int32(height))
}

var _ Context = (*Functions)(nil)
