// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"strings"

	"github.com/glkit/gel/gl"
)

// A Program is a compiled and linked shader pair together with its
// vertex schema. Programs are shared: every Mesh built against a
// Program holds a reference, and the device program is deleted when
// the last holder releases it. Relinking is expensive, so meshes
// never duplicate a program.
type Program struct {
	ctx   *Context
	obj   gl.Program
	id    programID
	attrs Attributes
	refs  int
}

// A UniformSet resolves and holds the uniform values of a program.
// Init is called once during NewProgram, with the program bound;
// implementations look up their uniforms with Program.Uniform.
type UniformSet interface {
	Init(p *Program)
}

// NewProgram compiles both shader sources, links them and resolves
// uniforms. Schema declares the vertex record all meshes drawn with
// this program use.
//
// Compile and link failures are content errors: the device's
// diagnostic log is logged verbatim and returned inside the
// *CreationError. No partially built object is ever returned.
func NewProgram(ctx *Context, vertSrc, fragSrc string, schema Attributes, uniforms UniformSet) (*Program, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	vs, err := compileShader(ctx, gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return nil, err
	}
	// Shaders are only needed until link; the device keeps them
	// alive while the program exists.
	defer ctx.gl.DeleteShader(vs)
	fs, err := compileShader(ctx, gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		return nil, err
	}
	defer ctx.gl.DeleteShader(fs)

	obj := ctx.gl.CreateProgram()
	if !obj.Valid() {
		return nil, &CreationError{Kind: KindProgram, Reason: "glCreateProgram failed"}
	}
	ctx.gl.AttachShader(obj, vs)
	ctx.gl.AttachShader(obj, fs)
	ctx.gl.LinkProgram(obj)
	if ctx.gl.GetProgrami(obj, gl.LINK_STATUS) == gl.FALSE {
		infoLog := strings.TrimSpace(ctx.gl.GetProgramInfoLog(obj))
		ctx.gl.DeleteProgram(obj)
		logger().Error("program link failed", "log", infoLog)
		return nil, &CreationError{Kind: KindProgram, Reason: ReasonLinkFailed, Log: infoLog}
	}

	p := &Program{
		ctx:   ctx,
		obj:   obj,
		id:    programID(nextID()),
		attrs: schema,
		refs:  1,
	}
	if uniforms != nil {
		p.bind()
		uniforms.Init(p)
	}
	return p, nil
}

func compileShader(ctx *Context, typ gl.Enum, src string) (gl.Shader, error) {
	sh := ctx.gl.CreateShader(typ)
	if !sh.Valid() {
		return gl.Shader{}, &CreationError{Kind: KindShader, Reason: "glCreateShader failed"}
	}
	ctx.gl.ShaderSource(sh, src)
	ctx.gl.CompileShader(sh)
	if ctx.gl.GetShaderi(sh, gl.COMPILE_STATUS) == gl.FALSE {
		infoLog := strings.TrimSpace(ctx.gl.GetShaderInfoLog(sh))
		ctx.gl.DeleteShader(sh)
		logger().Error("shader compile failed", "log", infoLog)
		return gl.Shader{}, &CreationError{Kind: KindShader, Reason: ReasonCompileFailed, Log: infoLog}
	}
	return sh, nil
}

// Uniform looks up a uniform by name. A missing uniform is a
// mismatch between shader source and UniformSet and panics.
func (p *Program) Uniform(name string) Uniform {
	loc := p.ctx.gl.GetUniformLocation(p.obj, name)
	if !loc.Valid() {
		panic("gel: uniform " + name + " not found")
	}
	return Uniform{ctx: p.ctx, loc: loc, name: name}
}

func (p *Program) bind() {
	p.ctx.useProgram(p.id, p.obj)
}

func (p *Program) retain() {
	if p.refs == 0 {
		panic("gel: retain of released program")
	}
	p.refs++
}

// Release drops the caller's reference. The device program is
// deleted when the last reference (the creator's, or any mesh's) is
// gone.
func (p *Program) Release() {
	if p.refs == 0 {
		panic("gel: program already released")
	}
	p.refs--
	if p.refs > 0 {
		return
	}
	p.ctx.forgetProgram(p.id)
	p.ctx.gl.DeleteProgram(p.obj)
	p.obj = gl.Program{}
}
