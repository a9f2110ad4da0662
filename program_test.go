// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVertSrc = `#version 300 es
in vec2 pos;
void main() { gl_Position = vec4(pos, 0.0, 1.0); }`
	testFragSrc = `#version 300 es
precision mediump float;
out vec4 color;
void main() { color = vec4(1.0); }`
)

func buildProgram(t *testing.T, ctx *Context, schema Attributes) *Program {
	t.Helper()
	p, err := NewProgram(ctx, testVertSrc, testFragSrc, schema, nil)
	require.NoError(t, err)
	return p
}

func TestNewProgram(t *testing.T) {
	stub, ctx, _ := newTestContext(t)

	p := buildProgram(t, ctx, Attributes{{Name: "pos", Size: 2}})
	assert.Equal(t, 2, stub.calls["CompileShader"])
	assert.Equal(t, 1, stub.calls["LinkProgram"])
	// Shaders are deleted once the program is linked.
	assert.Equal(t, 2, stub.calls["DeleteShader"])
	assert.Equal(t, 0, stub.calls["DeleteProgram"])

	p.Release()
	assert.Equal(t, 1, stub.calls["DeleteProgram"])
}

func TestNewProgramBadSchema(t *testing.T) {
	stub, ctx, _ := newTestContext(t)

	_, err := NewProgram(ctx, testVertSrc, testFragSrc, Attributes{{Name: "pos", Size: 7}}, nil)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	// Rejected before any device work.
	assert.Equal(t, 0, stub.calls["CreateShader"])
}

func TestNewProgramCompileFailure(t *testing.T) {
	stub, ctx, _ := newTestContext(t)
	stub.compileFail = true
	stub.shaderLog = "0:3: syntax error\n"

	_, err := NewProgram(ctx, "broken", testFragSrc, Attributes{{Name: "pos", Size: 2}}, nil)
	var cerr *CreationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindShader, cerr.Kind)
	assert.Equal(t, ReasonCompileFailed, cerr.Reason)
	assert.Equal(t, "0:3: syntax error", cerr.Log)
	assert.Equal(t, 1, stub.calls["DeleteShader"])
	assert.Equal(t, 0, stub.calls["CreateProgram"])
}

func TestNewProgramLinkFailure(t *testing.T) {
	stub, ctx, _ := newTestContext(t)
	stub.linkFail = true
	stub.programLog = "varying mismatch"

	_, err := NewProgram(ctx, testVertSrc, testFragSrc, Attributes{{Name: "pos", Size: 2}}, nil)
	var cerr *CreationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindProgram, cerr.Kind)
	assert.Equal(t, ReasonLinkFailed, cerr.Reason)
	assert.Equal(t, "varying mismatch", cerr.Log)
	assert.Equal(t, 1, stub.calls["DeleteProgram"])
	assert.Equal(t, 2, stub.calls["DeleteShader"])
}

type testUniforms struct {
	color Uniform
	init  int
}

func (u *testUniforms) Init(p *Program) {
	u.color = p.Uniform("color")
	u.init++
}

func TestNewProgramResolvesUniforms(t *testing.T) {
	stub, ctx, _ := newTestContext(t)

	var uni testUniforms
	p, err := NewProgram(ctx, testVertSrc, testFragSrc, Attributes{{Name: "pos", Size: 2}}, &uni)
	require.NoError(t, err)
	assert.Equal(t, 1, uni.init)
	// Init runs with the program bound.
	assert.Equal(t, 1, stub.calls["UseProgram"])

	uni.color.SetVec4(1, 0, 0, 1)
	assert.Equal(t, 1, stub.calls["Uniform4f"])

	p.Release()
}

func TestUniformMissingPanics(t *testing.T) {
	stub, ctx, _ := newTestContext(t)
	stub.noUniforms["gone"] = true

	p := buildProgram(t, ctx, Attributes{{Name: "pos", Size: 2}})
	assert.Panics(t, func() { p.Uniform("gone") })
}

func TestProgramBindElision(t *testing.T) {
	stub, ctx, _ := newTestContext(t)

	a := buildProgram(t, ctx, Attributes{{Name: "pos", Size: 2}})
	b := buildProgram(t, ctx, Attributes{{Name: "pos", Size: 2}})
	stub.reset()

	a.bind()
	a.bind()
	require.Equal(t, 1, stub.calls["UseProgram"])
	b.bind()
	a.bind()
	require.Equal(t, 3, stub.calls["UseProgram"])
}

func TestProgramRefcount(t *testing.T) {
	stub, ctx, _ := newTestContext(t)

	p := buildProgram(t, ctx, Attributes{{Name: "pos", Size: 2}})
	p.retain()
	p.retain()

	p.Release()
	p.Release()
	assert.Equal(t, 0, stub.calls["DeleteProgram"])
	p.Release()
	assert.Equal(t, 1, stub.calls["DeleteProgram"])

	assert.Panics(t, func() { p.Release() })
	assert.Panics(t, func() { p.retain() })
}
