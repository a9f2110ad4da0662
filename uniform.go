// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"github.com/glkit/gel/f32"
	"github.com/glkit/gel/gl"
)

// A Uniform is one resolved uniform location of a Program. Setters
// write straight through to the device: uniform values may change on
// every draw, so they are never diffed. The owning program must be
// bound when a setter is called, which is always the case inside the
// uniform callback of Mesh.Draw.
type Uniform struct {
	ctx  *Context
	loc  gl.Uniform
	name string
}

// SetFloat sets a float uniform.
func (u Uniform) SetFloat(v float32) {
	u.ctx.gl.Uniform1f(u.loc, v)
}

// SetInt sets an int uniform.
func (u Uniform) SetInt(v int) {
	u.ctx.gl.Uniform1i(u.loc, v)
}

// SetVec2 sets a vec2 uniform.
func (u Uniform) SetVec2(v f32.Vec2) {
	u.ctx.gl.Uniform2f(u.loc, v.X, v.Y)
}

// SetVec3 sets a vec3 uniform.
func (u Uniform) SetVec3(v0, v1, v2 float32) {
	u.ctx.gl.Uniform3f(u.loc, v0, v1, v2)
}

// SetVec4 sets a vec4 uniform.
func (u Uniform) SetVec4(v0, v1, v2, v3 float32) {
	u.ctx.gl.Uniform4f(u.loc, v0, v1, v2, v3)
}

// SetMat4 sets a mat4 uniform from a column-major 4x4 matrix.
func (u Uniform) SetMat4(m [16]float32) {
	u.ctx.gl.UniformMatrix4fv(u.loc, m[:])
}

// SetTexture points a sampler uniform at the given texture unit and
// binds t to that unit (elided if the unit already holds t).
func (u Uniform) SetTexture(t *Texture2D, unit int) {
	u.ctx.gl.Uniform1i(u.loc, unit)
	t.bind(unit)
}
