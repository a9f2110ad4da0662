// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd || darwin

// Command triangle renders a spinning triangle with gel and GLFW.
package main

import (
	"image"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glkit/gel"
	"github.com/glkit/gel/gl"
)

const vertSrc = `#version 300 es
uniform float angle;
in vec2 pos;
in vec3 color;
out vec3 vColor;
void main() {
	float c = cos(angle), s = sin(angle);
	gl_Position = vec4(mat2(c, s, -s, c) * pos, 0.0, 1.0);
	vColor = color;
}`

const fragSrc = `#version 300 es
precision mediump float;
in vec3 vColor;
out vec4 fragColor;
void main() {
	fragColor = vec4(vColor, 1.0);
}`

var schema = gel.Attributes{
	{Name: "pos", Size: 2},
	{Name: "color", Size: 3},
}

type vertex struct {
	x, y    float32
	r, g, b float32
}

func (v vertex) AppendTo(dst []float32) []float32 {
	return append(dst, v.x, v.y, v.r, v.g, v.b)
}

type uniforms struct {
	angle gel.Uniform
}

func (u *uniforms) Init(p *gel.Program) {
	u.angle = p.Uniform("angle")
}

func main() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	gel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)

	window, err := glfw.CreateWindow(800, 600, "gel triangle", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	window.MakeContextCurrent()

	fns, err := gl.NewFunctions()
	if err != nil {
		log.Fatal(err)
	}
	w, h := window.GetFramebufferSize()
	ctx, screen, err := gel.NewContext(fns, image.Pt(w, h))
	if err != nil {
		log.Fatal(err)
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		screen.SetSize(image.Pt(w, h))
	})

	var uni uniforms
	prog, err := gel.NewProgram(ctx, vertSrc, fragSrc, schema, &uni)
	if err != nil {
		log.Fatal(err)
	}

	builder, err := gel.NewMeshBuilder(schema, gel.Triangles)
	if err != nil {
		log.Fatal(err)
	}
	builder.Triangle(
		builder.Vert(vertex{0, 0.6, 1, 0, 0}),
		builder.Vert(vertex{-0.6, -0.4, 0, 1, 0}),
		builder.Vert(vertex{0.6, -0.4, 0, 0, 1}),
	)
	mesh := builder.Build(ctx, prog, gel.StaticDraw, gel.Draw2D)

	for !window.ShouldClose() {
		glfw.PollEvents()
		screen.Clear(gel.ClearColor(0.1, 0.1, 0.1, 1))
		mesh.Draw(screen, func() {
			uni.angle.SetFloat(float32(glfw.GetTime()))
		})
		window.SwapBuffers()
	}

	mesh.Release()
	prog.Release()
	ctx.Release()
}
