// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gel is a typed layer over a stateful, handle-based OpenGL (ES)
device. Resources (programs, textures, framebuffers, meshes) are Go
objects with explicit Release methods, and every binding goes through a
cache on Context that skips device calls the current state makes
redundant.

The host owns the device: it creates a GL context by whatever platform
means it likes, hands gel a gl.Context (gl.NewFunctions loads the
system library for hosts without their own bindings), and reports
backbuffer resizes through ScreenSurface.SetSize.

A Context and everything created from it must be used from a single
goroutine, the one holding the current GL context.
*/
package gel
