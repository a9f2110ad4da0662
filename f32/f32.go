// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 holds the float32 geometry value types used with gel:
two dimensional vectors and rectangles.

The coordinate space has the origin in the top left corner with the
axes extending right and down.
*/
package f32

import "github.com/chewxy/math32"

// A Vec2 is a two dimensional point or vector.
type Vec2 struct {
	X, Y float32
}

// A Rect contains the points (X, Y) where Min.X <= X <= Max.X,
// Min.Y <= Y <= Max.Y.
type Rect struct {
	Min, Max Vec2
}

// Add returns the vector v+v2.
func (v Vec2) Add(v2 Vec2) Vec2 {
	return Vec2{X: v.X + v2.X, Y: v.Y + v2.Y}
}

// Sub returns the vector v-v2.
func (v Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{X: v.X - v2.X, Y: v.Y - v2.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and v2.
func (v Vec2) Dot(v2 Vec2) float32 {
	return v.X*v2.X + v.Y*v2.Y
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector pointing in v's direction.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// AppendTo appends v's components to dst, for use from a vertex's
// AppendTo method.
func (v Vec2) AppendTo(dst []float32) []float32 {
	return append(dst, v.X, v.Y)
}

// Bounds returns the bounding box of a set of points.
func Bounds(points ...Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math32.Min(r.Min.X, p.X)
		r.Min.Y = math32.Min(r.Min.Y, p.Y)
		r.Max.X = math32.Max(r.Max.X, p.X)
		r.Max.Y = math32.Max(r.Max.Y, p.Y)
	}
	return r
}

// Size returns r's width and height.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Dx(), Y: r.Dy()}
}

// Dx returns r's width.
func (r Rect) Dx() float32 {
	return r.Max.X - r.Min.X
}

// Dy returns r's height.
func (r Rect) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether r contains the point p.
func (r Rect) Contains(p Vec2) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X &&
		r.Min.Y <= p.Y && p.Y <= r.Max.Y
}
