// SPDX-License-Identifier: Unlicense OR MIT

package gel

import "github.com/glkit/gel/gl"

// An Attribute declares one vertex (or instance) attribute: the name
// it has in the shader and its component count in float32s. A count
// of 16 declares a 4x4 matrix, which occupies four consecutive
// attribute locations on the device.
type Attribute struct {
	Name string
	Size int
}

// Attributes is the ordered schema of one vertex or instance record.
type Attributes []Attribute

// Stride returns the record stride in float32s.
func (a Attributes) Stride() int {
	n := 0
	for _, attr := range a {
		n += attr.Size
	}
	return n
}

// validate checks every component count against the supported set.
func (a Attributes) validate() error {
	for _, attr := range a {
		if (attr.Size < 1 || attr.Size > 4) && attr.Size != 16 {
			return &SchemaError{Attr: attr.Name, Size: attr.Size}
		}
	}
	return nil
}

// An attribSlot is one device attribute derived from the schema:
// matrix attributes expand to four slots at consecutive locations,
// everything else maps to exactly one.
type attribSlot struct {
	name   string
	locOff int // added to the attribute's base location
	size   int // components, 1..4
	offset int // float32s from the start of the record
}

// vertexLayout derives the per-slot layout and the stride (in
// float32s) of a record described by attrs.
func vertexLayout(attrs Attributes) (stride int, slots []attribSlot, err error) {
	off := 0
	for _, a := range attrs {
		switch {
		case a.Size >= 1 && a.Size <= 4:
			slots = append(slots, attribSlot{name: a.Name, size: a.Size, offset: off})
			off += a.Size
		case a.Size == 16:
			for i := 0; i < 4; i++ {
				slots = append(slots, attribSlot{name: a.Name, locOff: i, size: 4, offset: off})
				off += 4
			}
		default:
			return 0, nil, &SchemaError{Attr: a.Name, Size: a.Size}
		}
	}
	return off, slots, nil
}

// applyLayout points the currently bound array buffer's contents at
// the program's attributes. With instanced set, every slot advances
// once per instance instead of once per vertex.
//
// Attributes the linker optimized away resolve to no location and
// are skipped.
func applyLayout(c *Context, prog gl.Program, attrs Attributes) error {
	return applyLayoutDivisor(c, prog, attrs, false)
}

func applyLayoutDivisor(c *Context, prog gl.Program, attrs Attributes, instanced bool) error {
	stride, slots, err := vertexLayout(attrs)
	if err != nil {
		return err
	}
	for _, s := range slots {
		base := c.gl.GetAttribLocation(prog, s.name)
		if base < 0 {
			continue
		}
		loc := gl.Attrib(base + s.locOff)
		c.gl.EnableVertexAttribArray(loc)
		c.gl.VertexAttribPointer(loc, s.size, gl.FLOAT, false, stride*4, s.offset*4)
		if instanced {
			c.gl.VertexAttribDivisor(loc, 1)
		}
	}
	return nil
}
