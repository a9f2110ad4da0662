// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"unsafe"

	"github.com/glkit/gel/gl"
)

// A Vertex is one vertex or instance record. AppendTo appends the
// record's float32 components in the order declared by the schema it
// is used with.
type Vertex interface {
	AppendTo(dst []float32) []float32
}

// Primitive is the kind of primitive a mesh's indices describe.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

func (p Primitive) glMode() gl.Enum {
	switch p {
	case Triangles:
		return gl.TRIANGLES
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	default:
		panic("gel: unknown primitive")
	}
}

// MeshUsage is the expected update frequency of a mesh's data.
type MeshUsage int

const (
	StaticDraw MeshUsage = iota
	DynamicDraw
	StreamDraw
)

func (u MeshUsage) glEnum() gl.Enum {
	switch u {
	case StaticDraw:
		return gl.STATIC_DRAW
	case DynamicDraw:
		return gl.DYNAMIC_DRAW
	case StreamDraw:
		return gl.STREAM_DRAW
	default:
		panic("gel: unknown mesh usage")
	}
}

// maxVertices is the number of distinct vertices addressable by the
// 16-bit index type.
const maxVertices = 65535

// A MeshBuilder accumulates vertex and index data client side. It
// only stores data; to draw, build a Mesh from it.
type MeshBuilder struct {
	schema  Attributes
	stride  int
	prim    Primitive
	data    []float32
	indices []uint16
	next    uint16
}

// NewMeshBuilder creates a builder for the given vertex schema and
// primitive kind. The schema is validated here, at declaration time.
func NewMeshBuilder(schema Attributes, prim Primitive) (*MeshBuilder, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	return &MeshBuilder{
		schema: schema,
		stride: schema.Stride(),
		prim:   prim,
	}, nil
}

// Vert adds a vertex and returns its index. The vertex is not
// rendered unless its index is used in a primitive.
//
// Vert panics with ErrCapacity when the mesh already holds 65535
// vertices, and panics if v appends a number of components other
// than the schema's stride.
func (b *MeshBuilder) Vert(v Vertex) uint16 {
	if b.next >= maxVertices {
		panic(ErrCapacity)
	}
	index := b.next
	b.next++
	n := len(b.data)
	b.data = v.AppendTo(b.data)
	if len(b.data)-n != b.stride {
		panic("gel: vertex components do not match schema stride")
	}
	return index
}

// Triangle adds a triangle.
func (b *MeshBuilder) Triangle(a, bIdx, c uint16) {
	if b.prim != Triangles {
		panic("gel: Triangle on a non-triangle builder")
	}
	b.indices = append(b.indices, a, bIdx, c)
}

// Line adds a line segment.
func (b *MeshBuilder) Line(a, bIdx uint16) {
	if b.prim != Lines {
		panic("gel: Line on a non-line builder")
	}
	b.indices = append(b.indices, a, bIdx)
}

// Point adds a point.
func (b *MeshBuilder) Point(a uint16) {
	if b.prim != Points {
		panic("gel: Point on a non-point builder")
	}
	b.indices = append(b.indices, a)
}

// VertexCount returns the number of vertices added so far.
func (b *MeshBuilder) VertexCount() int {
	return int(b.next)
}

// Clear removes all data but keeps the allocated capacity, so a
// reused builder only reallocates if the new mesh is larger.
func (b *MeshBuilder) Clear() {
	b.data = b.data[:0]
	b.indices = b.indices[:0]
	b.next = 0
}

// Extend appends all vertices and primitives of other, re-basing
// other's indices. Both builders must share schema and primitive
// kind.
func (b *MeshBuilder) Extend(other *MeshBuilder) {
	if other.stride != b.stride || other.prim != b.prim {
		panic("gel: Extend across different mesh shapes")
	}
	if int(b.next)+int(other.next) > maxVertices {
		panic(ErrCapacity)
	}
	start := b.next
	b.next += other.next
	b.data = append(b.data, other.data...)
	for _, i := range other.indices {
		b.indices = append(b.indices, start+i)
	}
}

// Build creates a mesh from the builder's current contents.
func (b *MeshBuilder) Build(ctx *Context, prog *Program, usage MeshUsage, mode DrawMode) *Mesh {
	m := NewMesh(ctx, prog, b.prim, mode)
	m.BuildFrom(b, usage)
	return m
}

// A Mesh owns a vertex array with its vertex and index buffers, and
// shares the program it is drawn with. A mesh is empty until
// BuildFrom uploads at least one index; drawing an empty mesh is a
// no-op.
type Mesh struct {
	ctx        *Context
	prog       *Program
	vao        gl.VertexArray
	vbo        gl.Buffer
	ibo        gl.Buffer
	id         meshID
	prim       Primitive
	mode       DrawMode
	numIndices int
}

// NewMesh creates an empty mesh drawn with prog. Data must be
// written with BuildFrom before it renders anything.
func NewMesh(ctx *Context, prog *Program, prim Primitive, mode DrawMode) *Mesh {
	m := &Mesh{
		ctx:  ctx,
		prog: prog,
		vao:  ctx.gl.CreateVertexArray(),
		vbo:  ctx.gl.CreateBuffer(),
		ibo:  ctx.gl.CreateBuffer(),
		id:   meshID(nextID()),
		prim: prim,
		mode: mode,
	}
	prog.retain()
	m.bind()
	ctx.gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	ctx.gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	return m
}

// BuildFrom replaces the mesh's contents with the builder's. A
// builder with zero indices empties the mesh without touching the
// device buffers.
func (m *Mesh) BuildFrom(b *MeshBuilder, usage MeshUsage) {
	if b.prim != m.prim {
		panic("gel: builder primitive does not match mesh")
	}
	m.numIndices = len(b.indices)
	if m.numIndices == 0 {
		return
	}

	m.bind()
	// ARRAY_BUFFER binding is not vertex array state; rebind before
	// pointing the attributes at it.
	m.ctx.gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if err := applyLayout(m.ctx, m.prog.obj, b.schema); err != nil {
		// The schema was validated when the builder was created.
		panic(err)
	}
	m.ctx.gl.BufferData(gl.ARRAY_BUFFER, floatBytes(b.data), usage.glEnum())
	m.ctx.gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, uint16Bytes(b.indices), usage.glEnum())
}

func (m *Mesh) bind() {
	m.ctx.bindVertexArray(m.id, m.vao)
}

// Draw renders the mesh onto target. The uniforms callback runs with
// the program bound and is invoked on every draw; uniform values are
// never diffed. Drawing an empty mesh is a no-op.
func (m *Mesh) Draw(target Surface, uniforms func()) {
	if m.numIndices == 0 {
		return
	}
	m.bind()
	m.prog.bind()
	if uniforms != nil {
		uniforms()
	}
	target.bind()
	m.ctx.setDrawMode(m.mode)
	m.ctx.gl.DrawElements(m.prim.glMode(), m.numIndices, gl.UNSIGNED_SHORT, 0)
}

// DrawInstanced renders the mesh once per record in instances. The
// instance data is streamed into the context's shared instance
// buffer on every call; it is transient and never diffed. A no-op if
// the mesh or the instance list is nil or empty.
func (m *Mesh) DrawInstanced(target Surface, uniforms func(), instances *InstanceList) {
	if m.numIndices == 0 || instances == nil || instances.Len() == 0 {
		return
	}
	m.bind()
	m.prog.bind()
	if uniforms != nil {
		uniforms()
	}
	target.bind()
	m.ctx.setDrawMode(m.mode)

	// The instance attributes live on the same vertex array as the
	// mesh's own, sourced from the shared stream buffer with an
	// advance rate of one per instance.
	m.ctx.gl.BindBuffer(gl.ARRAY_BUFFER, m.ctx.instanceBuf)
	m.ctx.gl.BufferData(gl.ARRAY_BUFFER, floatBytes(instances.data), gl.STREAM_DRAW)
	if err := applyLayoutDivisor(m.ctx, m.prog.obj, instances.schema, true); err != nil {
		panic(err)
	}
	m.ctx.gl.DrawElementsInstanced(m.prim.glMode(), m.numIndices, gl.UNSIGNED_SHORT, 0, instances.Len())
}

// Release deletes the mesh's device objects and drops its program
// reference.
func (m *Mesh) Release() {
	m.ctx.forgetVertexArray(m.id)
	m.ctx.gl.DeleteVertexArray(m.vao)
	m.ctx.gl.DeleteBuffer(m.vbo)
	m.ctx.gl.DeleteBuffer(m.ibo)
	m.vao, m.vbo, m.ibo = gl.VertexArray{}, gl.Buffer{}, gl.Buffer{}
	m.prog.Release()
}

// An InstanceList accumulates per-instance records for
// DrawInstanced.
type InstanceList struct {
	schema Attributes
	stride int
	data   []float32
	count  int
}

// NewInstanceList creates a list for the given instance schema. The
// schema is validated here, at declaration time.
func NewInstanceList(schema Attributes) (*InstanceList, error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	return &InstanceList{
		schema: schema,
		stride: schema.Stride(),
	}, nil
}

// Add appends one instance record.
func (l *InstanceList) Add(v Vertex) {
	n := len(l.data)
	l.data = v.AppendTo(l.data)
	if len(l.data)-n != l.stride {
		panic("gel: instance components do not match schema stride")
	}
	l.count++
}

// Len returns the number of instances.
func (l *InstanceList) Len() int {
	return l.count
}

// Clear removes all instances but keeps the allocated capacity.
func (l *InstanceList) Clear() {
	l.data = l.data[:0]
	l.count = 0
}

// floatBytes views a float32 slice as the bytes handed to the device
// upload call. No copy is made; the data is tightly packed and
// 4-byte aligned by construction.
func floatBytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
}

func uint16Bytes(s []uint16) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*2)
}
