// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"errors"
	"fmt"
)

// ResourceKind identifies the kind of GPU resource an error refers to.
type ResourceKind int

const (
	KindContext ResourceKind = iota
	KindShader
	KindProgram
	KindTexture
	KindRenderbuffer
	KindFramebuffer
	KindMesh
)

func (k ResourceKind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindTexture:
		return "texture"
	case KindRenderbuffer:
		return "renderbuffer"
	case KindFramebuffer:
		return "framebuffer"
	case KindMesh:
		return "mesh"
	default:
		return fmt.Sprintf("ResourceKind(%d)", int(k))
	}
}

// Incompleteness reasons reported for framebuffers that fail their
// completeness check, plus generic reasons for the other kinds.
const (
	ReasonIncompleteAttachment        = "incomplete attachment"
	ReasonIncompleteMissingAttachment = "incomplete missing attachment"
	ReasonUnsupported                 = "unsupported"
	ReasonUnknown                     = "unknown"
	ReasonCompileFailed               = "compile failed"
	ReasonLinkFailed                  = "link failed"
)

// A CreationError reports a resource that could not be fully
// constructed. The resource is never usable: every handle acquired
// before the failure has already been released when the error is
// returned.
//
// Log carries the device's diagnostic text verbatim (shader compile
// or program link log) when the device produced one.
type CreationError struct {
	Kind   ResourceKind
	Reason string
	Log    string
}

func (e *CreationError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("gel: creating %s: %s: %s", e.Kind, e.Reason, e.Log)
	}
	return fmt.Sprintf("gel: creating %s: %s", e.Kind, e.Reason)
}

// A SchemaError reports a vertex or instance attribute whose
// component count is not 1-4 or 16.
type SchemaError struct {
	Attr string
	Size int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("gel: attribute %q has unsupported size %d (want 1-4 or 16)", e.Attr, e.Size)
}

// ErrCapacity is the panic value of MeshBuilder.Vert when a mesh
// would exceed the 16-bit index space (65535 vertices).
var ErrCapacity = errors.New("gel: mesh exceeds 65535 vertices")
