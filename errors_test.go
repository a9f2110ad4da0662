// SPDX-License-Identifier: Unlicense OR MIT

package gel

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreationErrorMessage(t *testing.T) {
	err := &CreationError{Kind: KindFramebuffer, Reason: ReasonUnsupported}
	assert.Equal(t, "gel: creating framebuffer: unsupported", err.Error())

	err = &CreationError{Kind: KindShader, Reason: ReasonCompileFailed, Log: "0:1: error"}
	assert.Equal(t, "gel: creating shader: compile failed: 0:1: error", err.Error())
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Attr: "normal", Size: 5}
	assert.Equal(t, `gel: attribute "normal" has unsupported size 5 (want 1-4 or 16)`, err.Error())
}

func TestResourceKindString(t *testing.T) {
	assert.Equal(t, "context", KindContext.String())
	assert.Equal(t, "mesh", KindMesh.String())
	assert.Equal(t, "ResourceKind(42)", ResourceKind(42).String())
}

// recordHandler captures log records for assertions.
type recordHandler struct {
	records *[]slog.Record
}

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}
func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler      { return h }

func TestSetLogger(t *testing.T) {
	var records []slog.Record
	SetLogger(slog.New(recordHandler{records: &records}))
	defer SetLogger(nil)

	stub, ctx, _ := newTestContext(t)
	stub.compileFail = true
	stub.shaderLog = "bad shader"

	_, err := NewProgram(ctx, "broken", testFragSrc, Attributes{{Name: "pos", Size: 2}}, nil)
	require.Error(t, err)

	// The device's diagnostic is logged before the error returns.
	require.Len(t, records, 1)
	assert.Equal(t, slog.LevelError, records[0].Level)
	assert.Equal(t, "shader compile failed", records[0].Message)

	// nil restores the silent default.
	SetLogger(nil)
	records = records[:0]
	_, err = NewProgram(ctx, "broken", testFragSrc, Attributes{{Name: "pos", Size: 2}}, nil)
	require.Error(t, err)
	assert.Empty(t, records)
}
