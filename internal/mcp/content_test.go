package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextContent(t *testing.T) {
	c := NewTextContent("hello")
	assert.Equal(t, "text", c.Type())
	assert.Equal(t, "hello", c.GetText())
}

func TestNewToolResult(t *testing.T) {
	r := NewToolResult(NewTextContent("a"), NewTextContent("b"))
	assert.False(t, r.IsError())
	assert.Len(t, r.GetContent(), 2)
	assert.Equal(t, "a\nb", Text(r))
}

func TestNewToolError_Envelope(t *testing.T) {
	r := NewToolError("400 Bad Request: nope")
	require.True(t, r.IsError())

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isError":true,"content":[{"type":"text","text":"400 Bad Request: nope"}]}`, string(raw))
}

func TestSuccessEnvelope(t *testing.T) {
	raw, err := json.Marshal(NewToolResult(NewTextContent("Tag deleted successfully")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"isError":false,"content":[{"type":"text","text":"Tag deleted successfully"}]}`, string(raw))
}

func TestNewToolErrorOfKind(t *testing.T) {
	r := NewToolErrorOfKind("validation", "Validation error: ids: must not be empty")
	assert.Equal(t, "validation", r.ErrorKind())
	assert.Empty(t, NewToolResult(NewTextContent("ok")).ErrorKind())

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "validation\"")
}
