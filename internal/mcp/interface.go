// Package mcp defines the library-neutral tool contract. Adapters translate
// it to a concrete MCP implementation.
package mcp

import (
	"context"
	"encoding/json"
)

type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage // JSON schema
	Handler() ToolHandler
}

// ToolHandler runs one invocation. Implementations report failures through
// an error ToolResult; a non-nil error is reserved for broken plumbing.
type ToolHandler interface {
	Handle(ctx context.Context, params json.RawMessage) (ToolResult, error)
}

// ToolResult is the invocation envelope.
type ToolResult interface {
	IsError() bool
	GetContent() []Content
	// ErrorKind is empty on success.
	ErrorKind() string
}

type Content interface {
	Type() string
	GetText() string
}

// Implementation contains server metadata
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
