package adapters

import (
	"context"
	"io"
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
)

// LibraryAdapter abstracts the underlying MCP library so the registry only
// deals with the internal mcp.Tool contract.
type LibraryAdapter interface {
	RegisterTool(tool mcp.Tool) error
	UnregisterTool(name string) error
	GetTool(name string) (mcp.Tool, error)
	ListTools() []string

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool

	// ServeStdio speaks MCP over in/out until ctx is done or in is closed.
	ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error
	// HTTPHandler serves MCP over streamable HTTP.
	HTTPHandler() http.Handler

	Health() AdapterHealth
}

// ServerInfo is announced to MCP clients during initialization.
type ServerInfo struct {
	Name    string
	Version string
}

// AdapterHealth represents the health status of the library adapter
type AdapterHealth struct {
	Status    string            `json:"status"`  // "healthy", "stopped"
	Library   string            `json:"library"` // e.g. "mark3labs"
	ToolCount int               `json:"tool_count"`
	Calls     uint64            `json:"calls"`
	Failures  uint64            `json:"failures"`
	LastCheck string            `json:"last_check"`
	Errors    []string          `json:"errors,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}
