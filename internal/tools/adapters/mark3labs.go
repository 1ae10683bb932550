package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	mcpintf "github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
)

// Mark3LabsAdapter publishes internal tools on a mark3labs/mcp-go server.
type Mark3LabsAdapter struct {
	logger    *logger.Logger
	info      ServerInfo
	mcpServer *server.MCPServer
	tools     map[string]mcpintf.Tool
	mu        sync.RWMutex
	running   bool
	lastCheck time.Time

	calls    atomic.Uint64
	failures atomic.Uint64
}

func NewMark3LabsAdapter(info ServerInfo, log *logger.Logger) *Mark3LabsAdapter {
	if log == nil {
		log = logger.Discard()
	}
	return &Mark3LabsAdapter{
		logger: log,
		info:   info,
		mcpServer: server.NewMCPServer(
			info.Name,
			info.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		tools:     make(map[string]mcpintf.Tool),
		lastCheck: time.Now(),
	}
}

// Server exposes the underlying MCP server.
func (a *Mark3LabsAdapter) Server() *server.MCPServer {
	return a.mcpServer
}

func (a *Mark3LabsAdapter) RegisterTool(tool mcpintf.Tool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.tools[tool.Name()]; exists {
		return fmt.Errorf("tool '%s' already exists", tool.Name())
	}
	a.tools[tool.Name()] = tool

	a.mcpServer.AddTool(
		mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), tool.Parameters()),
		a.handlerFor(tool),
	)
	return nil
}

func (a *Mark3LabsAdapter) UnregisterTool(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.tools[name]; !exists {
		return fmt.Errorf("tool '%s' not found", name)
	}
	delete(a.tools, name)
	a.mcpServer.DeleteTools(name)
	return nil
}

func (a *Mark3LabsAdapter) GetTool(name string) (mcpintf.Tool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	tool, exists := a.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool '%s' not found", name)
	}
	return tool, nil
}

func (a *Mark3LabsAdapter) ListTools() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.tools))
	for name := range a.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Mark3LabsAdapter) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return fmt.Errorf("mark3labs adapter is already running")
	}
	a.running = true
	a.lastCheck = time.Now()
	a.logger.Debug("mark3labs adapter started", "tools", len(a.tools))
	return nil
}

func (a *Mark3LabsAdapter) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.running = false
	return nil
}

func (a *Mark3LabsAdapter) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

// ServeStdio blocks serving JSON-RPC over in/out.
func (a *Mark3LabsAdapter) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(a.mcpServer)
	stdio.SetErrorLogger(a.logger.StdLogger(slog.LevelError))
	a.logger.Info("serving MCP over stdio", "tools", len(a.ListTools()))
	return stdio.Listen(ctx, in, out)
}

func (a *Mark3LabsAdapter) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(a.mcpServer)
}

func (a *Mark3LabsAdapter) Health() AdapterHealth {
	a.mu.RLock()
	defer a.mu.RUnlock()

	status := "healthy"
	if !a.running {
		status = "stopped"
	}

	return AdapterHealth{
		Status:    status,
		Library:   "mark3labs",
		ToolCount: len(a.tools),
		Calls:     a.calls.Load(),
		Failures:  a.failures.Load(),
		LastCheck: a.lastCheck.Format(time.RFC3339),
		Details: map[string]string{
			"implementation": "mark3labs/mcp-go",
			"server":         a.info.Name + "/" + a.info.Version,
		},
	}
}

func (a *Mark3LabsAdapter) handlerFor(tool mcpintf.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invocationID := uuid.NewString()
		start := time.Now()
		a.calls.Add(1)

		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			a.failures.Add(1)
			return mcp.NewToolResultError(fmt.Sprintf("Error: invalid arguments: %v", err)), nil
		}

		result, err := tool.Handler().Handle(ctx, args)
		if err != nil {
			a.failures.Add(1)
			a.logger.Error("tool invocation failed",
				"tool", tool.Name(),
				"invocation_id", invocationID,
				"duration", time.Since(start),
				"error", err,
			)
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		if result.IsError() {
			a.failures.Add(1)
			a.logger.Warn("tool returned error",
				"tool", tool.Name(),
				"invocation_id", invocationID,
				"duration", time.Since(start),
				"error_kind", result.ErrorKind(),
			)
		} else {
			a.logger.Debug("tool invoked",
				"tool", tool.Name(),
				"invocation_id", invocationID,
				"duration", time.Since(start),
			)
		}

		return toCallToolResult(result), nil
	}
}

func toCallToolResult(result mcpintf.ToolResult) *mcp.CallToolResult {
	contents := result.GetContent()
	out := &mcp.CallToolResult{
		Content: make([]mcp.Content, 0, len(contents)),
		IsError: result.IsError(),
	}
	for _, c := range contents {
		out.Content = append(out.Content, mcp.NewTextContent(c.GetText()))
	}
	return out
}
