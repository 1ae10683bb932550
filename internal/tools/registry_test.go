package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/adapters"
)

// Mock implementations for testing

type mockTool struct {
	name        string
	description string
	parameters  json.RawMessage
	handler     mcp.ToolHandler
}

func (m *mockTool) Name() string                { return m.name }
func (m *mockTool) Description() string         { return m.description }
func (m *mockTool) Parameters() json.RawMessage { return m.parameters }
func (m *mockTool) Handler() mcp.ToolHandler    { return m.handler }

type mockToolHandler struct{}

func (m *mockToolHandler) Handle(ctx context.Context, params json.RawMessage) (mcp.ToolResult, error) {
	return mcp.NewToolResult(mcp.NewTextContent("ok")), nil
}

type mockToolFactory struct {
	name         string
	description  string
	version      string
	capabilities []string
	requirements map[string]string
	createError  error
}

func (m *mockToolFactory) Name() string                     { return m.name }
func (m *mockToolFactory) Description() string              { return m.description }
func (m *mockToolFactory) Version() string                  { return m.version }
func (m *mockToolFactory) Capabilities() []string           { return m.capabilities }
func (m *mockToolFactory) Requirements() map[string]string  { return m.requirements }
func (m *mockToolFactory) Validate(config ToolConfig) error { return nil }

func (m *mockToolFactory) Create(ctx context.Context, config ToolConfig) (mcp.Tool, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	return &mockTool{
		name:        m.name,
		description: m.description,
		parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
		handler:     &mockToolHandler{},
	}, nil
}

type mockAdapter struct {
	mu           sync.Mutex
	registered   []string
	unregistered []string
	registerErr  error
	running      bool
}

func (m *mockAdapter) RegisterTool(tool mcp.Tool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = append(m.registered, tool.Name())
	return nil
}

func (m *mockAdapter) UnregisterTool(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregistered = append(m.unregistered, name)
	return nil
}

func (m *mockAdapter) GetTool(name string) (mcp.Tool, error) { return nil, errors.New("unused") }
func (m *mockAdapter) ListTools() []string                   { return m.registered }
func (m *mockAdapter) Start(ctx context.Context) error       { m.running = true; return nil }
func (m *mockAdapter) Stop(ctx context.Context) error        { m.running = false; return nil }
func (m *mockAdapter) IsRunning() bool                       { return m.running }
func (m *mockAdapter) HTTPHandler() http.Handler             { return http.NotFoundHandler() }

func (m *mockAdapter) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return nil
}

func (m *mockAdapter) Health() adapters.AdapterHealth {
	if !m.running {
		return adapters.AdapterHealth{Status: "stopped"}
	}
	return adapters.AdapterHealth{Status: "healthy"}
}

func createTestRegistry(opts ...RegistryOption) *DefaultToolRegistry {
	return NewDefaultToolRegistry(logger.Discard(), opts...)
}

func createTestFactory(name string) *mockToolFactory {
	return &mockToolFactory{
		name:         name,
		description:  "Test tool " + name,
		version:      "1.0.0",
		capabilities: []string{"test"},
		requirements: map[string]string{"runtime": "go"},
	}
}

func TestDefaultToolRegistry_Register(t *testing.T) {
	registry := createTestRegistry()

	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	info := registry.List()
	if len(info) != 1 {
		t.Fatalf("Expected 1 tool, got %d", len(info))
	}
	if info[0].Name != "test_tool" {
		t.Errorf("Expected tool name 'test_tool', got '%s'", info[0].Name)
	}
	if info[0].Status != ToolStatusRegistered {
		t.Errorf("Expected status '%s', got '%s'", ToolStatusRegistered, info[0].Status)
	}

	factory, err := registry.GetFactory("test_tool")
	if err != nil {
		t.Fatalf("Expected factory, got: %v", err)
	}
	if _, ok := factory.(*CircuitBreakerToolFactory); !ok {
		t.Errorf("Expected factory to be wrapped in a circuit breaker, got %T", factory)
	}
}

func TestDefaultToolRegistry_RegisterDuplicate(t *testing.T) {
	registry := createTestRegistry()
	factory := createTestFactory("test_tool")

	if err := registry.Register("test_tool", factory); err != nil {
		t.Fatalf("Expected no error on first registration, got: %v", err)
	}

	err := registry.Register("test_tool", factory)
	if !errors.Is(err, ErrToolAlreadyExists) {
		t.Fatalf("Expected ErrToolAlreadyExists, got: %v", err)
	}
}

func TestDefaultToolRegistry_RegisterInvalidName(t *testing.T) {
	registry := createTestRegistry()

	for _, name := range []string{"", "Fetch-Stories", "health", "1tool"} {
		err := registry.Register(name, createTestFactory(name))
		if !errors.Is(err, ErrInvalidToolName) {
			t.Errorf("Register(%q): expected ErrInvalidToolName, got %v", name, err)
		}
	}
}

func TestDefaultToolRegistry_RegisterInvalidFactory(t *testing.T) {
	registry := createTestRegistry()
	factory := createTestFactory("test_tool")
	factory.version = ""

	err := registry.Register("test_tool", factory)
	if !errors.Is(err, ErrToolValidation) {
		t.Fatalf("Expected ErrToolValidation, got: %v", err)
	}
}

func TestDefaultToolRegistry_Unregister(t *testing.T) {
	adapter := &mockAdapter{}
	registry := createTestRegistry(WithAdapter(adapter))
	ctx := context.Background()

	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := registry.LoadTools(ctx); err != nil {
		t.Fatalf("Expected no error loading tools, got: %v", err)
	}

	if err := registry.Unregister("test_tool"); err != nil {
		t.Fatalf("Expected no error unregistering, got: %v", err)
	}
	if len(registry.List()) != 0 {
		t.Errorf("Expected empty registry after unregister")
	}
	if len(adapter.unregistered) != 1 || adapter.unregistered[0] != "test_tool" {
		t.Errorf("Expected adapter to unregister test_tool, got %v", adapter.unregistered)
	}
}

func TestDefaultToolRegistry_UnregisterNonExistent(t *testing.T) {
	registry := createTestRegistry()

	err := registry.Unregister("missing_tool")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Expected ErrToolNotFound, got: %v", err)
	}
}

func TestDefaultToolRegistry_GetBeforeAndAfterLoad(t *testing.T) {
	registry := createTestRegistry()
	ctx := context.Background()

	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := registry.Get("test_tool"); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Expected ErrToolNotFound before load, got: %v", err)
	}

	if err := registry.LoadTools(ctx); err != nil {
		t.Fatalf("Expected no error loading tools, got: %v", err)
	}

	tool, err := registry.Get("test_tool")
	if err != nil {
		t.Fatalf("Expected tool after load, got: %v", err)
	}
	if tool.Name() != "test_tool" {
		t.Errorf("Expected tool name 'test_tool', got '%s'", tool.Name())
	}
}

func TestDefaultToolRegistry_ListSorted(t *testing.T) {
	registry := createTestRegistry()

	for _, name := range []string{"update_story", "fetch_assets", "ping"} {
		if err := registry.Register(name, createTestFactory(name)); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	info := registry.List()
	want := []string{"fetch_assets", "ping", "update_story"}
	for i, name := range want {
		if info[i].Name != name {
			t.Errorf("List()[%d] = %s, want %s", i, info[i].Name, name)
		}
	}
}

func TestDefaultToolRegistry_LoadTools(t *testing.T) {
	adapter := &mockAdapter{}
	registry := createTestRegistry(WithAdapter(adapter))
	ctx := context.Background()

	good := createTestFactory("good_tool")
	bad := createTestFactory("bad_tool")
	bad.createError = errors.New("boom")

	for _, f := range []*mockToolFactory{good, bad} {
		if err := registry.Register(f.name, f); err != nil {
			t.Fatalf("Register(%s): %v", f.name, err)
		}
	}

	err := registry.LoadTools(ctx)
	if err == nil {
		t.Fatal("Expected an error for the failing factory")
	}

	statuses := registry.Health().ToolStatuses
	if statuses["good_tool"] != string(ToolStatusLoaded) {
		t.Errorf("Expected good_tool loaded, got %s", statuses["good_tool"])
	}
	if statuses["bad_tool"] != string(ToolStatusError) {
		t.Errorf("Expected bad_tool error, got %s", statuses["bad_tool"])
	}
	if len(adapter.registered) != 1 || adapter.registered[0] != "good_tool" {
		t.Errorf("Expected only good_tool published, got %v", adapter.registered)
	}
}

func TestDefaultToolRegistry_LoadToolsAdapterFailure(t *testing.T) {
	adapter := &mockAdapter{registerErr: errors.New("duplicate")}
	registry := createTestRegistry(WithAdapter(adapter))

	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.LoadTools(context.Background()); err == nil {
		t.Fatal("Expected error when adapter rejects the tool")
	}
	if _, err := registry.Get("test_tool"); err == nil {
		t.Error("Expected tool to stay unloaded")
	}
}

func TestDefaultToolRegistry_TransitionStatus(t *testing.T) {
	registry := createTestRegistry()
	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := registry.TransitionStatus("test_tool", ToolStatusActive); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected registered -> active to be rejected, got %v", err)
	}
	if err := registry.TransitionStatus("test_tool", ToolStatusDisabled); err != nil {
		t.Errorf("Expected registered -> disabled to succeed, got %v", err)
	}
	if err := registry.TransitionStatus("missing", ToolStatusDisabled); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Expected ErrToolNotFound, got %v", err)
	}
}

func TestDefaultToolRegistry_StartStop(t *testing.T) {
	adapter := &mockAdapter{}
	registry := createTestRegistry(WithAdapter(adapter))
	ctx := context.Background()

	if err := registry.Start(ctx); err != nil {
		t.Fatalf("Expected no error starting registry, got: %v", err)
	}
	if err := registry.Start(ctx); err == nil {
		t.Error("Expected error starting a running registry")
	}
	if !adapter.running {
		t.Error("Expected adapter to be started")
	}

	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.LoadTools(ctx); err != nil {
		t.Fatalf("LoadTools: %v", err)
	}

	if err := registry.Stop(ctx); err != nil {
		t.Fatalf("Expected no error stopping registry, got: %v", err)
	}
	if registry.List()[0].Status != ToolStatusDisabled {
		t.Errorf("Expected disabled status after stop, got %s", registry.List()[0].Status)
	}
}

func TestDefaultToolRegistry_ConcurrentAccess(t *testing.T) {
	registry := createTestRegistry()
	ctx := context.Background()

	if err := registry.Start(ctx); err != nil {
		t.Fatalf("Expected no error starting registry, got: %v", err)
	}

	concurrency := 50
	var wg sync.WaitGroup
	errs := make(chan error, concurrency)

	wg.Add(concurrency * 2)
	for i := 0; i < concurrency; i++ {
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("tool_%d", i)
			if err := registry.Register(name, createTestFactory(name)); err != nil {
				errs <- err
			}
		}(i)
		go func() {
			defer wg.Done()
			registry.List()
			registry.Health()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent operation error: %v", err)
	}

	if err := registry.LoadTools(ctx); err != nil {
		t.Fatalf("LoadTools: %v", err)
	}
	if n := len(registry.List()); n != concurrency {
		t.Errorf("Expected %d tools, got %d", concurrency, n)
	}
}

func TestDefaultToolRegistry_Health(t *testing.T) {
	registry := createTestRegistry(WithAdapter(&mockAdapter{}))
	ctx := context.Background()

	if health := registry.Health(); health.Status != "stopped" {
		t.Errorf("Expected stopped status, got '%s'", health.Status)
	}

	if err := registry.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := registry.Register("test_tool", createTestFactory("test_tool")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.LoadTools(ctx); err != nil {
		t.Fatalf("LoadTools: %v", err)
	}
	if err := registry.ValidateTools(ctx); err != nil {
		t.Fatalf("ValidateTools: %v", err)
	}

	health := registry.Health()
	if health.Status != "healthy" {
		t.Errorf("Expected healthy status, got '%s' (%v)", health.Status, health.Errors)
	}
	if health.ToolCount != 1 || health.ActiveTools != 1 || health.ErrorTools != 0 {
		t.Errorf("Unexpected counts: %+v", health)
	}
	if status := health.ToolStatuses["test_tool"]; status != string(ToolStatusActive) {
		t.Errorf("Expected active status for test_tool, got '%s'", status)
	}
}
