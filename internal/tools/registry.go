package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/adapters"
)

// DefaultToolRegistry implements ToolRegistry. Factories are wrapped in a
// circuit breaker at registration and instantiated by LoadTools.
type DefaultToolRegistry struct {
	factories map[string]ToolFactory
	tools     map[string]mcp.Tool
	toolInfo  map[string]ToolInfo
	logger    *logger.Logger
	validator *ToolValidator
	adapter   adapters.LibraryAdapter
	breaker   CircuitBreakerConfig
	mu        sync.RWMutex
	running   bool
	lastCheck time.Time
}

// RegistryOption configures a DefaultToolRegistry.
type RegistryOption func(*DefaultToolRegistry)

// WithAdapter publishes loaded tools through adapter.
func WithAdapter(adapter adapters.LibraryAdapter) RegistryOption {
	return func(r *DefaultToolRegistry) {
		r.adapter = adapter
	}
}

// WithCircuitBreaker overrides the breaker guarding tool creation.
func WithCircuitBreaker(cfg CircuitBreakerConfig) RegistryOption {
	return func(r *DefaultToolRegistry) {
		r.breaker = cfg
	}
}

// NewDefaultToolRegistry creates a new tool registry instance
func NewDefaultToolRegistry(log *logger.Logger, opts ...RegistryOption) *DefaultToolRegistry {
	if log == nil {
		log = logger.Discard()
	}
	r := &DefaultToolRegistry{
		factories: make(map[string]ToolFactory),
		tools:     make(map[string]mcp.Tool),
		toolInfo:  make(map[string]ToolInfo),
		logger:    log,
		validator: NewToolValidator(log),
		breaker:   DefaultCircuitBreakerConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register implements ToolRegistry.Register
func (r *DefaultToolRegistry) Register(name string, factory ToolFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug("registering tool factory",
		"name", name,
		"version", factory.Version(),
	)

	if err := r.validator.ValidateName(name); err != nil {
		r.logger.Error("tool name validation failed",
			"name", name,
			"error", err,
		)
		return fmt.Errorf("%w: %v", ErrInvalidToolName, err)
	}

	if _, exists := r.factories[name]; exists {
		r.logger.Error("tool already registered", "name", name)
		return fmt.Errorf("%w: %s", ErrToolAlreadyExists, name)
	}

	if err := r.validator.ValidateFactory(factory); err != nil {
		r.logger.Error("tool factory validation failed",
			"name", name,
			"error", err,
		)
		return fmt.Errorf("%w: %v", ErrToolValidation, err)
	}

	if _, guarded := factory.(*CircuitBreakerToolFactory); !guarded {
		factory = NewCircuitBreakerToolFactory(factory, r.breaker, r.logger)
	}
	r.factories[name] = factory

	r.toolInfo[name] = ToolInfo{
		Name:         factory.Name(),
		Description:  factory.Description(),
		Version:      factory.Version(),
		Capabilities: factory.Capabilities(),
		Requirements: factory.Requirements(),
		Status:       ToolStatusRegistered,
	}
	return nil
}

// Unregister implements ToolRegistry.Unregister
func (r *DefaultToolRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; !exists {
		r.logger.Warn("attempted to unregister non-existent tool", "name", name)
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if _, loaded := r.tools[name]; loaded && r.adapter != nil {
		if err := r.adapter.UnregisterTool(name); err != nil {
			// local removal still proceeds
			r.logger.Error("failed to unregister tool from adapter",
				"name", name,
				"error", err,
			)
		}
	}

	delete(r.factories, name)
	delete(r.tools, name)
	delete(r.toolInfo, name)

	r.logger.Info("tool unregistered", "name", name)
	return nil
}

// Get implements ToolRegistry.Get. The tool must have been loaded.
func (r *DefaultToolRegistry) Get(name string) (mcp.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if tool, exists := r.tools[name]; exists {
		return tool, nil
	}
	if _, exists := r.factories[name]; exists {
		return nil, fmt.Errorf("%w: %s is registered but not loaded", ErrToolNotFound, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
}

// GetFactory implements ToolRegistry.GetFactory
func (r *DefaultToolRegistry) GetFactory(name string) (ToolFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return factory, nil
}

// List implements ToolLister. Entries are sorted by name.
func (r *DefaultToolRegistry) List() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ToolInfo, 0, len(r.toolInfo))
	for _, info := range r.toolInfo {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// LoadTools instantiates every registered factory, validates the tool and
// hands it to the adapter.
func (r *DefaultToolRegistry) LoadTools(ctx context.Context) error {
	r.mu.RLock()
	factories := make(map[string]ToolFactory, len(r.factories))
	for name, factory := range r.factories {
		if _, loaded := r.tools[name]; loaded {
			continue
		}
		factories[name] = factory
	}
	r.mu.RUnlock()

	r.logger.Info("loading tools", "count", len(factories))

	var errors []string
	loaded := 0

	for name, factory := range factories {
		tool, err := r.instantiate(ctx, factory)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", name, err))
			r.logger.Error("tool load failed",
				"name", name,
				"error", err,
			)
			r.setStatus(name, ToolStatusError)
			continue
		}

		if r.adapter != nil {
			if err := r.adapter.RegisterTool(tool); err != nil {
				errors = append(errors, fmt.Sprintf("%s: %v", name, err))
				r.logger.Error("failed to register tool with adapter",
					"name", name,
					"error", err,
				)
				r.setStatus(name, ToolStatusError)
				continue
			}
		}

		r.mu.Lock()
		r.tools[name] = tool
		r.mu.Unlock()
		r.setStatus(name, ToolStatusLoaded)

		loaded++
		r.logger.Debug("tool loaded", "name", name)
	}

	r.logger.Info("tool loading completed",
		"total", len(factories),
		"loaded", loaded,
		"errors", len(errors),
	)

	if len(errors) > 0 {
		return fmt.Errorf("failed to load %d tools: %v", len(errors), errors)
	}
	return nil
}

func (r *DefaultToolRegistry) instantiate(ctx context.Context, factory ToolFactory) (mcp.Tool, error) {
	cfg := ToolConfig{Enabled: true, Config: map[string]interface{}{}}
	if err := r.validator.ValidateToolConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolValidation, err)
	}
	if err := factory.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolValidation, err)
	}
	tool, err := factory.Create(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolCreation, err)
	}
	if err := r.validator.ValidateTool(tool); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolValidation, err)
	}
	return tool, nil
}

// ValidateTools re-validates loaded tools and promotes them to active.
func (r *DefaultToolRegistry) ValidateTools(ctx context.Context) error {
	r.mu.RLock()
	tools := make(map[string]mcp.Tool, len(r.tools))
	for name, tool := range r.tools {
		tools[name] = tool
	}
	r.mu.RUnlock()

	var errors []string
	for name, tool := range tools {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.validator.ValidateTool(tool); err != nil {
			errors = append(errors, fmt.Sprintf("validation failed for tool %s: %v", name, err))
			r.logger.Error("tool validation failed",
				"name", name,
				"error", err,
			)
			r.setStatus(name, ToolStatusError)
			continue
		}
		r.setStatus(name, ToolStatusActive)
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed for %d tools: %v", len(errors), errors)
	}
	return nil
}

// TransitionStatus moves a tool through its lifecycle.
func (r *DefaultToolRegistry) TransitionStatus(name string, newStatus ToolStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.toolInfo[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if !IsValidTransition(info.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, info.Status, newStatus)
	}
	info.Status = newStatus
	r.toolInfo[name] = info
	return nil
}

// setStatus records a transition chosen by the registry itself. Invalid
// moves are logged and skipped.
func (r *DefaultToolRegistry) setStatus(name string, status ToolStatus) {
	if err := r.TransitionStatus(name, status); err != nil {
		r.logger.Warn("status transition rejected",
			"name", name,
			"status", status,
			"error", err,
		)
	}
}

// Start implements ToolRegistry.Start
func (r *DefaultToolRegistry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("registry is already running")
	}

	if r.adapter != nil {
		if err := r.adapter.Start(ctx); err != nil {
			r.logger.Error("failed to start adapter", "error", err)
			return fmt.Errorf("failed to start adapter: %w", err)
		}
	}

	r.running = true
	r.lastCheck = time.Now()

	r.logger.Info("tool registry started")
	return nil
}

// Stop implements ToolRegistry.Stop
func (r *DefaultToolRegistry) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}

	if r.adapter != nil {
		if err := r.adapter.Stop(ctx); err != nil {
			r.logger.Error("failed to stop adapter", "error", err)
		}
	}

	r.tools = make(map[string]mcp.Tool)
	for name, info := range r.toolInfo {
		info.Status = ToolStatusDisabled
		r.toolInfo[name] = info
	}

	r.running = false
	r.logger.Info("tool registry stopped")
	return nil
}

// Health implements ToolRegistry.Health
func (r *DefaultToolRegistry) Health() RegistryHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := RegistryHealth{
		Status:       "healthy",
		ToolCount:    len(r.toolInfo),
		LastCheck:    r.lastCheck.Format(time.RFC3339),
		Errors:       []string{},
		ToolStatuses: make(map[string]string, len(r.toolInfo)),
	}

	for name, info := range r.toolInfo {
		health.ToolStatuses[name] = string(info.Status)
		switch info.Status {
		case ToolStatusActive:
			health.ActiveTools++
		case ToolStatusError:
			health.ErrorTools++
		}
	}

	if r.adapter != nil {
		if adapterHealth := r.adapter.Health(); adapterHealth.Status != "healthy" {
			health.Status = "degraded"
			health.Errors = append(health.Errors,
				fmt.Sprintf("adapter status: %s", adapterHealth.Status))
		}
	}

	if !r.running {
		health.Status = "stopped"
	} else if health.ErrorTools > 0 {
		health.Status = "degraded"
	}

	if health.ErrorTools > 0 {
		health.Errors = append(health.Errors,
			fmt.Sprintf("%d tools in error state", health.ErrorTools))
	}

	return health
}
