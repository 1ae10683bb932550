package tools

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
	"github.com/Kiran1689/storyblok-mcp-server/internal/registry"
)

// CircuitBreakerToolFactory guards Create of the wrapped factory.
type CircuitBreakerToolFactory struct {
	factory ToolFactory
	breaker *registry.CircuitBreakerFactory[mcp.Tool]
}

type CircuitBreakerConfig = registry.CircuitBreakerConfig

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return registry.DefaultCircuitBreakerConfig()
}

func NewCircuitBreakerToolFactory(factory ToolFactory, config CircuitBreakerConfig, log *logger.Logger) *CircuitBreakerToolFactory {
	return &CircuitBreakerToolFactory{
		factory: factory,
		breaker: registry.NewCircuitBreakerFactory[mcp.Tool](factory.Name(), config, log),
	}
}

func (cb *CircuitBreakerToolFactory) Name() string {
	return cb.factory.Name()
}

func (cb *CircuitBreakerToolFactory) Description() string {
	return cb.factory.Description()
}

func (cb *CircuitBreakerToolFactory) Version() string {
	return cb.factory.Version()
}

func (cb *CircuitBreakerToolFactory) Capabilities() []string {
	return cb.factory.Capabilities()
}

func (cb *CircuitBreakerToolFactory) Requirements() map[string]string {
	return cb.factory.Requirements()
}

func (cb *CircuitBreakerToolFactory) Validate(config ToolConfig) error {
	return cb.factory.Validate(config)
}

func (cb *CircuitBreakerToolFactory) Create(ctx context.Context, config ToolConfig) (mcp.Tool, error) {
	tool, err := cb.breaker.ExecuteWithContext(ctx, func(ctx context.Context) (mcp.Tool, error) {
		return cb.factory.Create(ctx, config)
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", cb.factory.Name(), err)
	}
	return tool, nil
}

func (cb *CircuitBreakerToolFactory) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreakerToolFactory) IsOpen() bool {
	return cb.breaker.IsOpen()
}

// Unwrap returns the guarded factory.
func (cb *CircuitBreakerToolFactory) Unwrap() ToolFactory {
	return cb.factory
}

func (cb *CircuitBreakerToolFactory) Status() string {
	return cb.breaker.Status()
}

func (cb *CircuitBreakerToolFactory) Metrics() registry.CircuitBreakerMetrics {
	return cb.breaker.Metrics()
}
