package tools

import (
	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/adapters"
)

// RegistryFactory creates tool registry instances with a library adapter
type RegistryFactory interface {
	CreateRegistry() (*DefaultToolRegistry, adapters.LibraryAdapter, error)
	SupportedLibraries() []string
	DefaultLibrary() string
}

// DefaultRegistryFactory builds registries backed by the mark3labs adapter.
type DefaultRegistryFactory struct {
	server adapters.ServerInfo
	logger *logger.Logger
}

// NewRegistryFactory creates a new registry factory instance
func NewRegistryFactory(info adapters.ServerInfo, log *logger.Logger) *DefaultRegistryFactory {
	return &DefaultRegistryFactory{server: info, logger: log}
}

// CreateRegistry returns the registry and the adapter that serves its tools.
func (f *DefaultRegistryFactory) CreateRegistry() (*DefaultToolRegistry, adapters.LibraryAdapter, error) {
	adapter := adapters.NewMark3LabsAdapter(f.server, f.logger)
	reg := NewDefaultToolRegistry(f.logger, WithAdapter(adapter))
	f.logger.Debug("tool registry created", "library", f.DefaultLibrary())
	return reg, adapter, nil
}

func (f *DefaultRegistryFactory) SupportedLibraries() []string {
	return []string{"mark3labs"}
}

func (f *DefaultRegistryFactory) DefaultLibrary() string {
	return "mark3labs"
}
