package main

import (
	"context"
	"fmt"

	"github.com/Kiran1689/storyblok-mcp-server/internal/config"
	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/adapters"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/catalog"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/meta"
)

// definitions returns every tool the server exposes. lister backs list_tools.
func definitions(c *storyblok.Client, cfg *config.Config, lister tools.ToolLister) []tools.Definition {
	defs := catalog.New(c, catalog.Options{UsageMaxPages: cfg.Storyblok.UsageMaxPages})
	return append(defs, meta.Tools(c, lister)...)
}

func registerAllTools(registry tools.ToolRegistry, defs []tools.Definition, version string, log *logger.Logger) error {
	log.Info("registering tools", "count", len(defs))

	for _, d := range defs {
		if err := registry.Register(d.Name, tools.NewDefinitionFactory(d, version)); err != nil {
			log.Error("failed to register tool", "name", d.Name, "error", err)
			return fmt.Errorf("register %s: %w", d.Name, err)
		}
	}

	log.Info("successfully registered all tools")
	return nil
}

// setupRegistry builds the Storyblok client and a running registry with
// every tool loaded and active.
func setupRegistry(ctx context.Context, cfg *config.Config, log *logger.Logger) (*tools.DefaultToolRegistry, adapters.LibraryAdapter, error) {
	client, err := storyblok.NewClient(cfg.Storyblok.Settings(), storyblok.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}

	info := adapters.ServerInfo{Name: cfg.Logger.Service, Version: cfg.Logger.Version}
	registry, adapter, err := tools.NewRegistryFactory(info, log).CreateRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("create tool registry: %w", err)
	}

	if err := registerAllTools(registry, definitions(client, cfg, registry), cfg.Logger.Version, log); err != nil {
		return nil, nil, err
	}
	if err := registry.LoadTools(ctx); err != nil {
		return nil, nil, fmt.Errorf("load tools: %w", err)
	}
	if err := registry.ValidateTools(ctx); err != nil {
		return nil, nil, fmt.Errorf("validate tools: %w", err)
	}
	if err := registry.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("start tool registry: %w", err)
	}
	return registry, adapter, nil
}
