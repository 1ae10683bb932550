package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiran1689/storyblok-mcp-server/internal/config"
	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storyblok.SpaceID = "12345"
	cfg.Storyblok.ManagementToken = "mgmt-token"
	cfg.Storyblok.PublicToken = "public-token"
	cfg.Storyblok.APIURL = "https://mapi.storyblok.test/v1"
	cfg.Storyblok.UsageMaxPages = 3
	cfg.Logger.Version = "1.2.3"
	return cfg
}

func TestRegisterAllTools(t *testing.T) {
	cfg := testConfig(t)
	client, err := storyblok.NewClient(cfg.Storyblok.Settings())
	require.NoError(t, err)

	registry := tools.NewDefaultToolRegistry(logger.Discard())
	defs := definitions(client, cfg, registry)
	require.NoError(t, registerAllTools(registry, defs, "1.2.3", logger.Discard()))

	list := registry.List()
	assert.Len(t, list, len(defs))
	for _, info := range list {
		assert.Equal(t, "1.2.3", info.Version)
		assert.Equal(t, tools.ToolStatusRegistered, info.Status)
	}
}

func TestRegisterAllTools_Duplicate(t *testing.T) {
	cfg := testConfig(t)
	client, err := storyblok.NewClient(cfg.Storyblok.Settings())
	require.NoError(t, err)

	registry := tools.NewDefaultToolRegistry(logger.Discard())
	defs := definitions(client, cfg, registry)
	require.NoError(t, registerAllTools(registry, defs[:1], "1", logger.Discard()))

	err = registerAllTools(registry, defs[:1], "1", logger.Discard())
	assert.Error(t, err)
}

func TestSetupRegistry_AllToolsActive(t *testing.T) {
	cfg := testConfig(t)

	registry, adapter, err := setupRegistry(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = registry.Stop(context.Background()) })

	health := registry.Health()
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, health.ToolCount, health.ActiveTools)
	assert.Zero(t, health.ErrorTools)

	assert.Contains(t, adapter.ListTools(), "ping")
	assert.Contains(t, adapter.ListTools(), "list_tools")
	assert.Contains(t, adapter.ListTools(), "get_component_usage")
	assert.Len(t, adapter.ListTools(), health.ToolCount)
}

func TestSetupRegistry_MissingCredentials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storyblok.ManagementToken = ""

	_, _, err := setupRegistry(context.Background(), cfg, logger.Discard())
	require.Error(t, err)
	assert.Equal(t, storyblok.KindConfig, storyblok.KindOf(err))
}

func TestToolsCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tools"})

	require.NoError(t, cmd.Execute())
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Available tools (total: "))
	assert.Contains(t, text, "\nfetch_stories: ")
	assert.Contains(t, text, "\nping: ")
}
