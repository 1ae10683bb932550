package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv(storyblok.EnvSpaceID, "12345")
	t.Setenv(storyblok.EnvManagementToken, "mgmt")
	t.Setenv(storyblok.EnvPublicToken, "public")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.False(t, cfg.Server.HTTPEnabled)
	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
	assert.Equal(t, storyblok.DefaultBaseURL, cfg.Storyblok.APIURL)
	assert.Equal(t, storyblok.DefaultTimeout, cfg.Storyblok.Timeout)
	assert.Equal(t, DefaultUsageMaxPages, cfg.Storyblok.UsageMaxPages)

	settings := cfg.Storyblok.Settings()
	assert.Equal(t, "12345", settings.SpaceID)
	assert.Equal(t, "mgmt", settings.ManagementToken)
	assert.Equal(t, "public", settings.PublicToken)
}

func TestLoad_MissingCredentialsFailsFast(t *testing.T) {
	t.Setenv(storyblok.EnvSpaceID, "")
	t.Setenv(storyblok.EnvManagementToken, "mgmt")
	t.Setenv(storyblok.EnvPublicToken, "")

	_, err := Load("")
	require.Error(t, err)

	var cfgErr *storyblok.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{storyblok.EnvSpaceID, storyblok.EnvPublicToken}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "STORYBLOK_SPACE_ID is missing.")
}

func TestLoad_YAMLFile(t *testing.T) {
	setCredentials(t)
	path := writeFile(t, "storyblok-mcp.yaml", `
server:
  transport: http
  http_enabled: true
  port: 8088
  cors_allowed_origins: ["https://app.example.com"]
logger:
  level: debug
  format: json
storyblok:
  timeout: 5s
  usage_max_pages: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.True(t, cfg.Server.HTTPEnabled)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, 5*time.Second, cfg.Storyblok.Timeout)
	assert.Equal(t, 3, cfg.Storyblok.UsageMaxPages)
}

func TestLoad_TOMLFile(t *testing.T) {
	setCredentials(t)
	path := writeFile(t, "storyblok-mcp.toml", `
[logger]
level = "warn"

[storyblok]
api_url = "https://api-us.storyblok.com/v1"
usage_max_pages = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "https://api-us.storyblok.com/v1", cfg.Storyblok.APIURL)
	assert.Equal(t, 2, cfg.Storyblok.UsageMaxPages)
}

func TestLoad_EnvTakesPrecedenceOverFile(t *testing.T) {
	setCredentials(t)
	t.Setenv("MCP_LOG_LEVEL", "error")
	path := writeFile(t, "c.yaml", "logger:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logger.Level)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	setCredentials(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	setCredentials(t)
	_, err := Load(writeFile(t, "c.ini", "x=1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")
}

func TestLoad_BadDurationInFile(t *testing.T) {
	setCredentials(t)
	_, err := Load(writeFile(t, "c.yaml", "storyblok:\n  timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storyblok.timeout")
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)

	cfg, err := Load("",
		WithLogLevel("debug"),
		WithLogFormat("json"),
		WithHTTPAddr("0.0.0.0:9000"),
		WithTransport(TransportHTTP),
	)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Server.HTTPEnabled)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)

	_, err = Load("", WithHTTPAddr("nonsense"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	setCredentials(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad transport", func(c *Config) { c.Server.Transport = "grpc" }, "invalid transport"},
		{"http transport without listener", func(c *Config) { c.Server.Transport = TransportHTTP }, "requires the HTTP listener"},
		{"bad port", func(c *Config) { c.Server.HTTPEnabled = true; c.Server.Port = 0 }, "server port must be between"},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }, "invalid log format"},
		{"bad usage pages", func(c *Config) { c.Storyblok.UsageMaxPages = 0 }, "usage max pages"},
		{"relative api url", func(c *Config) { c.Storyblok.APIURL = "mapi.storyblok.com" }, "must be absolute"},
		{"zero timeout", func(c *Config) { c.Storyblok.Timeout = 0 }, "timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "", ValidationErrors{}.Error())
	assert.Equal(t, "one", ValidationErrors{"one"}.Error())
	assert.Equal(t, "multiple validation errors: one; two", ValidationErrors{"one", "two"}.Error())
}
