package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

const (
	// Default server settings
	DefaultServerHost = "localhost"
	DefaultServerPort = 3000

	// Default HTTP server timeouts
	DefaultReadTimeout    = 15 * time.Second
	DefaultWriteTimeout   = 15 * time.Second
	DefaultIdleTimeout    = 60 * time.Second
	DefaultMaxHeaderBytes = 1 << 20 // 1MB

	// DefaultUsageMaxPages caps each story listing walked by get_component_usage.
	DefaultUsageMaxPages = 10

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration for the MCP server
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Storyblok StoryblokConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	// Transport is how MCP is served: stdio or http.
	Transport string
	// HTTPEnabled starts the HTTP listener (health, readiness and, for the
	// http transport, the /mcp endpoint).
	HTTPEnabled        bool
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	MaxHeaderBytes     int
	CORSAllowedOrigins []string
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level   string
	Format  string
	Service string
	Version string
}

// StoryblokConfig holds Management API credentials and client tuning.
type StoryblokConfig struct {
	SpaceID         string
	ManagementToken string
	PublicToken     string
	APIURL          string
	Timeout         time.Duration
	UsageMaxPages   int
}

// Settings converts the section into client settings.
func (s StoryblokConfig) Settings() storyblok.Settings {
	return storyblok.Settings{
		SpaceID:         s.SpaceID,
		ManagementToken: s.ManagementToken,
		PublicToken:     s.PublicToken,
		BaseURL:         s.APIURL,
		Timeout:         s.Timeout,
	}
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []string

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	if len(ve) == 1 {
		return ve[0]
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(ve, "; "))
}

// FileConfig represents configuration loaded from YAML or TOML files
type FileConfig struct {
	Server    FileServerConfig    `yaml:"server" toml:"server"`
	Logger    FileLoggerConfig    `yaml:"logger" toml:"logger"`
	Storyblok FileStoryblokConfig `yaml:"storyblok" toml:"storyblok"`
}

type FileServerConfig struct {
	Transport          string   `yaml:"transport" toml:"transport"`
	HTTPEnabled        *bool    `yaml:"http_enabled" toml:"http_enabled"`
	Host               string   `yaml:"host" toml:"host"`
	Port               int      `yaml:"port" toml:"port"`
	ReadTimeout        string   `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout       string   `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout        string   `yaml:"idle_timeout" toml:"idle_timeout"`
	MaxHeaderBytes     int      `yaml:"max_header_bytes" toml:"max_header_bytes"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
}

type FileLoggerConfig struct {
	Level   string `yaml:"level" toml:"level"`
	Format  string `yaml:"format" toml:"format"`
	Service string `yaml:"service" toml:"service"`
	Version string `yaml:"version" toml:"version"`
}

type FileStoryblokConfig struct {
	SpaceID         string `yaml:"space_id" toml:"space_id"`
	ManagementToken string `yaml:"management_token" toml:"management_token"`
	PublicToken     string `yaml:"public_token" toml:"public_token"`
	APIURL          string `yaml:"api_url" toml:"api_url"`
	Timeout         string `yaml:"timeout" toml:"timeout"`
	UsageMaxPages   int    `yaml:"usage_max_pages" toml:"usage_max_pages"`
}

// Override adjusts a loaded configuration before validation, e.g. from CLI flags.
type Override func(*Config) error

var defaultConfigFiles = []string{
	"configs/storyblok-mcp.yaml",
	"configs/storyblok-mcp.yml",
	"configs/storyblok-mcp.toml",
}

// readConfigFile parses a YAML or TOML file, chosen by extension.
func readConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fileConfig FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &fileConfig)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fileConfig)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (hint: use .yaml, .yml or .toml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &fileConfig, nil
}

// loadConfigFile resolves the file to read. An explicit path must exist;
// the default locations are optional.
func loadConfigFile(explicit string) (*FileConfig, error) {
	if explicit == "" {
		explicit = os.Getenv("MCP_CONFIG_FILE")
	}
	if explicit != "" {
		return readConfigFile(explicit)
	}

	for _, candidate := range defaultConfigFiles {
		if _, err := os.Stat(candidate); err == nil {
			fc, err := readConfigFile(candidate)
			if err != nil {
				// Note: the logger is not initialized yet
				fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
				return nil, nil
			}
			return fc, nil
		}
	}

	return nil, nil
}

// mergeFileConfig merges file configuration with base config, respecting environment variable precedence
func mergeFileConfig(base *Config, file *FileConfig) (*Config, error) {
	if file == nil {
		return base, nil
	}

	result := *base
	var errs ValidationErrors

	setString := func(dst *string, value, env string) {
		if value != "" && os.Getenv(env) == "" {
			*dst = value
		}
	}
	setDuration := func(dst *time.Duration, value, env, field string) {
		if value == "" || os.Getenv(env) != "" {
			return
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s in config file: %q (hint: use Go duration syntax like 15s)", field, value))
			return
		}
		*dst = d
	}

	setString(&result.Server.Transport, file.Server.Transport, "MCP_TRANSPORT")
	if file.Server.HTTPEnabled != nil && os.Getenv("MCP_HTTP_ENABLED") == "" {
		result.Server.HTTPEnabled = *file.Server.HTTPEnabled
	}
	setString(&result.Server.Host, file.Server.Host, "MCP_SERVER_HOST")
	if file.Server.Port != 0 && os.Getenv("MCP_SERVER_PORT") == "" {
		result.Server.Port = file.Server.Port
	}
	setDuration(&result.Server.ReadTimeout, file.Server.ReadTimeout, "MCP_SERVER_READ_TIMEOUT", "server.read_timeout")
	setDuration(&result.Server.WriteTimeout, file.Server.WriteTimeout, "MCP_SERVER_WRITE_TIMEOUT", "server.write_timeout")
	setDuration(&result.Server.IdleTimeout, file.Server.IdleTimeout, "MCP_SERVER_IDLE_TIMEOUT", "server.idle_timeout")
	if file.Server.MaxHeaderBytes != 0 && os.Getenv("MCP_SERVER_MAX_HEADER_BYTES") == "" {
		result.Server.MaxHeaderBytes = file.Server.MaxHeaderBytes
	}
	if len(file.Server.CORSAllowedOrigins) > 0 && os.Getenv("MCP_CORS_ALLOWED_ORIGINS") == "" {
		result.Server.CORSAllowedOrigins = file.Server.CORSAllowedOrigins
	}

	setString(&result.Logger.Level, file.Logger.Level, "MCP_LOG_LEVEL")
	setString(&result.Logger.Format, file.Logger.Format, "MCP_LOG_FORMAT")
	setString(&result.Logger.Service, file.Logger.Service, "MCP_SERVICE_NAME")
	setString(&result.Logger.Version, file.Logger.Version, "MCP_VERSION")

	setString(&result.Storyblok.SpaceID, file.Storyblok.SpaceID, storyblok.EnvSpaceID)
	setString(&result.Storyblok.ManagementToken, file.Storyblok.ManagementToken, storyblok.EnvManagementToken)
	setString(&result.Storyblok.PublicToken, file.Storyblok.PublicToken, storyblok.EnvPublicToken)
	setString(&result.Storyblok.APIURL, file.Storyblok.APIURL, "STORYBLOK_API_URL")
	setDuration(&result.Storyblok.Timeout, file.Storyblok.Timeout, "STORYBLOK_TIMEOUT", "storyblok.timeout")
	if file.Storyblok.UsageMaxPages != 0 && os.Getenv("STORYBLOK_USAGE_MAX_PAGES") == "" {
		result.Storyblok.UsageMaxPages = file.Storyblok.UsageMaxPages
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &result, nil
}

// Defaults returns a configuration populated from the environment only.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Transport:          getEnv("MCP_TRANSPORT", TransportStdio),
			HTTPEnabled:        getEnvBool("MCP_HTTP_ENABLED", false),
			Host:               getEnv("MCP_SERVER_HOST", DefaultServerHost),
			Port:               getEnvInt("MCP_SERVER_PORT", DefaultServerPort),
			ReadTimeout:        getEnvDuration("MCP_SERVER_READ_TIMEOUT", DefaultReadTimeout),
			WriteTimeout:       getEnvDuration("MCP_SERVER_WRITE_TIMEOUT", DefaultWriteTimeout),
			IdleTimeout:        getEnvDuration("MCP_SERVER_IDLE_TIMEOUT", DefaultIdleTimeout),
			MaxHeaderBytes:     getEnvInt("MCP_SERVER_MAX_HEADER_BYTES", DefaultMaxHeaderBytes),
			CORSAllowedOrigins: getEnvList("MCP_CORS_ALLOWED_ORIGINS"),
		},
		Logger: LoggerConfig{
			Level:   getEnv("MCP_LOG_LEVEL", "info"),
			Format:  getEnv("MCP_LOG_FORMAT", "text"),
			Service: getEnv("MCP_SERVICE_NAME", "storyblok-mcp"),
			Version: getEnv("MCP_VERSION", "dev"),
		},
		Storyblok: StoryblokConfig{
			SpaceID:         os.Getenv(storyblok.EnvSpaceID),
			ManagementToken: os.Getenv(storyblok.EnvManagementToken),
			PublicToken:     os.Getenv(storyblok.EnvPublicToken),
			APIURL:          getEnv("STORYBLOK_API_URL", storyblok.DefaultBaseURL),
			Timeout:         getEnvDuration("STORYBLOK_TIMEOUT", storyblok.DefaultTimeout),
			UsageMaxPages:   getEnvInt("STORYBLOK_USAGE_MAX_PAGES", DefaultUsageMaxPages),
		},
	}
}

// Load resolves configuration from defaults, an optional file and the
// environment, applies overrides, and validates the result. Missing
// Storyblok credentials fail with *storyblok.ConfigError.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Defaults()

	fileConfig, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err = mergeFileConfig(cfg, fileConfig)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	for _, override := range overrides {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := cfg.Storyblok.Settings().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogLevel overrides the log level when non-empty.
func WithLogLevel(level string) Override {
	return func(c *Config) error {
		if level != "" {
			c.Logger.Level = level
		}
		return nil
	}
}

// WithLogFormat overrides the log format when non-empty.
func WithLogFormat(format string) Override {
	return func(c *Config) error {
		if format != "" {
			c.Logger.Format = format
		}
		return nil
	}
}

// WithTransport overrides the MCP transport when non-empty.
func WithTransport(transport string) Override {
	return func(c *Config) error {
		if transport != "" {
			c.Server.Transport = transport
		}
		return nil
	}
}

// WithHTTPAddr enables the HTTP listener on host:port when addr is non-empty.
func WithHTTPAddr(addr string) Override {
	return func(c *Config) error {
		if addr == "" {
			return nil
		}
		host, portStr, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("invalid http address %q (hint: use host:port such as localhost:3000): %w", addr, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid http port %q: %w", portStr, err)
		}
		if host != "" {
			c.Server.Host = host
		}
		c.Server.Port = port
		c.Server.HTTPEnabled = true
		return nil
	}
}

// Validate validates the configuration with enhanced error reporting
func (c *Config) Validate() error {
	var errors ValidationErrors

	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if !c.Server.HTTPEnabled {
			errors = append(errors, "http transport requires the HTTP listener (hint: set MCP_HTTP_ENABLED=true or pass --http-addr)")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid transport: %s (valid options: stdio, http)", c.Server.Transport))
	}

	if c.Server.HTTPEnabled {
		if c.Server.Host == "" {
			errors = append(errors, "server host cannot be empty (hint: use 'localhost' for local development)")
		}

		if c.Server.Port < 1 || c.Server.Port > 65535 {
			errors = append(errors, fmt.Sprintf("server port must be between 1 and 65535, got %d (hint: use 3000 for development, 8080 for production)", c.Server.Port))
		}

		if c.Server.ReadTimeout < 0 {
			errors = append(errors, fmt.Sprintf("server read timeout cannot be negative, got %v (hint: use 15s or larger)", c.Server.ReadTimeout))
		} else if c.Server.ReadTimeout > 5*time.Minute {
			errors = append(errors, fmt.Sprintf("server read timeout is very large: %v (hint: typically 15s-60s)", c.Server.ReadTimeout))
		}

		if c.Server.WriteTimeout < 0 {
			errors = append(errors, fmt.Sprintf("server write timeout cannot be negative, got %v (hint: use 15s or larger)", c.Server.WriteTimeout))
		} else if c.Server.WriteTimeout > 5*time.Minute {
			errors = append(errors, fmt.Sprintf("server write timeout is very large: %v (hint: typically 15s-60s)", c.Server.WriteTimeout))
		}

		if c.Server.IdleTimeout < 0 {
			errors = append(errors, fmt.Sprintf("server idle timeout cannot be negative, got %v (hint: use 60s or larger)", c.Server.IdleTimeout))
		}

		if c.Server.ReadTimeout > 0 && c.Server.IdleTimeout > 0 && c.Server.ReadTimeout >= c.Server.IdleTimeout {
			errors = append(errors, fmt.Sprintf("read timeout (%v) should be less than idle timeout (%v)", c.Server.ReadTimeout, c.Server.IdleTimeout))
		}

		if c.Server.MaxHeaderBytes < 1 {
			errors = append(errors, fmt.Sprintf("server max header bytes must be positive, got %d (hint: use 1048576 for 1MB)", c.Server.MaxHeaderBytes))
		} else if c.Server.MaxHeaderBytes > 10*1024*1024 {
			errors = append(errors, fmt.Sprintf("server max header bytes is very large: %d (hint: typically 1MB-8MB)", c.Server.MaxHeaderBytes))
		}
	}

	normalizedLevel := strings.ToLower(c.Logger.Level)
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[normalizedLevel] {
		errors = append(errors, fmt.Sprintf("invalid log level: %s (valid options: debug, info, warn, error)", c.Logger.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logger.Format] {
		errors = append(errors, fmt.Sprintf("invalid log format: %s (valid options: json, text)", c.Logger.Format))
	}

	if c.Storyblok.Timeout <= 0 {
		errors = append(errors, fmt.Sprintf("storyblok timeout must be positive, got %v (hint: use 30s)", c.Storyblok.Timeout))
	}

	if c.Storyblok.UsageMaxPages < 1 || c.Storyblok.UsageMaxPages > 100 {
		errors = append(errors, fmt.Sprintf("storyblok usage max pages must be between 1 and 100, got %d (hint: the default is %d)", c.Storyblok.UsageMaxPages, DefaultUsageMaxPages))
	}

	if !strings.HasPrefix(c.Storyblok.APIURL, "http://") && !strings.HasPrefix(c.Storyblok.APIURL, "https://") {
		errors = append(errors, fmt.Sprintf("storyblok api url must be absolute, got %q (hint: %s)", c.Storyblok.APIURL, storyblok.DefaultBaseURL))
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as integer with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration gets environment variable as duration with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
