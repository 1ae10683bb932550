// Command storyblok-mcp serves the Storyblok Management API as MCP tools over
// stdio or streamable HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/Kiran1689/storyblok-mcp-server/internal/config"
	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/server"
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools/meta"
)

const (
	ExitCodeOK    = 0
	ExitCodeError = 1

	shutdownTimeout = 5 * time.Second
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	transport  string
	httpAddr   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
	os.Exit(ExitCodeOK)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "storyblok-mcp",
		Short:        "MCP server for the Storyblok Management API",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	opts.bind(cmd.PersistentFlags())
	cmd.AddCommand(newToolsCommand())
	return cmd
}

// bind registers the flags shared by every subcommand. Empty values leave the
// file and environment settings in place.
func (o *rootOptions) bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", os.Getenv("MCP_CONFIG_FILE"), "path to a YAML or TOML config file")
	flags.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&o.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&o.transport, "transport", "", "MCP transport: stdio or http")
	flags.StringVar(&o.httpAddr, "http-addr", "", "enable the HTTP listener on host:port")
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath,
		config.WithLogLevel(o.logLevel),
		config.WithLogFormat(o.logFormat),
		config.WithTransport(o.transport),
		config.WithHTTPAddr(o.httpAddr),
	)
}

// newToolsCommand prints the catalog without contacting Storyblok.
func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools this server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := storyblok.NewClient(storyblok.Settings{
				SpaceID:         "0",
				ManagementToken: "offline",
				PublicToken:     "offline",
			})
			if err != nil {
				return err
			}
			defs := definitions(client, config.Defaults(), nil)
			infos := make([]tools.ToolInfo, 0, len(defs))
			for _, d := range defs {
				infos = append(infos, tools.ToolInfo{Name: d.Name, Description: d.Description})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), meta.FormatToolList(infos))
			return err
		},
	}
}

func setupLogging(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:   cfg.Logger.Level,
		Format:  cfg.Logger.Format,
		Service: cfg.Logger.Service,
		Version: cfg.Logger.Version,
	})
}

func run(ctx context.Context, opts *rootOptions, in io.Reader, out io.Writer) error {
	cfg, err := opts.load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Logger.Version == "dev" {
		cfg.Logger.Version = version
	}

	log, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	registry, adapter, err := setupRegistry(ctx, cfg, log)
	if err != nil {
		log.Error("failed to set up tools", "error", err)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.HTTPEnabled {
		var mcpHandler http.Handler
		if cfg.Server.Transport == config.TransportHTTP {
			mcpHandler = adapter.HTTPHandler()
		}
		srv := server.New(cfg, log, registry, mcpHandler)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	if cfg.Server.Transport == config.TransportStdio {
		g.Go(func() error {
			// The client closing stdin ends the process.
			defer cancel()
			return adapter.ServeStdio(gctx, in, out)
		})
	}

	log.Info("server started",
		"transport", cfg.Server.Transport,
		"http_enabled", cfg.Server.HTTPEnabled,
		"space_id", cfg.Storyblok.SpaceID,
	)

	err = g.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if stopErr := registry.Stop(shutdownCtx); stopErr != nil {
		log.Error("error stopping tool registry", "error", stopErr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
