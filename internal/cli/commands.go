package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dyike/arandu/config"
	"github.com/dyike/arandu/internal/display"
	"github.com/dyike/arandu/internal/logger"
	"github.com/dyike/arandu/pkg/app"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

type rootOptions struct {
	configPath string
	apiKey     string
	promptKey  bool
	json       bool
	debug      bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Initialize configuration early
	cfg := config.DefaultConfig()
	opts := &rootOptions{}
	shutdown := func(context.Context) error { return nil }

	rootCmd := &cobra.Command{
		Use:   "arandu",
		Short: "Arandu - market intelligence dashboard",
		Long: `Arandu polls market quotes and financial news, scores headline sentiment
and prints a dashboard with the current trading session and market signal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				loaded, err := config.LoadFile(opts.configPath)
				if err != nil {
					return err
				}
				*cfg = *loaded
			}
			if opts.debug {
				cfg.Debug = true
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			fn, err := logger.Init(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			shutdown = fn
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return shutdown(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, cfg, opts)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(newWatchCmd(cfg, opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Configuration file path (YAML)")
	flags.StringVar(&opts.apiKey, "news-api-key", "", "NewsAPI key (overrides NEWSAPI_KEY)")
	flags.BoolVar(&opts.promptKey, "prompt-key", false, "Prompt for the NewsAPI key")
	flags.BoolVar(&opts.json, "json", false, "Print the dashboard as JSON")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug mode")

	return rootCmd
}

// newWatchCmd creates the watch command
func newWatchCmd(cfg *config.Config, opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the dashboard on an interval",
		Long: `Render the dashboard, then refresh it every interval until interrupted.
Quotes, headlines and feeds are cached, so most refreshes do not hit the network.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, cfg, opts, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (defaults to ARANDU_REFRESH_INTERVAL)")

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Arandu %s\n", Version)
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	// config show subcommand
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderConfig(cfg))
		},
	})

	return configCmd
}

func runOnce(cmd *cobra.Command, cfg *config.Config, opts *rootOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, apiKey, err := prepare(cfg, opts)
	if err != nil {
		return err
	}

	renderer := display.NewRenderer(cmd.OutOrStdout(), opts.json)
	return renderer.Render(engine.Build(ctx, apiKey))
}

func runWatch(cmd *cobra.Command, cfg *config.Config, opts *rootOptions, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, apiKey, err := prepare(cfg, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := display.NewRenderer(out, opts.json)
	rt, err := app.NewRuntime(engine, apiKey, func(d *app.Dashboard) error {
		if !opts.json {
			ClearScreen(out)
		}
		return renderer.Render(d)
	}, app.WithInterval(interval))
	if err != nil {
		return err
	}

	logger.L().Info("watching market", zap.Duration("interval", rt.Interval()))
	return rt.Run(ctx)
}

func prepare(cfg *config.Config, opts *rootOptions) (*app.Engine, string, error) {
	apiKey, err := resolveAPIKey(cfg, opts)
	if err != nil {
		return nil, "", err
	}
	if apiKey == "" {
		logger.L().Info("no NewsAPI key configured, using RSS feeds only")
	}

	engine, err := app.BuildEngine(*cfg, app.WithLogger(logger.L()))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build engine: %w", err)
	}
	return engine, apiKey, nil
}

// resolveAPIKey picks the key from the flag, then the prompt, then config.
func resolveAPIKey(cfg *config.Config, opts *rootOptions) (string, error) {
	if opts.apiKey != "" {
		return opts.apiKey, nil
	}
	if opts.promptKey {
		key, err := PromptForAPIKey()
		if err != nil {
			return "", fmt.Errorf("failed to read api key: %w", err)
		}
		return key, nil
	}
	return cfg.NewsAPIKey, nil
}
