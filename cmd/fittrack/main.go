// Package main is the fittrack command: an MCP tool server over stdio for
// AC-joint safe training, plus CLI commands over the same core packages.
//
// Running the binary bare starts the MCP server, which is how MCP clients
// spawn it. Everything interactive (library browsing, protocol lookup,
// hydration planning) lives behind subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fittrack/internal/config"
	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/mcp"
	"fittrack/internal/rehab"
)

// version is set at build time via ldflags.
var version = "dev"

var debugFlag bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "fittrack",
		Short: "AC-joint safe training rules engine and MCP server",
		Long: `fittrack is a stateless rules engine for shoulder-safe strength training:
an exercise catalog with AC-joint safety tiers, a hydration calculator, a
late-meal guard, and phased rehab protocols for six conditions.

Run it bare (or as 'fittrack serve') to expose the five tools over the MCP
stdio protocol; use the subcommands to query the same engine from the
terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// The logger reads DEBUG at construction time, so the flag has
			// to land in the environment before any logger exists.
			if debugFlag {
				os.Setenv("DEBUG", "1")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to fittrack-debug.log in the working directory")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(libraryCmd())
	rootCmd.AddCommand(protocolCmd())
	rootCmd.AddCommand(hydrateCmd())
	rootCmd.AddCommand(mealCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio",
		Long: `Serve the five fittrack tools (log_workout, calculate_hydration,
log_nutrition, get_exercise_library, get_rehab_protocol) over the MCP
stdio protocol until stdin closes or the process is signalled.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger := logging.New()
	mcp.Version = version

	// First run on the serve path creates the default config silently;
	// an MCP client is spawning us and nobody is reading stdout prose.
	cfg, _, err := loadConfigQuiet()
	if err != nil {
		return err
	}

	catalog, store, err := loadReferenceData(cfg, logger)
	if err != nil {
		return err
	}

	server := mcp.NewServer(cfg, catalog, store, logger)
	return server.Start(ctx)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fittrack %s\n", version)
		},
	}
}

// loadConfigQuiet loads the config, creating a default one on first run
// without printing anything. Returns the config and whether this was the
// first run so interactive commands can mention it.
func loadConfigQuiet() (*config.Config, bool, error) {
	firstRun := config.FirstRun()
	if firstRun {
		cfg, err := config.InitConfig()
		if err != nil {
			return nil, true, fmt.Errorf("creating default config: %w", err)
		}
		return cfg, true, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, false, fmt.Errorf("loading config: %w", err)
	}
	return cfg, false, nil
}

// loadConfigInteractive is loadConfigQuiet plus a first-run notice on
// stderr, used by the human-facing subcommands.
func loadConfigInteractive() (*config.Config, error) {
	cfg, firstRun, err := loadConfigQuiet()
	if err != nil {
		return nil, err
	}
	if firstRun {
		fmt.Fprintf(os.Stderr, "Created default config at %s\n", config.ConfigPath())
	}
	return cfg, nil
}

// loadReferenceData builds the exercise catalog (embedded cards plus any
// configured sources) and the rehab protocol store. Either failing is a
// startup failure.
func loadReferenceData(cfg *config.Config, logger *logging.Logger) (*library.Catalog, *rehab.Store, error) {
	sources, err := cfg.CardSources()
	if err != nil {
		return nil, nil, err
	}

	catalog, err := library.LoadCatalog(sources, logger.WithComponent("library"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading exercise catalog: %w", err)
	}

	store, err := rehab.NewStore(catalog, logger.WithComponent("rehab"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading rehab protocols: %w", err)
	}

	return catalog, store, nil
}
