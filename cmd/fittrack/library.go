package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fittrack/internal/library"
	"fittrack/internal/logging"
	"fittrack/internal/render"
	"fittrack/internal/safety"
	"fittrack/internal/tui/styles"
)

// libraryCmd returns the top-level "library" command with list, show,
// search, and sync subcommands.
func libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse the exercise catalog",
		Long:  "List, inspect, search, and sync the AC-joint safety exercise catalog.",
	}

	cmd.AddCommand(libraryListCmd())
	cmd.AddCommand(libraryShowCmd())
	cmd.AddCommand(librarySearchCmd())
	cmd.AddCommand(librarySyncCmd())

	return cmd
}

// loadCatalog is the shared setup for library subcommands: config plus the
// merged catalog.
func loadCatalog() (*library.Catalog, error) {
	logger := logging.New()
	cfg, err := loadConfigInteractive()
	if err != nil {
		return nil, err
	}
	catalog, _, err := loadReferenceData(cfg, logger)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func libraryListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog exercises",
		Long: `Display the exercise catalog with safety tiers.

Use --category to narrow to one movement pattern (pressing, pulling,
lower_body_standing, serratus_lower_trap_focus, core_standing).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			exercises := catalog.All()
			if categoryFlag, _ := cmd.Flags().GetString("category"); categoryFlag != "" {
				category, err := library.ParseCategory(categoryFlag)
				if err != nil {
					return err
				}
				exercises = catalog.ByCategory(category)
			}

			return printExerciseTable(cmd, exercises)
		},
	}
	cmd.Flags().String("category", "", "only show one movement category")
	return cmd
}

func libraryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one exercise card",
		Long: `Render the full card for a named exercise.

Near-miss names resolve through the safety classifier's approximate
matcher, with a note about which card was assumed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			ex, ok := catalog.Find(name)
			if !ok {
				result := safety.NewClassifier(catalog).Classify(name)
				if result.Confidence != safety.ConfidenceApproximate {
					return fmt.Errorf("no exercise matching %q; try 'fittrack library search %s'", name, name)
				}
				ex, _ = catalog.Find(result.MatchedName)
				fmt.Fprintf(cmd.OutOrStdout(), "Showing closest match %q:\n\n", ex.Name)
			}

			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(render.CardMarkdown(ex)))
			return nil
		},
	}
}

func librarySearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search the catalog",
		Long:  "Case-insensitive substring search over names, aliases, and card notes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")

			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			matches := catalog.Search(term)
			if len(matches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No exercises matching %q.\n", term)
				return nil
			}
			return printExerciseTable(cmd, matches)
		},
	}
}

func librarySyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync configured card sources",
		Long: `Prepare every configured card source: validate local directories and
clone or fetch git-backed repositories. The embedded cards need no sync.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New()
			cfg, err := loadConfigInteractive()
			if err != nil {
				return err
			}

			if len(cfg.Library.Sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No extra card sources configured; the embedded catalog is always current.")
				return nil
			}

			var failed int
			for _, entry := range cfg.Library.Sources {
				src, err := entry.Source()
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%-24s error: %v\n", entry.Name, err)
					continue
				}

				_, info, err := src.Prepare(logger.WithComponent("library"))
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%-24s error: %v\n", entry.Name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", entry.Name, info.Message)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d sources failed to sync", failed, len(cfg.Library.Sources))
			}
			return nil
		},
	}
}

func printExerciseTable(cmd *cobra.Command, exercises []library.Exercise) error {
	if len(exercises) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No exercises found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tTIER")
	for _, ex := range exercises {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ex.Name, ex.Category.Label(), styles.TierBadge(string(ex.Tier)))
	}
	return w.Flush()
}
