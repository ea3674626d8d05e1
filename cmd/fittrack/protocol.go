package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fittrack/internal/logging"
	"fittrack/internal/rehab"
	"fittrack/internal/render"
)

// protocolCmd returns the top-level "protocol" command with list and show
// subcommands.
func protocolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Browse rehabilitation protocols",
		Long:  "List the supported conditions and show phased rehab protocols.",
	}

	cmd.AddCommand(protocolListCmd())
	cmd.AddCommand(protocolShowCmd())

	return cmd
}

// loadStore is the shared setup for protocol subcommands.
func loadStore() (*rehab.Store, error) {
	logger := logging.New()
	cfg, err := loadConfigInteractive()
	if err != nil {
		return nil, err
	}
	_, store, err := loadReferenceData(cfg, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func protocolListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported conditions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CONDITION\tTITLE\tPHASES")
			for _, c := range store.Conditions() {
				p, err := store.Protocol(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", c, p.Title, len(p.Phases))
			}
			return w.Flush()
		},
	}
}

func protocolShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <condition>",
		Short: "Show a rehab protocol",
		Long: `Render the full protocol for a condition, or one phase with --phase.

Conditions accept free-form spelling: "AC Joint Arthritis" and
"ac-joint-arthritis" both resolve. Run 'fittrack protocol list' for the
supported set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			condition, err := rehab.ParseCondition(args[0])
			if err != nil {
				return err
			}

			store, err := loadStore()
			if err != nil {
				return err
			}

			protocol, err := store.Protocol(condition)
			if err != nil {
				return err
			}

			phaseFlag, _ := cmd.Flags().GetInt("phase")
			if phaseFlag > 0 {
				phase, err := store.Phase(condition, phaseFlag)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(render.PhaseMarkdown(protocol, phase)))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(render.ProtocolMarkdown(protocol)))
			return nil
		},
	}
	cmd.Flags().Int("phase", 0, "show a single phase (numbered from 1)")
	return cmd
}
