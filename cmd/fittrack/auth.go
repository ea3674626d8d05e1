package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fittrack/internal/library"
)

// authCmd returns the top-level "auth" command for managing the GitHub
// token used when cloning private card repositories.
func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the GitHub token for private card repositories",
		Long: `Store, remove, or inspect the GitHub Personal Access Token used for
private card repositories. The token lives in the OS credential store
(Keychain, Secret Service, Windows Credential Manager), never on disk.`,
	}

	cmd.AddCommand(authSetTokenCmd())
	cmd.AddCommand(authClearTokenCmd())
	cmd.AddCommand(authStatusCmd())

	return cmd
}

func authSetTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token [token]",
		Short: "Store a GitHub Personal Access Token",
		Long: `Store a GitHub Personal Access Token in the OS credential store.

Pass the token as an argument, or pipe it on stdin to keep it out of
shell history:

  gh auth token | fittrack auth set-token`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("no token provided: pass it as an argument or on stdin")
				}
				token = strings.TrimSpace(line)
			}

			if err := library.NewTokenStore().SaveToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored in the OS credential store.")
			return nil
		},
	}
}

func authClearTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-token",
		Short: "Remove the stored GitHub token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := library.NewTokenStore().ForgetToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed from the OS credential store.")
			return nil
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check credential store availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := library.NewTokenStore().CheckStore()

			if !status.Available {
				fmt.Fprintln(cmd.OutOrStdout(), "Credential store: unavailable")
				if status.Err != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", status.Err)
				}
				return fmt.Errorf("credential store unavailable")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Credential store: available")
			if status.Warning != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", status.Warning)
			}
			if status.TokenStored {
				fmt.Fprintln(cmd.OutOrStdout(), "GitHub token: stored")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "GitHub token: not set")
			}
			return nil
		},
	}
}
