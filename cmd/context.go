package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scouts/internal/cache"
	"scouts/internal/cli"
)

// contextCmd groups the local context cache subcommands.
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Local context cache (identity, organizations, scouts)",
	Long: `Maintain the local context cache.

The cache stores your identity, organizations and scout relationships so
ordinary lookups never hit the network. It is populated by 'context
refresh' and considered stale after a week.`,
}

var contextRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the context cache from live API calls",
	RunE:  runContextRefresh,
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cached context",
	RunE:  runContextShow,
}

var contextResolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Find cached scouts by name (case-insensitive substring)",
	Args:  cobra.ExactArgs(1),
	RunE:  runContextResolve,
}

func init() {
	contextCmd.AddCommand(contextRefreshCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextResolveCmd)
	rootCmd.AddCommand(contextCmd)
}

func runContextRefresh(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	info, err := a.tokenInfoOrErr(cmd.Context())
	if err != nil {
		return err
	}

	stop := cli.StartSpinner("Refreshing context...")
	_, report, err := a.cache.Refresh(cmd.Context(), a.client, info)
	stop()
	if err != nil {
		return err
	}

	for _, skipped := range report.Skipped() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s step skipped: %s\n", skipped.Step, skipped.Reason)
	}
	return cli.PrintResult(a.cache.Show(), humanOutput)
}

func runContextShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return cli.PrintResult(a.cache.Show(), humanOutput)
}

func runContextResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	matches := a.cache.ResolveScout(args[0])
	if matches == nil {
		matches = []cache.Scout{}
	}
	return cli.PrintResult(matches, humanOutput)
}
