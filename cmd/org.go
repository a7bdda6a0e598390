package cmd

import (
	"github.com/spf13/cobra"

	"scouts/internal/cli"
)

// Org-specific flags
var (
	orgGUID    string
	orgRefresh bool
)

// orgCmd groups the organization subcommands.
var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Organization operations",
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your organizations (from the context cache)",
	RunE:  runOrgList,
}

var orgProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show an organization's profile (live)",
	RunE:  runOrgProfile,
}

func init() {
	orgListCmd.Flags().BoolVar(&orgRefresh, "refresh", false, "Refresh the context cache from the API first")
	orgProfileCmd.Flags().StringVar(&orgGUID, "org", "", "Organization GUID")
	_ = orgProfileCmd.MarkFlagRequired("org")

	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgProfileCmd)
	rootCmd.AddCommand(orgCmd)
}

// runOrgList serves organizations from the context cache, populating it
// from the API on first use or when --refresh asks for fresh data.
func runOrgList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if orgRefresh || !a.cache.Exists() {
		info, err := a.tokenInfoOrErr(cmd.Context())
		if err != nil {
			return err
		}
		if _, _, err := a.cache.Refresh(cmd.Context(), a.client, info); err != nil {
			return err
		}
	}
	return cli.PrintResult(a.cache.Organizations(), humanOutput)
}

func runOrgProfile(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	profile, err := a.client.FetchOrgProfile(cmd.Context(), orgGUID)
	if err != nil {
		return err
	}
	return cli.PrintResult(profile, humanOutput)
}
