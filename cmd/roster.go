package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"scouts/internal/cache"
	"scouts/internal/cli"
	"scouts/internal/client"
)

// Roster-specific flags
var (
	rosterOrgGUID string
	rosterRefresh bool
)

// rosterCmd groups the unit roster subcommands.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Unit roster operations (live)",
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the youth roster of a unit",
	RunE:  runRosterList,
}

var rosterAdultsCmd = &cobra.Command{
	Use:   "adults",
	Short: "List the adult leaders of a unit",
	RunE:  runRosterAdults,
}

var rosterSearchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search a unit roster by name (case-insensitive substring)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRosterSearch,
}

var rosterResolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a scout name across all your organizations",
	Args:  cobra.ExactArgs(1),
	RunE:  runRosterResolve,
}

func init() {
	rosterListCmd.Flags().StringVar(&rosterOrgGUID, "org", "", "Organization GUID")
	_ = rosterListCmd.MarkFlagRequired("org")
	rosterAdultsCmd.Flags().StringVar(&rosterOrgGUID, "org", "", "Organization GUID")
	_ = rosterAdultsCmd.MarkFlagRequired("org")
	rosterSearchCmd.Flags().StringVar(&rosterOrgGUID, "org", "", "Organization GUID")
	_ = rosterSearchCmd.MarkFlagRequired("org")
	rosterResolveCmd.Flags().BoolVar(&rosterRefresh, "refresh", false, "Query the API instead of the context cache")

	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterAdultsCmd)
	rosterCmd.AddCommand(rosterSearchCmd)
	rosterCmd.AddCommand(rosterResolveCmd)
	rootCmd.AddCommand(rosterCmd)
}

func runRosterList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	roster, err := a.client.FetchRoster(cmd.Context(), rosterOrgGUID)
	if err != nil {
		return err
	}
	return cli.PrintResult(roster, humanOutput)
}

func runRosterAdults(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	roster, err := a.client.FetchAdults(cmd.Context(), rosterOrgGUID)
	if err != nil {
		return err
	}
	return cli.PrintResult(roster, humanOutput)
}

func runRosterSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	roster, err := a.client.FetchRoster(cmd.Context(), rosterOrgGUID)
	if err != nil {
		return err
	}
	roster.Users = matchRosterUsers(roster.Users, args[0])
	return cli.PrintResult(roster, humanOutput)
}

// runRosterResolve answers "which scout is <name>" across every unit the
// user has access to. The context cache serves the fast path; without a
// snapshot (or with --refresh) the dependent list is fetched and matched
// directly, without persisting anything.
func runRosterResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if !rosterRefresh && a.cache.Exists() {
		matches := a.cache.ResolveScout(args[0])
		if matches == nil {
			matches = []cache.Scout{}
		}
		return cli.PrintResult(matches, humanOutput)
	}

	info, err := a.tokenInfoOrErr(cmd.Context())
	if err != nil {
		return err
	}

	raw, err := a.client.FetchDependents(cmd.Context(), info.UID)
	if err != nil {
		return err
	}

	matches := cache.MatchScouts(cache.ScoutsFromDependents(raw), args[0])
	if matches == nil {
		matches = []cache.Scout{}
	}
	return cli.PrintResult(matches, humanOutput)
}

// matchRosterUsers filters roster entries whose full, first or last name
// contains the query, case-insensitively.
func matchRosterUsers(users []client.RosterUser, query string) []client.RosterUser {
	q := strings.ToLower(query)
	matches := []client.RosterUser{}
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.PersonFullName), q) ||
			strings.Contains(strings.ToLower(user.FirstName), q) ||
			strings.Contains(strings.ToLower(user.LastName), q) {
			matches = append(matches, user)
		}
	}
	return matches
}
