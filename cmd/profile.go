package cmd

import (
	"github.com/spf13/cobra"

	"scouts/internal/cli"
)

// profileCmd groups the person-profile subcommands.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Your profile and relationships (live)",
}

var profileMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your full person profile",
	RunE:  runProfileMe,
}

var profileMyScoutsCmd = &cobra.Command{
	Use:   "my-scouts",
	Short: "List the scouts associated with you",
	RunE:  runProfileMyScouts,
}

var profileRolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Show your roles and permissions",
	RunE:  runProfileRoles,
}

var profileTrainingCmd = &cobra.Command{
	Use:   "training",
	Short: "Show your Youth Protection Training status",
	RunE:  runProfileTraining,
}

func init() {
	profileCmd.AddCommand(profileMeCmd)
	profileCmd.AddCommand(profileMyScoutsCmd)
	profileCmd.AddCommand(profileRolesCmd)
	profileCmd.AddCommand(profileTrainingCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileMe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	info, err := a.tokenInfoOrErr(cmd.Context())
	if err != nil {
		return err
	}

	profile, err := a.client.FetchProfile(cmd.Context(), info.UID)
	if err != nil {
		return err
	}
	return cli.PrintResult(profile, humanOutput)
}

func runProfileMyScouts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	info, err := a.tokenInfoOrErr(cmd.Context())
	if err != nil {
		return err
	}

	dependents, err := a.client.FetchDependents(cmd.Context(), info.UID)
	if err != nil {
		return err
	}
	return cli.PrintResult(dependents, humanOutput)
}

func runProfileRoles(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	personGUID, err := a.personGUIDOrErr(cmd.Context())
	if err != nil {
		return err
	}

	roles, err := a.client.FetchRoles(cmd.Context(), personGUID)
	if err != nil {
		return err
	}
	return cli.PrintResult(roles, humanOutput)
}

func runProfileTraining(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	personGUID, err := a.personGUIDOrErr(cmd.Context())
	if err != nil {
		return err
	}

	training, err := a.client.FetchTraining(cmd.Context(), personGUID)
	if err != nil {
		return err
	}
	return cli.PrintResult(training, humanOutput)
}
