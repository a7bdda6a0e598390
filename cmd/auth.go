package cmd

import (
	"github.com/spf13/cobra"

	"scouts/internal/auth"
	"scouts/internal/cli"
)

// Login-specific flags
var loginToken string

// authCmd groups the authentication subcommands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication management",
	Long: `Manage the cached bearer credential.

'auth login' opens a browser for third-party sign-in and captures the
token automatically. If a browser cannot be used, paste the token manually
with --token.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate (opens browser, or use --token for manual)",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current auth status",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove cached token",
	RunE:  runAuthLogout,
}

func init() {
	authLoginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token (if omitted, opens browser for sign-in)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	// Manual path: ingest the pasted token directly.
	if loginToken != "" {
		if err := a.manager.IngestToken(loginToken); err != nil {
			return err
		}
		return cli.PrintResult(a.manager.GetTokenInfo(), humanOutput)
	}

	info, err := a.manager.LoginInteractive(cmd.Context(), verbose)
	if err != nil {
		return err
	}
	return cli.PrintResult(info, humanOutput)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	info := a.manager.GetTokenInfo()
	if info == nil {
		return auth.NewAuthenticationError("no authentication token found")
	}
	return cli.PrintResult(info, humanOutput)
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.manager.Logout(); err != nil {
		return err
	}
	return cli.PrintResult(logoutResult{Status: "logged_out"}, humanOutput)
}

type logoutResult struct {
	Status string `json:"status"`
}
