package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"scouts/internal/auth"
	"scouts/internal/browser"
	"scouts/internal/cli"
	"scouts/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates authentication is required but not available.
	ExitCodeAuthRequired = 2
)

// Global flags shared by every command.
var (
	humanOutput bool
	verbose     bool
)

// rootCmd represents the base command for the scouts application.
var rootCmd = &cobra.Command{
	Use:   "scouts",
	Short: "Manage scout advancement from the command line",
	Long: `scouts talks to the Scouting advancement API with a browser-assisted
bearer credential and a local context cache of your identity, organizations
and scouts.

Authenticate once with 'scouts auth login' (opens a browser for the
third-party sign-in), then populate the local context with
'scouts context refresh'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if verbose {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command. Called from main to
// inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "scouts version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		cli.PrintError(err, humanOutput)
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the exit code based on the error type. This
// provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var authErr *auth.AuthenticationError
	if errors.As(err, &authErr) {
		return ExitCodeAuthRequired
	}

	var browserErr *browser.AuthError
	if errors.As(err, &browserErr) {
		return ExitCodeAuthRequired
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
}
