package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "signin-cli",
	Short: "Sign-in form tooling",
	Long: `signin-cli works with the rules of the sign-in form from the command line.

Available commands:
  validate    Check an email/password pair against the sign-in rules
  version     Print the version

Use "signin-cli [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
