package cmd

import (
	"errors"
	"fmt"

	"github.com/nfrund/signin/internal/login"
	"github.com/spf13/cobra"
)

// errRejected makes the command exit non-zero; cobra prints the wrapped reason.
var errRejected = errors.New("credentials rejected")

func newValidateCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an email/password pair against the sign-in rules",
		Long: `Applies the same checks as the sign-in form, in the same order: the email
first, then the password. Prints the first failing rule's message, or "ok".`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login.Validate(login.Credentials{Email: email, Password: password}); err != nil {
				return fmt.Errorf("%w: %w", errRejected, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address to check")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password to check")
	return cmd
}

func init() {
	rootCmd.AddCommand(newValidateCmd())
}
