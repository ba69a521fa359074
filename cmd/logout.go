package cmd

import (
	"github.com/spf13/cobra"
)

// logoutCmd ends the session on the server and removes it locally.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and remove stored cookies",
	Long: `The logout command asks the identity API to end the current session and,
once it agrees, removes the stored session cookies and member snapshot from the
OS keychain. If the API cannot be reached nothing is removed, so the command
can be retried.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.facade.LogoutAndRedirect(ctx, "/"); err != nil {
			return a.explain(err, "logging out")
		}
		a.forget()
		a.facade.NotifyInfo("✅ Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
