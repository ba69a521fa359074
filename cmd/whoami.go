package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd prints only the logged-in member's name.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in member's name",
	Long: `The whoami command prints the name of the logged-in member, or says that
nobody is logged in. Use 'sss me' for the full profile.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		d, online, err := currentMember(cmd.Context(), a)
		if err != nil {
			return err
		}
		if d == nil {
			printNotLoggedIn()
			return nil
		}
		suffix := ""
		if !online {
			suffix = " (offline)"
		}
		fmt.Printf("👤 Current user: %s%s\n", d.Name, suffix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
