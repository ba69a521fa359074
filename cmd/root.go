// Package cmd implements the sss command-line client for the identity API.
// Every command builds the same session facade the interactive shell uses,
// so login state, navigation and notifications behave identically whether a
// single command runs or a whole shell session.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion  bool
	verbose      bool
	apiURLFlag   string
	frontURLFlag string
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "sss",
	Short:         "Terminal client for the sss identity API",
	Long:          `sss logs in to the identity API, keeps the session in the OS keychain, and offers an interactive shell that mirrors the web client's navigation and notifications.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Printf("sss %s\napi %s\nfront %s\n", Version, a.cfg.APIBaseURL, a.cfg.FrontBaseURL)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and configured endpoints")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Identity API base URL (overrides SSS_CORE_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&frontURLFlag, "front-url", "", "Front-end base URL (overrides SSS_CORE_FRONT_BASE_URL)")
}
